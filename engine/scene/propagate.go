package scene

import "github.com/spaghettifunk/skyhook/engine/math"

// Propagate recomputes the world matrix of id and all of its descendants,
// top-down: world = local x ancestor. Pass the identity for the root.
func (g *Graph) Propagate(id NodeID, ancestor math.Mat4) {
	if !g.valid(id) {
		return
	}
	g.propagate(id, ancestor)
}

func (g *Graph) propagate(id NodeID, ancestor math.Mat4) {
	n := g.nodes[id]
	n.world = n.transform.GetWorld(ancestor)
	for _, c := range n.children {
		g.propagate(c, n.world)
	}
}
