package scene

import (
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// DrawBackend receives the matrices and draw calls issued by Render.
type DrawBackend interface {
	SetMatrices(model, viewProjection, modelViewProjection math.Mat4)
	DrawGeometry(handle metadata.GeometryHandle, indexCount int32)
}

// Render walks id and its descendants in pre-order and issues one draw for
// every drawable node, using the world matrices of the last Propagate.
// It returns the number of draws.
func (g *Graph) Render(id NodeID, viewProjection math.Mat4, backend DrawBackend) int {
	if !g.valid(id) {
		return 0
	}
	return g.render(id, viewProjection, backend)
}

func (g *Graph) render(id NodeID, viewProjection math.Mat4, backend DrawBackend) int {
	n := g.nodes[id]
	draws := 0
	if n.IsDrawable() {
		backend.SetMatrices(n.world, viewProjection, n.world.Mul(viewProjection))
		backend.DrawGeometry(n.Geometry, n.IndexCount)
		draws++
	}
	for _, c := range n.children {
		draws += g.render(c, viewProjection, backend)
	}
	return draws
}
