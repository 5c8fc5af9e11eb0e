package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// Graph is an arena of nodes forming a single rooted tree. Nodes are never
// removed, so a NodeID stays valid for the lifetime of the graph.
type Graph struct {
	id    uuid.UUID
	name  string
	nodes []*Node
	root  NodeID
	log   *log.Logger
}

// New creates a graph holding only its root. The root is never drawn.
func New(name string) *Graph {
	id := uuid.New()
	g := &Graph{
		id:   id,
		name: name,
		log:  core.LogWith("graph", name, "id", id.String()),
	}
	g.root = g.CreateNode(name + "/root")
	return g
}

func (g *Graph) ID() uuid.UUID {
	return g.id
}

func (g *Graph) Name() string {
	return g.name
}

func (g *Graph) Root() NodeID {
	return g.root
}

// Len returns the number of nodes, including the root.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// CreateNode adds a detached node with identity local parameters.
func (g *Graph) CreateNode(name string) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, newNode(name))
	return id
}

// Node returns the node for id or nil when id is unknown.
func (g *Graph) Node(id NodeID) *Node {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id]
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// AddChild appends child to the children of parent. The child must be
// detached and must not be parent or one of its ancestors.
func (g *Graph) AddChild(parent, child NodeID) error {
	if !g.valid(parent) {
		return fmt.Errorf("%w: parent %d", ErrInvalidNode, parent)
	}
	if !g.valid(child) {
		return fmt.Errorf("%w: child %d", ErrInvalidNode, child)
	}
	c := g.nodes[child]
	if child == g.root || c.parent != InvalidNode {
		return fmt.Errorf("%w: %q", ErrAlreadyParented, c.Name)
	}
	for a := parent; a != InvalidNode; a = g.nodes[a].parent {
		if a == child {
			return fmt.Errorf("%w: %q under %q", ErrCycle, c.Name, g.nodes[parent].Name)
		}
	}

	p := g.nodes[parent]
	p.children = append(p.children, child)
	c.parent = parent
	g.log.Debug("node attached", "parent", p.Name, "child", c.Name)
	return nil
}

// CreateChild creates a node and attaches it under parent.
func (g *Graph) CreateChild(parent NodeID, name string) (NodeID, error) {
	id := g.CreateNode(name)
	if err := g.AddChild(parent, id); err != nil {
		return InvalidNode, err
	}
	return id, nil
}

// SetDrawable binds geometry to a node. indexCount <= 0 leaves the node
// undrawn while its children are still rendered.
func (g *Graph) SetDrawable(id NodeID, handle metadata.GeometryHandle, indexCount int32) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if id == g.root {
		return ErrRootNotDrawable
	}
	n.Geometry = handle
	n.IndexCount = indexCount
	return nil
}

func (g *Graph) SetPosition(id NodeID, p math.Vec3) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	n.SetPosition(p)
	return nil
}

func (g *Graph) SetRotation(id NodeID, r math.Vec3) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	n.SetRotation(r)
	return nil
}

func (g *Graph) SetReferencePoint(id NodeID, r math.Vec3) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	n.SetReferencePoint(r)
	return nil
}

func (g *Graph) SetScale(id NodeID, s math.Vec3) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	n.SetScale(s)
	return nil
}

// Children returns a copy of the children of id in traversal order.
func (g *Graph) Children(id NodeID) []NodeID {
	n := g.Node(id)
	if n == nil {
		return nil
	}
	return slices.Clone(n.children)
}

// Parent returns InvalidNode for the root, detached and unknown nodes.
func (g *Graph) Parent(id NodeID) NodeID {
	n := g.Node(id)
	if n == nil {
		return InvalidNode
	}
	return n.parent
}

// World returns the world matrix of id as of the last Propagate.
func (g *Graph) World(id NodeID) (math.Mat4, error) {
	n := g.Node(id)
	if n == nil {
		return math.Mat4{}, fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	return n.world, nil
}

// Find returns the first node named name in pre-order from the root.
func (g *Graph) Find(name string) (NodeID, bool) {
	found := InvalidNode
	g.Walk(g.root, func(id NodeID, n *Node, depth int) bool {
		if found != InvalidNode {
			return false
		}
		if n.Name == name {
			found = id
			return false
		}
		return true
	})
	return found, found != InvalidNode
}

// Walk visits id and its descendants in pre-order, siblings in insertion
// order. Returning false from fn skips the subtree of that node.
func (g *Graph) Walk(id NodeID, fn func(id NodeID, n *Node, depth int) bool) {
	if !g.valid(id) {
		return
	}
	g.walk(id, 0, fn)
}

func (g *Graph) walk(id NodeID, depth int, fn func(NodeID, *Node, int) bool) {
	n := g.nodes[id]
	if !fn(id, n, depth) {
		return
	}
	for _, c := range n.children {
		g.walk(c, depth+1, fn)
	}
}
