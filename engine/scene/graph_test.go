package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

type drawCall struct {
	model, viewProjection, modelViewProjection math.Mat4
	handle                                     metadata.GeometryHandle
	indexCount                                 int32
}

type recordingBackend struct {
	calls   []drawCall
	pending drawCall
}

func (b *recordingBackend) SetMatrices(model, viewProjection, modelViewProjection math.Mat4) {
	b.pending = drawCall{model: model, viewProjection: viewProjection, modelViewProjection: modelViewProjection}
}

func (b *recordingBackend) DrawGeometry(handle metadata.GeometryHandle, indexCount int32) {
	b.pending.handle = handle
	b.pending.indexCount = indexCount
	b.calls = append(b.calls, b.pending)
}

func chain(t *testing.T, g *Graph, names ...string) []NodeID {
	t.Helper()
	parent := g.Root()
	ids := make([]NodeID, 0, len(names))
	for _, name := range names {
		id, err := g.CreateChild(parent, name)
		require.NoError(t, err)
		ids = append(ids, id)
		parent = id
	}
	return ids
}

func TestNewGraph(t *testing.T) {
	g := New("test")
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, InvalidNode, g.Parent(g.Root()))
	assert.False(t, g.Node(g.Root()).IsDrawable())
	assert.NotEqual(t, New("test").ID(), g.ID())

	n := g.Node(g.CreateNode("fresh"))
	assert.Equal(t, int32(-1), n.IndexCount)
	assert.Equal(t, math.NewVec3One(), n.Scale())
	assert.Equal(t, InvalidNode, n.Parent())
}

func TestAddChildValidation(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "a", "b", "c")
	a, b, c := ids[0], ids[1], ids[2]
	loose := g.CreateNode("loose")

	assert.ErrorIs(t, g.AddChild(NodeID(99), loose), ErrInvalidNode)
	assert.ErrorIs(t, g.AddChild(a, NodeID(-5)), ErrInvalidNode)
	assert.ErrorIs(t, g.AddChild(a, g.Root()), ErrAlreadyParented)
	assert.ErrorIs(t, g.AddChild(c, b), ErrAlreadyParented)
	assert.ErrorIs(t, g.AddChild(loose, loose), ErrCycle)

	// a detached subtree cannot be attached under its own descendant
	sub := g.CreateNode("sub")
	leaf, err := g.CreateChild(sub, "leaf")
	require.NoError(t, err)
	assert.ErrorIs(t, g.AddChild(leaf, sub), ErrCycle)

	require.NoError(t, g.AddChild(a, loose))
	assert.Equal(t, []NodeID{b, loose}, g.Children(a))
	assert.Equal(t, a, g.Parent(loose))
}

func TestChildrenIsACopy(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "a", "b")
	children := g.Children(ids[0])
	children[0] = NodeID(42)
	assert.Equal(t, []NodeID{ids[1]}, g.Children(ids[0]))
}

func TestSetDrawable(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "a")
	assert.ErrorIs(t, g.SetDrawable(g.Root(), 1, 3), ErrRootNotDrawable)
	assert.ErrorIs(t, g.SetDrawable(NodeID(7), 1, 3), ErrInvalidNode)

	require.NoError(t, g.SetDrawable(ids[0], 4, 36))
	n := g.Node(ids[0])
	assert.True(t, n.IsDrawable())
	assert.Equal(t, metadata.GeometryHandle(4), n.Geometry)

	require.NoError(t, g.SetDrawable(ids[0], 4, 0))
	assert.False(t, n.IsDrawable())
}

func TestSettersOnUnknownNode(t *testing.T) {
	g := New("test")
	assert.ErrorIs(t, g.SetPosition(NodeID(3), math.NewVec3One()), ErrInvalidNode)
	assert.ErrorIs(t, g.SetRotation(NodeID(3), math.NewVec3One()), ErrInvalidNode)
	assert.ErrorIs(t, g.SetReferencePoint(NodeID(3), math.NewVec3One()), ErrInvalidNode)
	assert.ErrorIs(t, g.SetScale(NodeID(3), math.NewVec3One()), ErrInvalidNode)
	_, err := g.World(NodeID(3))
	assert.ErrorIs(t, err, ErrInvalidNode)
	assert.Nil(t, g.Node(NodeID(3)))
}

func TestFindAndWalkPreOrder(t *testing.T) {
	g := New("test")
	a, _ := g.CreateChild(g.Root(), "a")
	_, _ = g.CreateChild(a, "a1")
	_, _ = g.CreateChild(g.Root(), "b")
	a2, _ := g.CreateChild(a, "a2")

	var order []string
	var depths []int
	g.Walk(g.Root(), func(id NodeID, n *Node, depth int) bool {
		order = append(order, n.Name)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"test/root", "a", "a1", "a2", "b"}, order)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)

	id, ok := g.Find("a2")
	assert.True(t, ok)
	assert.Equal(t, a2, id)
	_, ok = g.Find("missing")
	assert.False(t, ok)

	// skipping a subtree
	order = order[:0]
	g.Walk(g.Root(), func(id NodeID, n *Node, depth int) bool {
		order = append(order, n.Name)
		return id != a
	})
	assert.Equal(t, []string{"test/root", "a", "b"}, order)
}
