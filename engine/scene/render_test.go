package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

func TestRenderSkipsUndrawableKeepsChildren(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "group", "leaf")
	require.NoError(t, g.SetDrawable(ids[0], 1, 0))
	require.NoError(t, g.SetDrawable(ids[1], 2, 6))

	g.Propagate(g.Root(), math.NewMat4Identity())
	backend := &recordingBackend{}
	draws := g.Render(g.Root(), math.NewMat4Identity(), backend)

	assert.Equal(t, 1, draws)
	require.Len(t, backend.calls, 1)
	assert.Equal(t, metadata.GeometryHandle(2), backend.calls[0].handle)
	assert.Equal(t, int32(6), backend.calls[0].indexCount)
}

func TestRenderPreOrderWithMatrices(t *testing.T) {
	g := New("test")
	a, _ := g.CreateChild(g.Root(), "a")
	a1, _ := g.CreateChild(a, "a1")
	b, _ := g.CreateChild(g.Root(), "b")
	for i, id := range []NodeID{a, a1, b} {
		require.NoError(t, g.SetDrawable(id, metadata.GeometryHandle(i+1), 3))
		require.NoError(t, g.SetPosition(id, math.NewVec3(float32(i), 1, 0)))
	}

	vp := math.NewMat4Perspective(1.0, 1.5, 0.1, 100).Mul(math.NewMat4Translation(math.NewVec3(0, 0, -5)))
	g.Propagate(g.Root(), math.NewMat4Identity())
	backend := &recordingBackend{}
	require.Equal(t, 3, g.Render(g.Root(), vp, backend))

	handles := []metadata.GeometryHandle{}
	for _, c := range backend.calls {
		handles = append(handles, c.handle)
		assert.Equal(t, vp, c.viewProjection)
		assert.Equal(t, c.model.Mul(vp), c.modelViewProjection)
	}
	assert.Equal(t, []metadata.GeometryHandle{1, 2, 3}, handles)
	assert.Equal(t, world(t, g, a1), backend.calls[1].model)
}

func TestRenderPassesAreIdempotent(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "a", "b")
	for _, id := range ids {
		require.NoError(t, g.SetDrawable(id, 9, 12))
		g.Node(id).SetRotation(math.NewVec3(0.3, 0.2, 0.1))
		g.Node(id).SetReferencePoint(math.NewVec3(1, 1, 1))
	}
	vp := math.NewMat4Translation(math.NewVec3(1, 2, 3))

	first := &recordingBackend{}
	g.Propagate(g.Root(), math.NewMat4Identity())
	g.Render(g.Root(), vp, first)

	second := &recordingBackend{}
	g.Propagate(g.Root(), math.NewMat4Identity())
	g.Render(g.Root(), vp, second)

	assert.Equal(t, first.calls, second.calls)
}

func TestRenderUnknownNode(t *testing.T) {
	g := New("test")
	assert.Zero(t, g.Render(NodeID(12), math.NewMat4Identity(), &recordingBackend{}))
}
