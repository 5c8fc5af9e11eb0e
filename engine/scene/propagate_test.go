package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyhook/engine/math"
)

func world(t *testing.T, g *Graph, id NodeID) math.Mat4 {
	t.Helper()
	w, err := g.World(id)
	require.NoError(t, err)
	return w
}

func TestPropagateIdentityLocalsInheritAncestor(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "child", "grandchild")

	ancestor := math.NewMat4EulerXYZ(0.1, 0.2, 0.3).Mul(math.NewMat4Translation(math.NewVec3(4, 5, 6)))
	g.Propagate(g.Root(), ancestor)

	assert.Equal(t, ancestor, world(t, g, g.Root()))
	for _, id := range ids {
		assert.Equal(t, ancestor, world(t, g, id))
	}
}

func TestPropagateTranslationsCompose(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "child", "grandchild")
	require.NoError(t, g.SetPosition(ids[0], math.NewVec3(2, 0, 0)))
	require.NoError(t, g.SetPosition(ids[1], math.NewVec3(0, 3, 0)))

	g.Propagate(g.Root(), math.NewMat4Identity())

	assert.Equal(t, math.NewVec3(2, 3, 0), world(t, g, ids[1]).Translation())
	assert.Equal(t, math.NewVec3(2, 3, 0), math.NewVec3Zero().Transform(world(t, g, ids[1])))
}

func TestPropagateDepthAssociativity(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "child", "grandchild")
	child, grandchild := g.Node(ids[0]), g.Node(ids[1])

	child.SetPosition(math.NewVec3(1, -2, 3))
	child.SetRotation(math.NewVec3(0.4, 0.5, -0.6))
	child.SetReferencePoint(math.NewVec3(1, 1, 1))
	grandchild.SetPosition(math.NewVec3(0.5, 0, 7))
	grandchild.SetRotation(math.NewVec3(0, 1.2, 0))
	grandchild.SetReferencePoint(math.NewVec3(0, 2, 0))
	grandchild.SetScale(math.NewVec3(2, 2, 2))

	g.Propagate(g.Root(), math.NewMat4Identity())

	assert.Equal(t, grandchild.Local().Mul(world(t, g, ids[0])), world(t, g, ids[1]))
	assert.Equal(t, child.Local(), world(t, g, ids[0]))
}

func TestPropagateIsDeterministic(t *testing.T) {
	build := func() (*Graph, NodeID) {
		g := New("test")
		ids := chain(t, g, "a", "b", "c")
		for i, id := range ids {
			f := float32(i + 1)
			n := g.Node(id)
			n.SetPosition(math.NewVec3(f, 2*f, -f))
			n.SetRotation(math.NewVec3(0.1*f, 0.2*f, 0.3*f))
			n.SetReferencePoint(math.NewVec3(f, 0, 1))
		}
		return g, ids[2]
	}
	g1, leaf1 := build()
	g2, leaf2 := build()
	g1.Propagate(g1.Root(), math.NewMat4Identity())
	g2.Propagate(g2.Root(), math.NewMat4Identity())
	// a second pass over unchanged parameters yields the same result
	g2.Propagate(g2.Root(), math.NewMat4Identity())

	assert.Equal(t, world(t, g1, leaf1), world(t, g2, leaf2))
}

func TestPropagateSubtreeOnly(t *testing.T) {
	g := New("test")
	ids := chain(t, g, "a", "b")
	require.NoError(t, g.SetPosition(ids[1], math.NewVec3(1, 0, 0)))

	ancestor := math.NewMat4Translation(math.NewVec3(0, 10, 0))
	g.Propagate(ids[1], ancestor)

	assert.Equal(t, math.NewVec3(1, 10, 0), world(t, g, ids[1]).Translation())
	assert.Equal(t, math.NewMat4Identity(), world(t, g, ids[0]))
}
