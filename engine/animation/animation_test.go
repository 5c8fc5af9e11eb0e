package animation

import (
	m "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

func TestSimpleHeadingStart(t *testing.T) {
	h := SimpleHeading(0)
	assert.InDelta(t, 0, h.X, 1e-6)
	assert.InDelta(t, 45, h.Z, 1e-4)
	assert.InDelta(t, 0, h.Roll, 1e-6)
	assert.Less(t, h.Pitch, float32(0))
	// moving towards +x and slightly -z at t=0
	assert.InDelta(t, m.Pi+m.Atan2(1.19872, -0.035997), h.Yaw, 1e-3)
}

func TestSimpleHeadingIsPeriodic(t *testing.T) {
	period := 2 * m.Pi / headingCircuitSpeed
	for _, at := range []float64{0.3, 1.7, 4.2} {
		a, b := SimpleHeading(at), SimpleHeading(at+period)
		assert.InDelta(t, a.X, b.X, 1e-3)
		assert.InDelta(t, a.Z, b.Z, 1e-3)
		assert.InDelta(t, a.Roll, b.Roll, 1e-4)
		assert.InDelta(t, a.Pitch, b.Pitch, 1e-4)
		assert.InDelta(t, a.Yaw, b.Yaw, 1e-3)
	}
}

func TestSimpleHeadingStaysOnPath(t *testing.T) {
	for i := 0; i < 200; i++ {
		h := SimpleHeading(float64(i) * 0.1)
		assert.LessOrEqual(t, m.Abs(float64(h.X)), headingPathSize+1e-4)
		assert.LessOrEqual(t, m.Abs(float64(h.Z)), 3*headingPathSize+1e-4)
		assert.LessOrEqual(t, m.Abs(float64(h.Roll)), 0.5+1e-6)
		assert.GreaterOrEqual(t, float64(h.Yaw), 0.0)
		assert.LessOrEqual(t, float64(h.Yaw), 2*m.Pi+1e-6)
	}
}

func newRig(t *testing.T, g *scene.Graph, offset float64) Rig {
	t.Helper()
	body, err := g.CreateChild(g.Root(), "body")
	require.NoError(t, err)
	main, err := g.CreateChild(body, "main rotor")
	require.NoError(t, err)
	tail, err := g.CreateChild(body, "tail rotor")
	require.NoError(t, err)
	door, err := g.CreateChild(body, "door")
	require.NoError(t, err)
	return Rig{Body: body, MainRotor: main, TailRotor: tail, Door: door, TimeOffset: offset}
}

func TestHelicopterDriver(t *testing.T) {
	g := scene.New("test")
	rig := newRig(t, g, 0.5)
	g.Node(rig.MainRotor).SetRotation(math.NewVec3(0.1, 0, 0.2))

	var asked []float64
	d := &HelicopterDriver{
		Rigs: []Rig{rig},
		Path: func(elapsed float64) Heading {
			asked = append(asked, elapsed)
			return Heading{X: 1, Z: 2, Roll: 0.3, Pitch: -0.1, Yaw: 3}
		},
		MainRotorSpeed: 10,
		TailRotorSpeed: 4,
		Altitude:       7,
	}
	d.Animate(g, 2.0)

	assert.Equal(t, []float64{2.5}, asked)
	assert.Equal(t, math.NewVec3(0.1, 25, 0.2), g.Node(rig.MainRotor).Rotation())
	assert.Equal(t, math.NewVec3(10, 0, 0), g.Node(rig.TailRotor).Rotation())

	body := g.Node(rig.Body)
	assert.Equal(t, math.NewVec3(1, 7, 2), body.Position())
	assert.Equal(t, math.NewVec3(-0.1, 3, 0.3), body.Rotation())
	assert.Equal(t, math.NewVec3Zero(), g.Node(rig.Door).Rotation())
}

func TestHelicopterDriverFliesBodyReferenceOnPath(t *testing.T) {
	g := scene.New("test")
	rig := newRig(t, g, 0)
	require.NoError(t, g.SetReferencePoint(rig.Body, math.NewVec3One()))

	d := &HelicopterDriver{
		Rigs: []Rig{rig},
		Path: func(float64) Heading {
			return Heading{X: 4, Z: -6, Roll: 0.2, Pitch: 0.1, Yaw: 1.5}
		},
		Altitude: 10,
	}
	d.Animate(g, 1.0)
	g.Propagate(g.Root(), math.NewMat4Identity())

	world, err := g.World(rig.Body)
	require.NoError(t, err)
	got := world.Translation()
	assert.InDelta(t, 4, got.X, 1e-5)
	assert.InDelta(t, 10, got.Y, 1e-5)
	assert.InDelta(t, -6, got.Z, 1e-5)
}

func TestHelicopterDriverDependsOnlyOnElapsed(t *testing.T) {
	g := scene.New("test")
	rigs := []Rig{newRig(t, g, 0), newRig(t, g, 1.3)}
	d := &HelicopterDriver{Rigs: rigs, MainRotorSpeed: 12, TailRotorSpeed: 24, Altitude: 10}

	d.Animate(g, 3.0)
	g.Propagate(g.Root(), math.NewMat4Identity())
	first, err := g.World(rigs[1].TailRotor)
	require.NoError(t, err)

	d.Animate(g, 9.0)
	d.Animate(g, 3.0)
	g.Propagate(g.Root(), math.NewMat4Identity())
	second, err := g.World(rigs[1].TailRotor)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// rigs with different offsets are spread out
	p0 := g.Node(rigs[0].Body).Position()
	p1 := g.Node(rigs[1].Body).Position()
	assert.NotEqual(t, p0, p1)
}

func TestDrivers(t *testing.T) {
	var order []string
	d := Drivers{
		DriverFunc(func(g *scene.Graph, elapsed float64) { order = append(order, "a") }),
		DriverFunc(func(g *scene.Graph, elapsed float64) { order = append(order, "b") }),
	}
	d.Animate(scene.New("test"), 1)
	assert.Equal(t, []string{"a", "b"}, order)
}
