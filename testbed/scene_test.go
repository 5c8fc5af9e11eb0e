package testbed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyhook/engine/animation"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

type fakeGeometry struct {
	next     metadata.GeometryHandle
	byName   map[string]*metadata.Geometry
	acquired map[string]int
}

func newFakeGeometry() *fakeGeometry {
	return &fakeGeometry{byName: map[string]*metadata.Geometry{}, acquired: map[string]int{}}
}

func (f *fakeGeometry) Acquire(name string, mesh *metadata.MeshData) (*metadata.Geometry, error) {
	f.acquired[name]++
	if g, ok := f.byName[name]; ok {
		return g, nil
	}
	f.next++
	g := &metadata.Geometry{ID: f.next, Name: name, IndexCount: mesh.IndexCount()}
	f.byName[name] = g
	return g, nil
}

func box(name string, center math.Vec3) *metadata.MeshData {
	m := &metadata.MeshData{Name: name, Indices: []uint32{0, 1, 2}}
	for _, p := range []math.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}} {
		m.Positions = append(m.Positions, p.Add(center))
	}
	return m
}

func testModels() (*metadata.Model, *metadata.Model) {
	terrain := &metadata.Model{Name: "terrain", Meshes: []*metadata.MeshData{box("ground", math.NewVec3Zero())}}
	helicopter := &metadata.Model{Name: "helicopter", Meshes: []*metadata.MeshData{
		box("Body", math.NewVec3Zero()),
		box("door", math.NewVec3(1, 0, 0)),
		box("main_rotor", math.NewVec3(0, 2, 0)),
		box("Tail_Rotor_mesh", math.NewVec3(0.35, 2.3, 10.4)),
	}}
	return terrain, helicopter
}

func TestAssembleScene(t *testing.T) {
	terrain, helicopter := testModels()
	g := scene.New("test")
	geometry := newFakeGeometry()

	driver, err := AssembleScene(g, geometry, terrain, helicopter, FleetConfig{
		Count:          2,
		TimeOffset:     1.5,
		Altitude:       10,
		MainRotorSpeed: 1,
		TailRotorSpeed: 2,
	})
	require.NoError(t, err)
	require.Len(t, driver.Rigs, 2)
	assert.Equal(t, 0.0, driver.Rigs[0].TimeOffset)
	assert.Equal(t, 1.5, driver.Rigs[1].TimeOffset)
	assert.Equal(t, float32(10), driver.Altitude)

	// root + terrain group + ground + 2 x (body + 3 parts)
	assert.Equal(t, 1+2+2*4, g.Len())

	rig := driver.Rigs[1]
	assert.Equal(t, []scene.NodeID{rig.Door, rig.MainRotor, rig.TailRotor}, g.Children(rig.Body))
	assert.True(t, g.Node(rig.Body).IsDrawable())

	// one upload per part, shared by the fleet
	assert.Len(t, geometry.byName, 5)
	assert.Equal(t, 2, geometry.acquired["helicopter/main_rotor"])

	_, ok := g.Find("helicopter_1/tail_rotor")
	assert.True(t, ok)
}

func TestAssembleScenePartsStayInPlace(t *testing.T) {
	terrain, helicopter := testModels()
	g := scene.New("test")
	driver, err := AssembleScene(g, newFakeGeometry(), terrain, helicopter, FleetConfig{Count: 1})
	require.NoError(t, err)
	rig := driver.Rigs[0]

	require.NoError(t, g.SetPosition(rig.Body, math.NewVec3(5, 0, 0)))
	g.Propagate(g.Root(), math.NewMat4Identity())

	// the body reference point (1,1,1) is folded into its translation
	body, err := g.World(rig.Body)
	require.NoError(t, err)
	assert.True(t, body.Translation().Compare(math.NewVec3(6, 1, 1), 1e-5), "got %v", body.Translation())

	world, err := g.World(rig.TailRotor)
	require.NoError(t, err)
	assert.True(t, world.Translation().Compare(math.NewVec3(6.35, 3.3, 11.4), 1e-5), "got %v", world.Translation())

	world, err = g.World(rig.MainRotor)
	require.NoError(t, err)
	assert.True(t, world.Translation().Compare(math.NewVec3(6, 3, 1), 1e-5), "got %v", world.Translation())
}

func TestAssembleSceneBodyFollowsPath(t *testing.T) {
	terrain, helicopter := testModels()
	g := scene.New("test")
	driver, err := AssembleScene(g, newFakeGeometry(), terrain, helicopter, FleetConfig{Count: 1, Altitude: 10})
	require.NoError(t, err)

	driver.Animate(g, 2.0)
	g.Propagate(g.Root(), math.NewMat4Identity())

	h := animation.SimpleHeading(2.0)
	body, err := g.World(driver.Rigs[0].Body)
	require.NoError(t, err)
	want := math.NewVec3(h.X, 10, h.Z)
	assert.True(t, body.Translation().Compare(want, 1e-4), "got %v want %v", body.Translation(), want)
}

func TestAssembleSceneMissingPart(t *testing.T) {
	terrain, helicopter := testModels()
	helicopter.Meshes = helicopter.Meshes[:3]
	_, err := AssembleScene(scene.New("test"), newFakeGeometry(), terrain, helicopter, FleetConfig{Count: 1})
	assert.ErrorIs(t, err, core.ErrMissingMesh)
}

func TestFindPartAmbiguous(t *testing.T) {
	model := &metadata.Model{Name: "m", Meshes: []*metadata.MeshData{
		box("left_door", math.NewVec3Zero()),
		box("right_door", math.NewVec3Zero()),
	}}
	_, err := findPart(model, PartDoor)
	assert.ErrorIs(t, err, core.ErrMissingMesh)
}

func TestNewWorldCamera(t *testing.T) {
	cfg := core.DefaultConfig()
	camera := NewWorldCamera(cfg, 800, 400)
	assert.Equal(t, float32(2), camera.Aspect)
	assert.Equal(t, math.NewVec3(0, 20, 80), camera.GetPosition())
}
