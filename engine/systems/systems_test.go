package systems

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/skyhook/engine/assets"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

type fakeBackend struct {
	next       metadata.GeometryHandle
	geometries map[metadata.GeometryHandle]string
	shaders    []*metadata.Shader
	destroyed  []uint32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{geometries: make(map[metadata.GeometryHandle]string)}
}

func (f *fakeBackend) Initialize(string, int, int) error { return nil }
func (f *fakeBackend) Shutdown() error                   { return nil }
func (f *fakeBackend) Resized(int, int)                  {}
func (f *fakeBackend) BeginFrame(math.Vec4)              {}
func (f *fakeBackend) EndFrame()                         {}
func (f *fakeBackend) SetMatrices(_, _, _ math.Mat4)     {}
func (f *fakeBackend) DrawGeometry(metadata.GeometryHandle, int32) {
}

func (f *fakeBackend) CreateGeometry(mesh *metadata.MeshData) (*metadata.Geometry, error) {
	f.next++
	f.geometries[f.next] = mesh.Name
	return &metadata.Geometry{ID: f.next, Name: mesh.Name, IndexCount: mesh.IndexCount()}, nil
}

func (f *fakeBackend) DestroyGeometry(g *metadata.Geometry) {
	delete(f.geometries, g.ID)
}

func (f *fakeBackend) CreateShader(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	for _, s := range config.Stages {
		if strings.Contains(s.Source, "syntax error") {
			return nil, errors.New("compile failed")
		}
	}
	s := &metadata.Shader{ID: uint32(len(f.shaders) + 1), Name: config.Name, State: metadata.SHADER_STATE_INITIALIZED}
	f.shaders = append(f.shaders, s)
	return s, nil
}

func (f *fakeBackend) DestroyShader(s *metadata.Shader) {
	f.destroyed = append(f.destroyed, s.ID)
}

func (f *fakeBackend) UseShader(*metadata.Shader) error { return nil }

var _ renderer.RendererBackend = (*fakeBackend)(nil)

func triangle(name string) *metadata.MeshData {
	return &metadata.MeshData{
		Name:      name,
		Positions: []math.Vec3{{X: 0}, {X: 1}, {Y: 1}},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestGeometrySystemRefCounts(t *testing.T) {
	backend := newFakeBackend()
	gs, err := NewGeometrySystem(renderer.New(backend))
	require.NoError(t, err)

	g1, err := gs.Acquire("heli/body", triangle("body"))
	require.NoError(t, err)
	assert.Equal(t, "heli/body", g1.Name)
	assert.Equal(t, int32(3), g1.IndexCount)

	g2, err := gs.Acquire("heli/body", triangle("body"))
	require.NoError(t, err)
	assert.Same(t, g1, g2)
	assert.Len(t, backend.geometries, 1)

	g3, err := gs.AcquireByName("heli/body")
	require.NoError(t, err)
	assert.Same(t, g1, g3)
	assert.Equal(t, uint32(3), gs.ReferenceCount("heli/body"))

	gs.Release("heli/body")
	gs.Release("heli/body")
	assert.Len(t, backend.geometries, 1)
	gs.Release("heli/body")
	assert.Empty(t, backend.geometries)
	assert.Empty(t, gs.Names())
}

func TestGeometrySystemErrors(t *testing.T) {
	gs, err := NewGeometrySystem(renderer.New(newFakeBackend()))
	require.NoError(t, err)

	_, err = gs.AcquireByName("nope")
	assert.ErrorIs(t, err, core.ErrMissingMesh)

	bad := triangle("bad")
	bad.Indices = []uint32{0, 1, 5}
	_, err = gs.Acquire("bad", bad)
	assert.Error(t, err)

	_, err = NewGeometrySystem(nil)
	assert.Error(t, err)
}

func TestGeometrySystemShutdown(t *testing.T) {
	backend := newFakeBackend()
	gs, _ := NewGeometrySystem(renderer.New(backend))
	_, _ = gs.Acquire("a", triangle("a"))
	_, _ = gs.Acquire("b", triangle("b"))
	assert.Equal(t, []string{"a", "b"}, gs.Names())
	require.NoError(t, gs.Shutdown())
	assert.Empty(t, backend.geometries)
}

func shaderAssets(t *testing.T) (string, *assets.AssetManager) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "simple.vert"), []byte("void main() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "simple.frag"), []byte("void main() {}"), 0o644))
	am, err := assets.NewAssetManager(dir, nil)
	require.NoError(t, err)
	return dir, am
}

func TestShaderSystemReload(t *testing.T) {
	dir, am := shaderAssets(t)
	bus := core.NewEventBus()
	backend := newFakeBackend()
	r := renderer.New(backend)

	ss, err := NewShaderSystem(am, r, bus)
	require.NoError(t, err)
	require.NoError(t, ss.Load("simple", "shaders/simple.vert", "shaders/simple.frag"))
	first := ss.Active()
	require.NotNil(t, first)
	assert.Len(t, backend.shaders, 1)

	// nothing pending
	assert.False(t, ss.ReloadPending())

	// unrelated file
	bus.Fire(core.EventContext{Type: core.EVENT_CODE_SHADER_CHANGED, Data: &core.FileEvent{Path: "shaders/other.frag"}})
	assert.False(t, ss.ReloadPending())

	bus.Fire(core.EventContext{Type: core.EVENT_CODE_SHADER_CHANGED, Data: &core.FileEvent{Path: "shaders/simple.frag"}})
	assert.True(t, ss.ReloadPending())
	assert.NotSame(t, first, ss.Active())
	assert.Equal(t, []uint32{first.ID}, backend.destroyed)

	// a broken source keeps the current program
	current := ss.Active()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "simple.frag"), []byte("syntax error"), 0o644))
	bus.Fire(core.EventContext{Type: core.EVENT_CODE_SHADER_CHANGED, Data: &core.FileEvent{Path: "shaders/simple.frag"}})
	assert.False(t, ss.ReloadPending())
	assert.Same(t, current, ss.Active())

	require.NoError(t, ss.Shutdown())
	bus.Fire(core.EventContext{Type: core.EVENT_CODE_SHADER_CHANGED, Data: &core.FileEvent{Path: "shaders/simple.frag"}})
	assert.False(t, ss.ReloadPending())
}

func TestShaderSystemLoadErrors(t *testing.T) {
	_, am := shaderAssets(t)
	ss, err := NewShaderSystem(am, renderer.New(newFakeBackend()), nil)
	require.NoError(t, err)

	assert.Error(t, ss.Load("none"))
	assert.ErrorIs(t, ss.Load("missing", "shaders/missing.vert"), assets.ErrAssetNotFound)
	assert.Nil(t, ss.Active())
}

func TestSystemManager(t *testing.T) {
	_, am := shaderAssets(t)
	backend := newFakeBackend()
	sm, err := NewSystemManager(renderer.New(backend), am, core.NewEventBus())
	require.NoError(t, err)
	require.NotNil(t, sm.Geometry())
	require.NotNil(t, sm.Shaders())

	_, err = sm.Geometry().Acquire("tri", triangle("tri"))
	require.NoError(t, err)
	require.NoError(t, sm.Shutdown())
	assert.Empty(t, backend.geometries)
}
