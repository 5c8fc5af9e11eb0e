package systems

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

type geometryReference struct {
	referenceCount uint32
	geometry       *metadata.Geometry
}

// GeometrySystem uploads each named mesh once and hands out the same
// geometry to every node that draws it. Must be used on the render thread.
type GeometrySystem struct {
	renderer *renderer.Renderer

	mu sync.Mutex
	// A lookup table for geometry name -> reference
	registered map[string]*geometryReference
}

func NewGeometrySystem(r *renderer.Renderer) (*GeometrySystem, error) {
	if r == nil {
		return nil, fmt.Errorf("func NewGeometrySystem - renderer is nil")
	}
	return &GeometrySystem{
		renderer:   r,
		registered: make(map[string]*geometryReference),
	}, nil
}

// Acquire returns the geometry registered as name, creating it from mesh
// the first time. Every call takes a reference.
func (gs *GeometrySystem) Acquire(name string, mesh *metadata.MeshData) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if ref, ok := gs.registered[name]; ok {
		ref.referenceCount++
		return ref.geometry, nil
	}
	if mesh == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrMissingMesh, name)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	geometry, err := gs.renderer.CreateGeometry(mesh)
	if err != nil {
		core.LogError("failed to create geometry %s: %s", name, err)
		return nil, err
	}
	geometry.Name = name
	gs.registered[name] = &geometryReference{referenceCount: 1, geometry: geometry}
	core.LogDebug("geometry %s created with %d indices", name, geometry.IndexCount)
	return geometry, nil
}

// AcquireByName takes another reference to an already created geometry.
func (gs *GeometrySystem) AcquireByName(name string) (*metadata.Geometry, error) {
	return gs.Acquire(name, nil)
}

// Release drops one reference and destroys the geometry with the last one.
func (gs *GeometrySystem) Release(name string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	ref, ok := gs.registered[name]
	if !ok {
		core.LogWarn("geometry %s released but never acquired", name)
		return
	}
	ref.referenceCount--
	if ref.referenceCount == 0 {
		gs.renderer.DestroyGeometry(ref.geometry)
		delete(gs.registered, name)
	}
}

func (gs *GeometrySystem) ReferenceCount(name string) uint32 {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if ref, ok := gs.registered[name]; ok {
		return ref.referenceCount
	}
	return 0
}

// Names lists the live geometries, sorted.
func (gs *GeometrySystem) Names() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	names := make([]string, 0, len(gs.registered))
	for name := range gs.registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (gs *GeometrySystem) Shutdown() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for name, ref := range gs.registered {
		gs.renderer.DestroyGeometry(ref.geometry)
		delete(gs.registered, name)
	}
	return nil
}
