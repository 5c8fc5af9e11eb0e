package renderer

import (
	"fmt"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

// Renderer is the frontend used by the frame loop. It owns the active
// shader and hands geometry requests to the backend.
type Renderer struct {
	backend RendererBackend
	shader  *metadata.Shader
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, width, height int) error {
	return r.backend.Initialize(appName, width, height)
}

func (r *Renderer) Shutdown() error {
	if r.shader != nil {
		r.backend.DestroyShader(r.shader)
		r.shader = nil
	}
	return r.backend.Shutdown()
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) OnResize(width, height int) {
	r.backend.Resized(width, height)
}

func (r *Renderer) CreateGeometry(mesh *metadata.MeshData) (*metadata.Geometry, error) {
	return r.backend.CreateGeometry(mesh)
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}

// SetShader builds a program from config and makes it the active one. On
// failure the previous program stays active.
func (r *Renderer) SetShader(config *metadata.ShaderConfig) error {
	shader, err := r.backend.CreateShader(config)
	if err != nil {
		return fmt.Errorf("shader %s: %w", config.Name, err)
	}
	if r.shader != nil {
		r.backend.DestroyShader(r.shader)
	}
	r.shader = shader
	return nil
}

func (r *Renderer) Shader() *metadata.Shader {
	return r.shader
}

// DrawFrame clears the target and renders the graph from its root with the
// world matrices of the last propagation. It returns the number of draws.
func (r *Renderer) DrawFrame(g *scene.Graph, viewProjection math.Mat4, clear math.Vec4) (int, error) {
	if r.shader == nil {
		return 0, fmt.Errorf("draw frame: no shader is active")
	}
	r.backend.BeginFrame(clear)
	if err := r.backend.UseShader(r.shader); err != nil {
		core.LogError("%s", err)
		return 0, err
	}
	draws := g.Render(g.Root(), viewProjection, r.backend)
	r.backend.EndFrame()
	return draws, nil
}
