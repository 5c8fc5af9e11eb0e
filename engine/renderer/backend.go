package renderer

import (
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
	"github.com/spaghettifunk/skyhook/engine/scene"
)

// RendererBackend is implemented by a graphics API. Every method must be
// called on the goroutine that owns the context.
type RendererBackend interface {
	Initialize(appName string, width, height int) error
	Shutdown() error
	Resized(width, height int)
	BeginFrame(clear math.Vec4)
	EndFrame()
	CreateGeometry(mesh *metadata.MeshData) (*metadata.Geometry, error)
	DestroyGeometry(geometry *metadata.Geometry)
	CreateShader(config *metadata.ShaderConfig) (*metadata.Shader, error)
	DestroyShader(shader *metadata.Shader)
	UseShader(shader *metadata.Shader) error
	scene.DrawBackend
}

type RendererType uint8

const (
	OpenGL RendererType = iota
	Vulkan
)

func (t RendererType) String() string {
	switch t {
	case OpenGL:
		return "opengl"
	case Vulkan:
		return "vulkan"
	default:
		return "unknown"
	}
}
