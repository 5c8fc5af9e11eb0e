package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// Backend renders through an OpenGL 4.3 core context. The context must be
// current on the calling thread for every method.
type Backend struct {
	width, height int

	geometries map[metadata.GeometryHandle]*vertexArray
	nextHandle metadata.GeometryHandle
	bound      metadata.GeometryHandle
}

func New() *Backend {
	return &Backend{
		geometries: make(map[metadata.GeometryHandle]*vertexArray),
		nextHandle: metadata.InvalidGeometry + 1,
	}
}

func (b *Backend) Initialize(appName string, width, height int) error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "gl init")
	}
	core.LogInfo("%s using OpenGL %s on %s", appName,
		gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	enableDebugOutput()

	b.Resized(width, height)
	return nil
}

func (b *Backend) Shutdown() error {
	for handle, va := range b.geometries {
		va.delete()
		delete(b.geometries, handle)
	}
	return nil
}

func (b *Backend) Resized(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) BeginFrame(clear math.Vec4) {
	gl.ClearColor(clear.X, clear.Y, clear.Z, clear.W)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	b.bound = metadata.InvalidGeometry
}

func (b *Backend) EndFrame() {
	gl.BindVertexArray(0)
}

// SetMatrices uploads the matrices to the fixed uniform locations. The row
// vector data read column-major is the column vector form GLSL expects.
func (b *Backend) SetMatrices(model, viewProjection, modelViewProjection math.Mat4) {
	gl.UniformMatrix4fv(metadata.UniformLocationModel, 1, false, &model.Data[0])
	gl.UniformMatrix4fv(metadata.UniformLocationViewProjection, 1, false, &viewProjection.Data[0])
	gl.UniformMatrix4fv(metadata.UniformLocationModelViewProjection, 1, false, &modelViewProjection.Data[0])
}

func (b *Backend) DrawGeometry(handle metadata.GeometryHandle, indexCount int32) {
	va, ok := b.geometries[handle]
	if !ok {
		core.LogWarn("draw of unknown geometry %d", handle)
		return
	}
	if b.bound != handle {
		gl.BindVertexArray(va.vao)
		b.bound = handle
	}
	gl.DrawElements(gl.TRIANGLES, min(indexCount, va.indexCount), gl.UNSIGNED_INT, nil)
}
