package opengl

import (
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

type vertexArray struct {
	vao        uint32
	buffers    [3]uint32
	ebo        uint32
	indexCount int32
}

func (va *vertexArray) delete() {
	gl.DeleteBuffers(int32(len(va.buffers)), &va.buffers[0])
	gl.DeleteBuffers(1, &va.ebo)
	gl.DeleteVertexArrays(1, &va.vao)
}

// CreateGeometry uploads positions, colours and normals into separate
// buffers bound to the fixed attribute locations, plus an index buffer.
func (b *Backend) CreateGeometry(mesh *metadata.MeshData) (*metadata.Geometry, error) {
	if err := mesh.Validate(); err != nil {
		return nil, errors.Wrap(err, "create geometry")
	}
	if len(mesh.Indices) == 0 {
		return nil, errors.Errorf("create geometry: mesh %q has no indices", mesh.Name)
	}
	m := *mesh
	m.Fill()

	va := &vertexArray{indexCount: m.IndexCount()}
	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)
	gl.GenBuffers(int32(len(va.buffers)), &va.buffers[0])

	gl.BindBuffer(gl.ARRAY_BUFFER, va.buffers[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*3*4, gl.Ptr(&m.Positions[0].X), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(metadata.AttribLocationPosition, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(metadata.AttribLocationPosition)

	gl.BindBuffer(gl.ARRAY_BUFFER, va.buffers[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors)*4*4, gl.Ptr(&m.Colors[0].X), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(metadata.AttribLocationColor, 4, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(metadata.AttribLocationColor)

	gl.BindBuffer(gl.ARRAY_BUFFER, va.buffers[2])
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*3*4, gl.Ptr(&m.Normals[0].X), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(metadata.AttribLocationNormal, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(metadata.AttribLocationNormal)

	gl.GenBuffers(1, &va.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	runtime.KeepAlive(m)

	if code := gl.GetError(); code != gl.NO_ERROR {
		va.delete()
		return nil, errors.Errorf("create geometry %q: gl error 0x%x", mesh.Name, code)
	}

	handle := b.nextHandle
	b.nextHandle++
	b.geometries[handle] = va

	ext := mesh.Extents()
	return &metadata.Geometry{
		ID:         handle,
		Name:       mesh.Name,
		IndexCount: va.indexCount,
		Center:     ext.Center(),
		Extents:    ext,
	}, nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	if geometry == nil {
		return
	}
	if va, ok := b.geometries[geometry.ID]; ok {
		va.delete()
		delete(b.geometries, geometry.ID)
	}
	geometry.ID = metadata.InvalidGeometry
}
