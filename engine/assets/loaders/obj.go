package loaders

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// the decoder names objects for faces that precede any `o` statement
const unnamedObjectPrefix = "unnamed"

type objVertexKey struct {
	position int
	normal   int
	material string
}

// ParseOBJ decodes a Wavefront OBJ stream and its material library, which
// may be nil. Every `o` statement becomes a named sub-mesh; faces before the
// first one go to a mesh named after the model. The diffuse colour (Kd) of
// a face's material is copied to its vertices. Polygons are triangulated as
// fans, texture coordinates are ignored.
func ParseOBJ(objReader, mtlReader io.Reader, name string) (*metadata.Model, error) {
	if mtlReader == nil {
		mtlReader = strings.NewReader("")
	}
	dec, err := obj.DecodeReader(objReader, mtlReader)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	for _, w := range dec.Warnings {
		core.LogDebug("%s: %s", name, w)
	}

	model := &metadata.Model{Name: name}
	names := make(map[string]int)
	for i := range dec.Objects {
		object := &dec.Objects[i]
		meshName := uniqueMeshName(names, objectName(object.Name, name))
		mesh, err := buildOBJMesh(dec, object, meshName)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: object %s", name, meshName)
		}
		if mesh != nil {
			model.Meshes = append(model.Meshes, mesh)
		}
	}
	if len(model.Meshes) == 0 {
		return nil, errors.Errorf("model %s has no faces", name)
	}
	return model, nil
}

func buildOBJMesh(dec *obj.Decoder, object *obj.Object, name string) (*metadata.MeshData, error) {
	positionCount := len(dec.Vertices) / 3
	normalCount := len(dec.Normals) / 3

	mesh := &metadata.MeshData{Name: name}
	lookup := make(map[objVertexKey]uint32)
	hasColors, allNormals := false, true

	for _, face := range object.Faces {
		if len(face.Vertices) < 3 {
			return nil, errors.Errorf("face needs at least 3 vertices, got %d", len(face.Vertices))
		}
		color, ok := materialColor(dec, face.Material)
		hasColors = hasColors || ok

		corners := make([]uint32, 0, len(face.Vertices))
		for i, v := range face.Vertices {
			if v < 0 || v >= positionCount {
				return nil, errors.Errorf("vertex index %d out of range (%d vertices)", v+1, positionCount)
			}
			key := objVertexKey{position: v, normal: -1, material: face.Material}
			// absent normals carry an out of range index
			if i < len(face.Normals) && face.Normals[i] >= 0 && face.Normals[i] < normalCount {
				key.normal = face.Normals[i]
			}

			idx, seen := lookup[key]
			if !seen {
				idx = uint32(len(mesh.Positions))
				mesh.Positions = append(mesh.Positions, vec3At(dec.Vertices, key.position))
				mesh.Colors = append(mesh.Colors, color)
				if key.normal >= 0 {
					mesh.Normals = append(mesh.Normals, vec3At(dec.Normals, key.normal))
				} else {
					allNormals = false
					mesh.Normals = append(mesh.Normals, math.NewVec3Zero())
				}
				lookup[key] = idx
			}
			corners = append(corners, idx)
		}

		for i := 1; i+1 < len(corners); i++ {
			mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
		}
	}

	if len(mesh.Indices) == 0 {
		return nil, nil
	}
	if !hasColors {
		mesh.Colors = nil
	}
	if !allNormals {
		mesh.Normals = nil
	}
	return mesh, nil
}

func materialColor(dec *obj.Decoder, material string) (math.Vec4, bool) {
	if material == "" {
		return math.NewVec4One(), false
	}
	mat, ok := dec.Materials[material]
	if !ok {
		return math.NewVec4One(), false
	}
	return math.NewVec4(mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B, 1), true
}

func vec3At(values []float32, i int) math.Vec3 {
	return math.NewVec3(values[3*i], values[3*i+1], values[3*i+2])
}

// objectName maps the decoder's generated names back to the model name.
func objectName(name, model string) string {
	if name == "" {
		return model
	}
	if suffix, ok := strings.CutPrefix(name, unnamedObjectPrefix); ok {
		if _, err := strconv.Atoi(suffix); err == nil {
			return model
		}
	}
	return name
}

// Names stay unique so Model.Mesh can find every object.
func uniqueMeshName(names map[string]int, name string) string {
	n, seen := names[name]
	if !seen {
		names[name] = 0
		return name
	}
	names[name] = n + 1
	return fmt.Sprintf("%s.%d", name, n+1)
}
