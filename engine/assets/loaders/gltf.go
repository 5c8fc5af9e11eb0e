package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// LoadGLTF opens a .gltf or .glb file. Each glTF mesh becomes one sub-mesh,
// with its triangle primitives merged. Node transforms are not applied.
func LoadGLTF(path string) (*metadata.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	base := filepath.Base(path)
	return ConvertGLTF(doc, strings.TrimSuffix(base, filepath.Ext(base)))
}

func ConvertGLTF(doc *gltf.Document, name string) (*metadata.Model, error) {
	model := &metadata.Model{Name: name}
	for iMesh, mesh := range doc.Meshes {
		meshName := mesh.Name
		if meshName == "" {
			meshName = fmt.Sprintf("mesh_%d", iMesh)
		}

		data := &metadata.MeshData{Name: meshName}
		withColors, withNormals := false, true
		for iPrim, primitive := range mesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				core.LogWarn("mesh %q primitive %d is not a triangle list, skipping", meshName, iPrim)
				continue
			}
			if err := appendPrimitive(doc, primitive, data, &withColors, &withNormals); err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d", meshName, iPrim)
			}
		}
		if len(data.Indices) == 0 {
			continue
		}
		if !withColors {
			data.Colors = nil
		}
		if !withNormals {
			data.Normals = nil
		}
		model.Meshes = append(model.Meshes, data)
	}

	if len(model.Meshes) == 0 {
		return nil, errors.Errorf("model %s has no triangle meshes", name)
	}
	return model, nil
}

// appendPrimitive adds one primitive to data. Missing colours are white and
// missing normals are zero; the caller drops either array when unused.
func appendPrimitive(doc *gltf.Document, primitive *gltf.Primitive, data *metadata.MeshData, withColors, withNormals *bool) error {
	posIndex, ok := primitive.Attributes[gltf.POSITION]
	if !ok {
		return errors.New("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
	if err != nil {
		return errors.Wrap(err, "failed to read positions")
	}

	var indices []uint32
	if primitive.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
		if err != nil {
			return errors.Wrap(err, "failed to read indices")
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var normals [][3]float32
	if idx, ok := primitive.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return errors.Wrap(err, "failed to read normals")
		}
	}
	if len(normals) != len(positions) {
		*withNormals = false
		normals = nil
	}

	var colors [][4]uint8
	if idx, ok := primitive.Attributes[gltf.COLOR_0]; ok {
		colors, err = modeler.ReadColor(doc, doc.Accessors[idx], nil)
		if err != nil {
			return errors.Wrap(err, "failed to read colours")
		}
	}
	if len(colors) == len(positions) && len(colors) > 0 {
		*withColors = true
	} else {
		colors = nil
	}

	offset := uint32(len(data.Positions))
	for i, p := range positions {
		data.Positions = append(data.Positions, math.NewVec3(p[0], p[1], p[2]))
		if normals != nil {
			n := normals[i]
			data.Normals = append(data.Normals, math.NewVec3(n[0], n[1], n[2]))
		} else {
			data.Normals = append(data.Normals, math.NewVec3Zero())
		}
		if colors != nil {
			c := colors[i]
			data.Colors = append(data.Colors, math.NewVec4(
				float32(c[0])/255, float32(c[1])/255, float32(c[2])/255, float32(c[3])/255))
		} else {
			data.Colors = append(data.Colors, math.NewVec4One())
		}
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return errors.Errorf("index %d out of range", i)
		}
		data.Indices = append(data.Indices, offset+i)
	}
	return nil
}
