package loaders

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// ModelLoader parses Wavefront OBJ and glTF 2.0 files into a metadata.Model.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	var (
		model *metadata.Model
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		model, err = loadOBJ(path)
	case ".gltf", ".glb":
		model, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	for _, mesh := range model.Meshes {
		if err := mesh.Validate(); err != nil {
			return nil, err
		}
	}

	var size uint64
	for _, mesh := range model.Meshes {
		size += uint64(len(mesh.Positions))*12 + uint64(len(mesh.Colors))*16 +
			uint64(len(mesh.Normals))*12 + uint64(len(mesh.Indices))*4
	}

	return &metadata.Resource{
		Type:     metadata.ResourceTypeModel,
		Name:     model.Name,
		FullPath: path,
		DataSize: size,
		Data:     model,
	}, nil
}

func (ml *ModelLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}

// loadOBJ reads path and, when present, the material library next to it
// with the same base name.
func loadOBJ(path string) (*metadata.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mtl io.Reader
	m, err := os.Open(strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl")
	switch {
	case err == nil:
		defer m.Close()
		mtl = m
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return ParseOBJ(f, mtl, modelName(path))
}

func modelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
