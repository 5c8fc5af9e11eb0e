package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// ShaderLoader reads a GLSL source file into a ShaderStageConfig. The stage
// comes from the extension, or from params when it is a metadata.ShaderStage.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	stage, ok := params.(metadata.ShaderStage)
	if !ok {
		var err error
		stage, err = ShaderStageFromPath(path)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("shader source %s is empty", path)
	}

	return &metadata.Resource{
		Type:     metadata.ResourceTypeShader,
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data: &metadata.ShaderStageConfig{
			Stage:    stage,
			FileName: path,
			Source:   string(data),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}

func ShaderStageFromPath(path string) (metadata.ShaderStage, error) {
	switch filepath.Ext(path) {
	case ".vert":
		return metadata.ShaderStageVertex, nil
	case ".frag":
		return metadata.ShaderStageFragment, nil
	default:
		return 0, fmt.Errorf("cannot tell the shader stage of %s", path)
	}
}

// TextLoader returns the file contents as a string.
type TextLoader struct{}

func (tl *TextLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeText,
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (tl *TextLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	res.DataSize = 0
	return nil
}
