package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

func glStage(stage metadata.ShaderStage) (uint32, error) {
	switch stage {
	case metadata.ShaderStageVertex:
		return gl.VERTEX_SHADER, nil
	case metadata.ShaderStageFragment:
		return gl.FRAGMENT_SHADER, nil
	default:
		return 0, errors.Errorf("unsupported shader stage %d", stage)
	}
}

// CreateShader compiles every stage and links them into one program.
func (b *Backend) CreateShader(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	if len(config.Stages) == 0 {
		return nil, errors.Errorf("shader %q has no stages", config.Name)
	}

	stages := make([]uint32, 0, len(config.Stages))
	deleteStages := func() {
		for _, s := range stages {
			gl.DeleteShader(s)
		}
	}
	files := make([]string, 0, len(config.Stages))
	for _, stage := range config.Stages {
		xtype, err := glStage(stage.Stage)
		if err != nil {
			deleteStages()
			return nil, err
		}
		s, err := loadShader(xtype, stage.Source)
		if err != nil {
			deleteStages()
			return nil, errors.Wrapf(err, "%s shader %s", stage.Stage, stage.FileName)
		}
		stages = append(stages, s)
		files = append(files, stage.FileName)
	}

	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range stages {
		gl.DetachShader(program, s)
	}
	deleteStages()

	var isLinked int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(program, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		core.LogError("failed to link program:\n%s", errString)

		gl.DeleteProgram(program)
		return nil, errors.Errorf("failed to link program %q: %q", config.Name, errString)
	}

	return &metadata.Shader{
		ID:        program,
		Name:      config.Name,
		State:     metadata.SHADER_STATE_INITIALIZED,
		FileNames: files,
	}, nil
}

func (b *Backend) DestroyShader(shader *metadata.Shader) {
	if shader == nil || shader.State != metadata.SHADER_STATE_INITIALIZED {
		return
	}
	gl.DeleteProgram(shader.ID)
	shader.State = metadata.SHADER_STATE_DESTROYED
}

func (b *Backend) UseShader(shader *metadata.Shader) error {
	if shader == nil || shader.State != metadata.SHADER_STATE_INITIALIZED {
		return errors.New("use of a shader that is not initialized")
	}
	gl.UseProgram(shader.ID)
	return nil
}

func loadShader(xtype uint32, text string) (shader uint32, err error) {
	glShaderSource := func(handle uint32, source string) {
		csource, free := gl.Strs(source + "\x00")
		defer free()

		gl.ShaderSource(handle, 1, csource, nil)
	}

	shader = gl.CreateShader(xtype)
	glShaderSource(shader, text)
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		core.LogError("failed to compile shader:\n%s", errString)

		gl.DeleteShader(shader)
		return gl.INVALID_INDEX, errors.Errorf("failed to compile shader: %q", errString)
	}
	return shader, nil
}
