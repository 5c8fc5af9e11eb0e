package metadata

/**
 * @brief Represents the current state of a given shader.
 */
type ShaderState int

const (
	/** @brief The shader has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief The shader is linked and ready for use.*/
	SHADER_STATE_INITIALIZED
	/** @brief The shader was destroyed by the backend.*/
	SHADER_STATE_DESTROYED
)

/** @brief Shader stages available in the system. */
type ShaderStage int

const (
	ShaderStageVertex   ShaderStage = 0x00000001
	ShaderStageFragment ShaderStage = 0x00000004
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Fixed uniform locations shared by every program.
const (
	UniformLocationModel               int32 = 0
	UniformLocationViewProjection      int32 = 1
	UniformLocationModelViewProjection int32 = 2
)

// Fixed vertex attribute locations.
const (
	AttribLocationPosition uint32 = 0
	AttribLocationColor    uint32 = 1
	AttribLocationNormal   uint32 = 2
)

type ShaderStageConfig struct {
	Stage    ShaderStage
	FileName string
	Source   string
}

/**
 * @brief Configuration for a shader. Typically created and
 * destroyed by the shader loader.
 */
type ShaderConfig struct {
	/** @brief The name of the shader to be created. */
	Name   string
	Stages []ShaderStageConfig
}

/**
 * @brief Represents a shader on the frontend.
 */
type Shader struct {
	/** @brief The shader identifier, the program object for OpenGL */
	ID   uint32
	Name string
	/** @brief The internal State of the shader. */
	State ShaderState
	/** @brief Files the shader was built from, used to match reloads. */
	FileNames []string
}
