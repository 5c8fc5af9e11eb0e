package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/spaghettifunk/skyhook/engine/core"
)

// enableDebugOutput routes driver messages into the engine log. Messages
// are delivered on the thread that issued the failing call.
func enableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(debugCallback, nil)
}

func debugCallback(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		core.LogError("gl [%d]: %s", id, message)
	case gl.DEBUG_SEVERITY_MEDIUM:
		core.LogWarn("gl [%d]: %s", id, message)
	case gl.DEBUG_SEVERITY_LOW:
		core.LogInfo("gl [%d]: %s", id, message)
	default:
		core.LogDebug("gl [%d]: %s", id, message)
	}
}
