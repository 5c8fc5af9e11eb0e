package core

import (
	"errors"
)

var (
	ErrRenderPanic   = errors.New("render goroutine panicked")
	ErrSceneAssembly = errors.New("scene assembly failed")
	ErrMissingMesh   = errors.New("mesh not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)
