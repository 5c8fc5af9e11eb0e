package scene

import "errors"

var (
	ErrInvalidNode     = errors.New("invalid scene node")
	ErrAlreadyParented = errors.New("scene node already has a parent")
	ErrCycle           = errors.New("scene node would become its own ancestor")
	ErrRootNotDrawable = errors.New("the root node cannot be drawable")
)
