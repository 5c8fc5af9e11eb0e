package engine

import (
	"fmt"

	"github.com/spaghettifunk/skyhook/engine/core"
)

// closer asks the window to close. The platform satisfies it.
type closer interface {
	RequestClose()
}

// runRender calls body and turns a panic into ErrRenderPanic.
func runRender(body func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", core.ErrRenderPanic, r)
		}
	}()
	return body()
}

// supervise waits for the render goroutine to stop, then closes the window
// so the event pump returns.
func supervise(done <-chan error, c closer) error {
	err := <-done
	if err != nil {
		core.LogError("render stopped: %s", err)
	}
	c.RequestClose()
	return err
}
