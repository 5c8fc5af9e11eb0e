//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with the default configuration.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-v", "run"), withStream()); err != nil {
		return err
	}
	return nil
}

// Lists the Vulkan capable devices.
func (Run) Devices() error {
	_, err := executeCmd("go", withArgs("run", ".", "devices"), withStream())
	return err
}
