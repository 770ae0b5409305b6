//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds every package in the module.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("build", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the demo binary into bin/vetro.
func (Build) Demo() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/vetro", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the test suite.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
