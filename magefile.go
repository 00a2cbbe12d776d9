//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildExtractor)
	fmt.Println("Compilation finished")
	return nil
}

func BuildExtractor() error {
	fmt.Println("Building extractor executable...")
	cmd := goCommand("build", "-o", "./bin/extractor", "./extractor")
	return cmd.Run()
}

// Test runs the unit tests, HDF5 ones included, with the same cgo flags.
func Test() error {
	fmt.Println("Running tests...")
	cmd := goCommand("test", "./...")
	return cmd.Run()
}

func goCommand(args ...string) *exec.Cmd {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
