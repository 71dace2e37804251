// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a local container runtime and runs conversion
// images through it. The markitdown slide-deck backend is the only consumer.
package container

import (
	"fmt"
	"io"
	"os/exec"
)

// Runtime provides the container operations the slide-deck converter needs:
// probing availability, verifying an image, and running it as a filter.
type Runtime interface {
	// Name returns the runtime binary name ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and responds to a
	// probe command.
	Available() bool

	// ImageExists returns nil when the named image is present locally.
	ImageExists(image string) error

	// Run executes the image with stdin piped in and stdout captured.
	// Containers run without network access; conversion is purely local.
	Run(image string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution so tests can avoid real processes.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// spec captures how a particular runtime binary is driven. Docker and
// Podman differ only in the image-existence subcommand.
type spec struct {
	bin        string
	imageCheck []string
}

var knownRuntimes = []spec{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

type runtime struct {
	spec spec
	exec executor
}

func (r *runtime) Name() string { return r.spec.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.spec.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.spec.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := append(append([]string{}, r.spec.imageCheck...), image)
	if err := r.exec.RunSilent(r.spec.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.spec.bin, err)
	}
	return nil
}

func (r *runtime) Run(image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", "--network", "none", image}
	if err := r.exec.RunPiped(r.spec.bin, args, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.spec.bin, image, err)
	}
	return nil
}

var defaultExec executor = osExecutor{}

// DetectRuntime returns the first operational runtime, preferring docker.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(ex executor) (Runtime, error) {
	for _, s := range knownRuntimes {
		rt := &runtime{spec: s, exec: ex}
		if rt.Available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: tried docker and podman")
}
