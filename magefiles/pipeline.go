//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runCLI invokes the built quiz-engine binary with the given arguments.
func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Extract parses questions/README.md into the study CSV.
func Extract() error {
	mg.Deps(Build)
	return runCLI("extract")
}

// Bank ingests the study CSV into the question bank.
func Bank() error {
	mg.Deps(Extract)
	return runCLI("bank", "store")
}

// Pipeline runs extract and bank store end to end.
func Pipeline() error {
	mg.Deps(Bank)
	return nil
}
