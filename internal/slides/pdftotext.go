// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"bytes"
	"fmt"
	"os/exec"
)

const binPdftotext = "pdftotext"

// runner abstracts subprocess execution so tests can avoid the real binary.
type runner interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Output(name string, args ...string) ([]byte, error) {
	var out, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}

// PdftotextExtractor extracts deck text with the poppler pdftotext binary.
// It is the default backend; no container runtime required.
type PdftotextExtractor struct {
	run runner
}

// NewPdftotextExtractor verifies that pdftotext is on PATH.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	return newPdftotextExtractor(osRunner{})
}

func newPdftotextExtractor(run runner) (*PdftotextExtractor, error) {
	if _, err := run.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext not found on PATH: %w", err)
	}
	return &PdftotextExtractor{run: run}, nil
}

// ExtractText runs pdftotext over the whole file, writing to stdout.
func (p *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	out, err := p.run.Output(binPdftotext, "-layout", pdfPath, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext %s: %w", pdfPath, err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("pdftotext produced no output for %s", pdfPath)
	}
	return string(out), nil
}
