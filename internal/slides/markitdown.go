// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/quiz-engine/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor pipes the deck PDF through the markitdown container
// image. Useful on hosts without poppler installed.
type MarkitdownExtractor struct {
	runtime container.Runtime
}

// NewMarkitdownExtractor detects a container runtime and verifies the
// markitdown image is present.
func NewMarkitdownExtractor() (*MarkitdownExtractor, error) {
	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, err
	}
	return newMarkitdownExtractor(rt)
}

func newMarkitdownExtractor(rt container.Runtime) (*MarkitdownExtractor, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt}, nil
}

// ExtractText streams the PDF through the container and captures the text.
func (m *MarkitdownExtractor) ExtractText(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening deck %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", pdfPath, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced no output for %s", pdfPath)
	}
	return out.String(), nil
}
