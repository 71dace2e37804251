// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptReader abstracts the no-echo read so tests can avoid a real TTY.
var promptReader = func(fd int) ([]byte, error) {
	return term.ReadPassword(fd)
}

// ResolveAPIKey returns the OpenAI API key: environment first, then the
// secrets directory, then an interactive prompt on stdin when stdin is a
// terminal. The prompted key is not persisted.
func ResolveAPIKey(dir string, out io.Writer) (string, error) {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		return key, nil
	}

	loaded, err := Load(dir)
	if err != nil {
		return "", err
	}
	if key := loaded[APIKeyFile]; key != "" {
		return key, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no API key: set %s or create %s", APIKeyEnv, APIKeyFile)
	}

	fmt.Fprintf(out, "OpenAI API key (input hidden, not saved): ")
	raw, err := promptReader(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", fmt.Errorf("API key is required")
	}
	return key, nil
}
