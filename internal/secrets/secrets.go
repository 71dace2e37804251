// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the OpenAI API credential. The key is looked up
// in the OPENAI_API_KEY environment variable, then in a directory of
// plain-text files (filename is the key name, trimmed contents the value),
// and finally through an interactive no-echo terminal prompt.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// APIKeyFile is the secrets-directory file holding the OpenAI key.
	APIKeyFile = "openai-api-key"

	// APIKeyEnv is the environment variable consulted first.
	APIKeyEnv = "OPENAI_API_KEY"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty map. Unreadable files produce a warning on stderr but
// do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
