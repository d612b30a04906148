// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from the environment or from a directory of
// plain-text files. Each file in the directory represents one secret: the filename
// is the key name and the file contents (trimmed) are the value.
//
// Supported key files: github-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenEnvVar is the environment variable consulted before the secrets
// directory.
const TokenEnvVar = "GITHUB_TOKEN"

// tokenFile is the secrets-directory file holding the GitHub token.
const tokenFile = "github-token"

// GitHubToken returns the GitHub bearer token from the GITHUB_TOKEN
// environment variable, falling back to dir/github-token. An empty
// return value means no token is configured.
func GitHubToken(dir string) string {
	if v := strings.TrimSpace(os.Getenv(TokenEnvVar)); v != "" {
		return v
	}
	s, err := Load(dir)
	if err != nil {
		return ""
	}
	return s[tokenFile]
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
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
