// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: deepseek-api-key, sender-email, sender-password, receiver-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

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

// envKeys maps secret file names to the environment variables they back.
var envKeys = map[string]string{
	"deepseek-api-key": "DEEPSEEK_API_KEY",
	"sender-email":     "SENDER_EMAIL",
	"sender-password":  "SENDER_PASSWORD",
	"receiver-email":   "RECEIVER_EMAIL",
}

// Resolve returns the value for the environment variable envVar, preferring
// the environment itself and falling back to the loaded secrets map.
func Resolve(loaded map[string]string, envVar string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	for file, env := range envKeys {
		if env == envVar {
			return loaded[file]
		}
	}
	return ""
}
