// Package filex contains small filesystem helpers used by the client.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path. Relative paths are resolved against the current working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// SaveFile writes data to dir/name, creating dir when missing. The name is
// reduced to its base and stripped of characters that are unsafe in file
// names. It returns the full path written.
func SaveFile(dir, name string, data []byte) (string, error) {
	d, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}
	name = SafeName(name)
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	path := filepath.Join(d, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// SafeName keeps the base of name and replaces path separators and control
// characters with '_'.
func SafeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	if name == "" {
		return ""
	}
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == ':', r == '*', r == '?', r == '"', r == '<', r == '>', r == '|':
			return '_'
		}
		return r
	}, name)
}
