// Package filex holds small filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// DocumentFileName turns an object key such as "papers/3/ab12.pdf" into a
// flat local file name, "paper-3-ab12.pdf".
func DocumentFileName(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return "document.pdf"
	}
	if parts[0] == "papers" {
		parts[0] = "paper"
	}
	name := strings.Join(parts, "-")
	if filepath.Ext(name) == "" {
		name += ".pdf"
	}
	return name
}
