// Package levels loads tile levels from JSON, preferring files on disk over the
// embedded copies so levels can be edited without rebuilding.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Dir is checked for a level file before LevelsFS.
var Dir = "levels"

var ErrInvalidLevel = errors.New("levels: invalid level")

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}

func read(name string) ([]byte, error) {
	clean := cleanLevelName(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return data, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}
