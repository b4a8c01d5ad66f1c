// Package loader handles MOO file loading operations.
package loader

import (
	"fmt"
	"os"
)

// Loader handles loading MOO files from disk.
type Loader struct{}

// New creates a new file loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the complete file into memory. Decoding works on the returned
// buffer, the file is not accessed afterwards.
func (l *Loader) Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening file %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
