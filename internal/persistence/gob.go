package persistence

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// SaveGob encodes object with gob and atomically replaces filePath with the result.
// It creates necessary directories if they don't exist.
func SaveGob(filePath string, object interface{}) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Printf("Warning: failed to remove temp file %s: %v", tmpPath, rmErr)
			}
		}
	}()

	if err := gob.NewEncoder(tmp).Encode(object); err != nil {
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to move snapshot into place at %s: %w", filePath, err)
	}
	committed = true
	return nil
}

// LoadGob decodes a gob-encoded file from filePath into the provided object pointer.
// If the file does not exist, it returns os.ErrNotExist, allowing callers to
// fall back to the source files.
func LoadGob(filePath string, objectPointer interface{}) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath comes from settings, not request input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close file %s: %v", filePath, closeErr)
		}
	}()

	if err := gob.NewDecoder(file).Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}

// FileStamp identifies the version of a source file a snapshot was built from.
type FileStamp struct {
	Path    string // Absolute path
	Exists  bool
	Size    int64
	ModTime int64 // Unix nanoseconds
}

// StampFiles stamps every non-empty path. A file that cannot be stat'ed is
// recorded as absent.
func StampFiles(paths ...string) []FileStamp {
	stamps := make([]FileStamp, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		stamp := FileStamp{Path: path}
		if abs, err := filepath.Abs(path); err == nil {
			stamp.Path = abs
		}
		if info, err := os.Stat(path); err == nil {
			stamp.Exists = true
			stamp.Size = info.Size()
			stamp.ModTime = info.ModTime().UnixNano()
		}
		stamps = append(stamps, stamp)
	}
	return stamps
}

// SameStamps reports whether two stamp sets name the same files in the same
// state.
func SameStamps(a, b []FileStamp) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
