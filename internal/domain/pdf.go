package domain

import (
	"os"
	"path/filepath"
	"time"
)

// PDFFile represents a discovered PDF file.
//
// Only the path is stored. Size and modification time are read from the
// filesystem on every call so a ref never carries stale metadata.
type PDFFile struct {
	Path string
}

// Base returns the file name without its directory.
func (f PDFFile) Base() string { return filepath.Base(f.Path) }

func (f PDFFile) Size() (int64, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (f PDFFile) ModTime() (time.Time, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Paths returns the paths of files, in order.
func Paths(files []PDFFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
