// Package scan discovers PDF files under a root directory.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"example.com/mergepdf/internal/domain"
)

// ErrNotDirectory is returned when the scan root is missing or is not a directory.
var ErrNotDirectory = errors.New("not a valid directory")

// PDFs collects the files under root whose extension is ".pdf" in any case.
//
// Without recursive only the direct children of root are listed. With it
// the whole subtree is walked, and subdirectories that cannot be read are
// skipped with a warning. The result has no particular order.
func PDFs(root string, recursive bool, logger *log.Logger) ([]domain.PDFFile, error) {
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
		}
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	if !recursive {
		return listDir(root)
	}
	return walk(root, logger)
}

func listDir(root string) ([]domain.PDFFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	files := make([]domain.PDFFile, 0, len(entries))
	for _, d := range entries {
		path := filepath.Join(root, d.Name())
		if isPDF(path, d) {
			files = append(files, domain.PDFFile{Path: path})
		}
	}
	return files, nil
}

func walk(root string, logger *log.Logger) ([]domain.PDFFile, error) {
	var files []domain.PDFFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warn("Skipping unreadable directory", "dir", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if isPDF(path, d) {
			files = append(files, domain.PDFFile{Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isPDF reports whether the entry is a non-directory with a .pdf extension.
// Symlinks are followed so a link to a directory named x.pdf is rejected.
func isPDF(path string, d fs.DirEntry) bool {
	if d.IsDir() || !HasPDFExt(d.Name()) {
		return false
	}
	if d.Type()&fs.ModeSymlink != 0 {
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			return false
		}
	}
	return true
}

// HasPDFExt reports whether name ends in ".pdf", ignoring case.
func HasPDFExt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
