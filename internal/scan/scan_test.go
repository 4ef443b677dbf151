package scan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"example.com/mergepdf/internal/domain"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func relSorted(t *testing.T, root string, files []domain.PDFFile) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	slices.Sort(out)
	return out
}

func TestPDFs_NonRecursiveFiltersExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"a.pdf", "B.PDF", "c.Pdf", "notes.txt", "readme.md", "pdf", "archive.pdf.zip",
		"sub/nested.pdf",
	)
	if err := os.Mkdir(filepath.Join(root, "folder.pdf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := PDFs(root, false, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("PDFs: %v", err)
	}
	got := relSorted(t, root, files)
	want := []string{"B.PDF", "a.pdf", "c.Pdf"}
	if !slices.Equal(got, want) {
		t.Fatalf("PDFs() = %v, want %v", got, want)
	}
}

func TestPDFs_Recursive(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "a.pdf", "sub/b.pdf", "sub/deeper/C.PDF", "sub/skip.txt")

	files, err := PDFs(root, true, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("PDFs: %v", err)
	}
	got := relSorted(t, root, files)
	want := []string{"a.pdf", "sub/b.pdf", "sub/deeper/C.PDF"}
	if !slices.Equal(got, want) {
		t.Fatalf("PDFs() = %v, want %v", got, want)
	}
}

func TestPDFs_EmptyDirectory(t *testing.T) {
	t.Parallel()

	files, err := PDFs(t.TempDir(), true, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("PDFs: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("PDFs() = %v, want none", files)
	}
}

func TestPDFs_InvalidRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "file.pdf")

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(root, "nope")},
		{"regular file", filepath.Join(root, "file.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, recursive := range []bool{false, true} {
				_, err := PDFs(tt.path, recursive, log.New(&bytes.Buffer{}))
				if !errors.Is(err, ErrNotDirectory) {
					t.Fatalf("PDFs(%q, %v) err = %v, want ErrNotDirectory", tt.path, recursive, err)
				}
			}
		})
	}
}

func TestPDFs_SymlinkToDirectoryExcluded(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	writeFiles(t, root, "real.pdf", "target/inner.pdf")
	if err := os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "link.pdf")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "real.pdf"), filepath.Join(root, "alias.pdf")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	files, err := PDFs(root, false, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("PDFs: %v", err)
	}
	got := relSorted(t, root, files)
	want := []string{"alias.pdf", "real.pdf"}
	if !slices.Equal(got, want) {
		t.Fatalf("PDFs() = %v, want %v", got, want)
	}
}

func TestPDFs_UnreadableSubdirectoryIsSkipped(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	root := t.TempDir()
	writeFiles(t, root, "a.pdf", "locked/b.pdf")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var buf bytes.Buffer
	files, err := PDFs(root, true, log.New(&buf))
	if err != nil {
		t.Fatalf("PDFs: %v", err)
	}
	if got := relSorted(t, root, files); !slices.Equal(got, []string{"a.pdf"}) {
		t.Fatalf("PDFs() = %v, want [a.pdf]", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("locked")) {
		t.Fatalf("expected a warning naming the locked dir, got %q", buf.String())
	}
}

func TestHasPDFExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"a.pdf", true},
		{"a.PDF", true},
		{"a.PdF", true},
		{".pdf", true},
		{"a.pdf.bak", false},
		{"apdf", false},
		{"a.txt", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasPDFExt(tt.name); got != tt.want {
			t.Errorf("HasPDFExt(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
