// Package testutil builds PDF fixtures for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	api.DisableConfigDir()
}

// PDF returns a minimal, well-formed PDF with the given number of blank
// A4 pages. The xref table carries exact byte offsets so strict readers
// accept it without repair.
func PDF(pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	var buf bytes.Buffer
	offsets := make([]int, 0, pages+2)
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	kids := new(bytes.Buffer)
	for i := range pages {
		fmt.Fprintf(kids, "%d 0 R ", i+3)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", bytes.TrimSpace(kids.Bytes()), pages))
	for range pages {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// WritePDF writes a PDF with the given page count to dir/name and
// returns its path.
func WritePDF(tb testing.TB, dir, name string, pages int) string {
	tb.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, PDF(pages), 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}
	return p
}

// WriteFile writes arbitrary bytes to dir/name, for corrupt fixtures.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}
	return p
}

// WriteEncryptedPDF writes an AES-256 encrypted PDF whose user and owner
// password are both password.
func WriteEncryptedPDF(tb testing.TB, dir, name string, pages int, password string) string {
	tb.Helper()
	return WriteEncryptedPDFWith(tb, dir, name, pages, password, password)
}

// WriteEncryptedPDFWith is WriteEncryptedPDF with distinct passwords. An
// empty userPW gives a file that opens without a password but keeps its
// permission restrictions.
func WriteEncryptedPDFWith(tb testing.TB, dir, name string, pages int, userPW, ownerPW string) string {
	tb.Helper()
	plain := WritePDF(tb, dir, name+".plain", pages)
	p := filepath.Join(dir, name)
	conf := model.NewAESConfiguration(userPW, ownerPW, 256)
	if err := api.EncryptFile(plain, p, conf); err != nil {
		tb.Fatalf("encrypt %s: %v", p, err)
	}
	if err := os.Remove(plain); err != nil {
		tb.Fatalf("remove %s: %v", plain, err)
	}
	return p
}

// PageCount returns the page count of the PDF at path.
func PageCount(tb testing.TB, path string) int {
	tb.Helper()
	n, err := api.PageCountFile(path)
	if err != nil {
		tb.Fatalf("page count %s: %v", path, err)
	}
	return n
}

// Encrypted reports whether the PDF at path has an Encrypt entry. It only
// works for files readable with an empty user password.
func Encrypted(tb testing.TB, path string) bool {
	tb.Helper()
	f, err := os.Open(path)
	if err != nil {
		tb.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	ctx, err := api.ReadContext(f, model.NewDefaultConfiguration())
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return ctx.Encrypt != nil
}
