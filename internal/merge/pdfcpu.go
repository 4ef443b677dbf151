package merge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfcpu must never create its config dir under the user's home.
func init() {
	api.DisableConfigDir()
}

// PDFCPU is the Backend built on pdfcpu. It also counts pages for the
// page-number sort.
type PDFCPU struct{}

func NewPDFCPU() *PDFCPU { return &PDFCPU{} }

func (p *PDFCPU) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Open reads path fully and validates it. Any file whose trailer has an
// Encrypt entry is returned as an encrypted document, including one that
// opens with an empty user password.
func (p *PDFCPU) Open(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pages, encrypted, err := p.inspect(raw)
	if err != nil {
		return nil, err
	}
	return &pdfDocument{backend: p, path: path, raw: raw, pages: pages, encrypted: encrypted}, nil
}

// PageCount opens path just long enough to count its pages.
func (p *PDFCPU) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return api.PageCount(f, p.config())
}

// Write merges docs into w. A single document is copied through as is.
func (p *PDFCPU) Write(w io.Writer, docs []Document) error {
	if len(docs) == 0 {
		return ErrNoDocuments
	}

	rs := make([]io.ReadSeeker, 0, len(docs))
	for _, d := range docs {
		pd, ok := d.(*pdfDocument)
		if !ok {
			return fmt.Errorf("pdfcpu backend cannot write %T", d)
		}
		if pd.encrypted {
			return fmt.Errorf("%s: %w", pd.path, ErrEncrypted)
		}
		rs = append(rs, bytes.NewReader(pd.raw))
	}

	if len(rs) == 1 {
		_, err := io.Copy(w, rs[0])
		return err
	}
	return api.MergeRaw(rs, w, false, p.config())
}

// inspect reads raw with no password. Encryption is taken from the parsed
// trailer, or from pdfcpu rejecting the empty user password.
func (p *PDFCPU) inspect(raw []byte) (pages int, encrypted bool, err error) {
	ctx, err := api.ReadContext(bytes.NewReader(raw), p.config())
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return 0, true, nil
		}
		return 0, false, err
	}
	if ctx.Encrypt != nil {
		return 0, true, nil
	}
	if err := api.ValidateContext(ctx); err != nil {
		return 0, false, err
	}
	return ctx.PageCount, false, nil
}

type pdfDocument struct {
	backend   *PDFCPU
	path      string
	raw       []byte
	pages     int
	encrypted bool
}

func (d *pdfDocument) Encrypted() bool { return d.encrypted }

func (d *pdfDocument) Pages() int { return d.pages }

// Decrypt replaces the document bytes with a decrypted copy. The password
// is tried as both user and owner password.
func (d *pdfDocument) Decrypt(password string) error {
	if !d.encrypted {
		return nil
	}

	conf := d.backend.config()
	conf.UserPW = password
	conf.OwnerPW = password

	var plain bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(d.raw), &plain, conf); err != nil {
		return err
	}
	pages, encrypted, err := d.backend.inspect(plain.Bytes())
	if err != nil {
		return fmt.Errorf("decrypted file is invalid: %w", err)
	}
	if encrypted {
		return fmt.Errorf("%s: still encrypted after decryption", d.path)
	}

	d.raw = plain.Bytes()
	d.pages = pages
	d.encrypted = false
	return nil
}
