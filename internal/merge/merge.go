// Package merge combines an ordered list of PDF files into one document.
//
// Inputs are opened one at a time through a Backend. Encrypted inputs are
// unlocked with a password obtained from a PasswordPrompt. An input that
// cannot be opened or unlocked is logged and skipped, never fatal. Only
// failing to produce the output file aborts a job.
package merge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"example.com/mergepdf/internal/domain"
)

var (
	// ErrEncrypted is returned when a document that was never unlocked is
	// handed to Backend.Write.
	ErrEncrypted = errors.New("document is encrypted")
	// ErrNoDocuments is returned by Backend.Write when given nothing to write.
	ErrNoDocuments = errors.New("no documents to merge")
	// ErrNoPrompt is the decryption error when the engine has no prompt.
	ErrNoPrompt = errors.New("no password prompt available")
)

// Document is an opened input PDF.
type Document interface {
	// Encrypted reports whether the document still needs a password.
	Encrypted() bool
	// Decrypt unlocks the document. On success Encrypted returns false.
	Decrypt(password string) error
	// Pages returns the page count, or 0 while the document is encrypted.
	Pages() int
}

// Backend is the PDF library behind the engine.
type Backend interface {
	Open(path string) (Document, error)
	// Write merges docs, in order, into w.
	Write(w io.Writer, docs []Document) error
}

// PasswordPrompt asks the user for the password of an encrypted file.
type PasswordPrompt interface {
	Ask(filename string) (string, error)
}

// Job describes one merge.
type Job struct {
	Files  []domain.PDFFile
	Output string
	DryRun bool
}

// Skip records an input left out of the output.
type Skip struct {
	Path string
	Err  error
}

// Outcome reports what a job did.
type Outcome struct {
	Output  string
	Written bool
	Merged  []string
	Skipped []Skip
	Pages   int
}

type Engine struct {
	backend Backend
	prompt  PasswordPrompt
	logger  *log.Logger
}

// New returns an Engine. prompt may be nil, in which case every encrypted
// input is skipped.
func New(backend Backend, prompt PasswordPrompt, logger *log.Logger) *Engine {
	return &Engine{backend: backend, prompt: prompt, logger: logger}
}

// Run executes job.
//
// An empty job and a dry run write nothing and return a nil error. So
// does a job where every input was skipped. The returned error is non-nil
// only when the output could not be written or ctx was cancelled.
func (e *Engine) Run(ctx context.Context, job Job) (Outcome, error) {
	out := Outcome{Output: job.Output}

	if len(job.Files) == 0 {
		e.logger.Warn("No PDF files found to merge.")
		return out, nil
	}

	if job.DryRun {
		e.logger.Info("[Dry Run] The following PDF files would be merged:")
		for _, f := range job.Files {
			e.logger.Infof("  - %s", f.Path)
		}
		e.logger.Infof("[Dry Run] Output file would be: %s", job.Output)
		return out, nil
	}

	docs := make([]Document, 0, len(job.Files))
	for _, f := range job.Files {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("merge canceled: %w", err)
		}

		doc, err := e.open(f.Path)
		if err != nil {
			out.Skipped = append(out.Skipped, Skip{Path: f.Path, Err: err})
			continue
		}

		e.logger.Info("Adding", "file", f.Path)
		e.logger.Debug("Document opened", "file", f.Path, "pages", doc.Pages())
		docs = append(docs, doc)
		out.Merged = append(out.Merged, f.Path)
		out.Pages += doc.Pages()
	}

	if len(docs) == 0 {
		e.logger.Warn("No readable PDF files, nothing written", "output", job.Output, "skipped", len(out.Skipped))
		return out, nil
	}

	err := writeFile(job.Output, func(w io.Writer) error {
		return e.backend.Write(w, docs)
	})
	if err != nil {
		return out, err
	}

	out.Written = true
	e.logger.Info("Merged PDF saved", "output", job.Output, "files", len(docs), "pages", out.Pages)
	return out, nil
}

// open opens path and unlocks it when needed. Failures are logged here so
// the caller only has to record the skip.
func (e *Engine) open(path string) (Document, error) {
	doc, err := e.backend.Open(path)
	if err != nil {
		e.logger.Warn("Skipping file due to error", "file", path, "err", err)
		return nil, err
	}
	if !doc.Encrypted() {
		return doc, nil
	}

	e.logger.Debug("File is encrypted, asking for password", "file", path)
	if err := e.unlock(path, doc); err != nil {
		e.logger.Warn("Skipping file due to decryption error", "file", path, "err", err)
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return doc, nil
}

func (e *Engine) unlock(path string, doc Document) error {
	if e.prompt == nil {
		return ErrNoPrompt
	}
	password, err := e.prompt.Ask(path)
	if err != nil {
		return err
	}
	return doc.Decrypt(password)
}
