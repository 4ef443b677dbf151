package order

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"example.com/mergepdf/internal/domain"
)

// CustomOrder is an ordered list of file basenames.
type CustomOrder []string

// PageCounter reports the number of pages in a PDF.
type PageCounter interface {
	PageCount(path string) (int, error)
}

type Options struct {
	Strategy Strategy
	// Custom is consulted only by ByCustom. When it is empty ByCustom
	// falls back to ByFilename.
	Custom  CustomOrder
	Reverse bool
	// Pages is required by ByPageNumber. Without it every file gets the
	// unknown key and the input order is kept.
	Pages PageCounter
}

// key is a numeric sort key. An unknown key sorts after every known one
// in both directions.
type key struct {
	n       int64
	unknown bool
}

type keyed struct {
	file domain.PDFFile
	key  key
}

// Sort returns files ordered by opts. The input slice is not modified.
//
// All strategies except ByCustom are stable. ByCustom keeps only the files
// whose basename is listed, in list order, and ignores Reverse.
func Sort(files []domain.PDFFile, opts Options, logger *log.Logger) []domain.PDFFile {
	switch opts.Strategy {
	case ByCustom:
		if len(opts.Custom) > 0 {
			return byCustom(files, opts.Custom)
		}
		logger.Debug("Custom sort without an order list, falling back to filename")
		return byFilename(files, opts.Reverse)
	case ByModified:
		return byKey(files, opts.Reverse, func(f domain.PDFFile) key {
			mod, err := f.ModTime()
			if err != nil {
				logger.Debug("Cannot read modification time", "file", f.Path, "err", err)
				return key{unknown: true}
			}
			return key{n: mod.UnixNano()}
		})
	case ByFileSize:
		return byKey(files, opts.Reverse, func(f domain.PDFFile) key {
			size, err := f.Size()
			if err != nil {
				logger.Debug("Cannot read file size", "file", f.Path, "err", err)
				return key{unknown: true}
			}
			return key{n: size}
		})
	case ByPageNumber:
		return byKey(files, opts.Reverse, func(f domain.PDFFile) key {
			if opts.Pages == nil {
				return key{unknown: true}
			}
			n, err := opts.Pages.PageCount(f.Path)
			if err != nil {
				logger.Debug("Cannot read page count, sorting last", "file", f.Path, "err", err)
				return key{unknown: true}
			}
			return key{n: int64(n)}
		})
	default:
		return byFilename(files, opts.Reverse)
	}
}

func byFilename(files []domain.PDFFile, reverse bool) []domain.PDFFile {
	out := slices.Clone(files)
	slices.SortStableFunc(out, func(a, b domain.PDFFile) int {
		c := strings.Compare(a.Path, b.Path)
		if reverse {
			return -c
		}
		return c
	})
	return out
}

// byKey computes each key once, then sorts.
func byKey(files []domain.PDFFile, reverse bool, keyOf func(domain.PDFFile) key) []domain.PDFFile {
	items := make([]keyed, len(files))
	for i, f := range files {
		items[i] = keyed{file: f, key: keyOf(f)}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return compareKeys(a.key, b.key, reverse)
	})
	out := make([]domain.PDFFile, len(items))
	for i, it := range items {
		out[i] = it.file
	}
	return out
}

func compareKeys(a, b key, reverse bool) int {
	switch {
	case a.unknown && b.unknown:
		return 0
	case a.unknown:
		return 1
	case b.unknown:
		return -1
	}
	c := cmp.Compare(a.n, b.n)
	if reverse {
		return -c
	}
	return c
}

// byCustom picks files by basename in the order names lists them. A name
// listed twice yields the file twice. When several files share a
// basename the lexicographically smallest path is used.
func byCustom(files []domain.PDFFile, names CustomOrder) []domain.PDFFile {
	byName := make(map[string]domain.PDFFile, len(files))
	for _, f := range files {
		base := f.Base()
		if prev, ok := byName[base]; ok && prev.Path <= f.Path {
			continue
		}
		byName[base] = f
	}

	out := make([]domain.PDFFile, 0, len(names))
	for _, name := range names {
		if f, ok := byName[name]; ok {
			out = append(out, f)
		}
	}
	return out
}
