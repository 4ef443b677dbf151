// Package order sorts discovered PDF files for merging.
package order

import (
	"fmt"
	"strings"
)

// Strategy selects the sort key.
type Strategy string

const (
	ByFilename   Strategy = "filename"
	ByModified   Strategy = "modified"
	ByFileSize   Strategy = "filesize"
	ByPageNumber Strategy = "pagenumber"
	ByCustom     Strategy = "custom"
)

// Strategies lists every strategy in help-text order.
var Strategies = []Strategy{ByFilename, ByModified, ByFileSize, ByPageNumber, ByCustom}

// ParseStrategy parses a --sort-by value. The empty string means ByFilename.
func ParseStrategy(s string) (Strategy, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ByFilename, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid sort strategy %q (choose from %s)", s, StrategyNames())
}

// StrategyNames returns the strategies joined for use in messages.
func StrategyNames() string {
	names := make([]string, len(Strategies))
	for i, st := range Strategies {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}
