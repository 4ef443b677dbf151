package main

import (
	"strings"

	"github.com/spf13/pflag"

	"example.com/mergepdf/internal/config"
)

// normalizeOutput appends ".pdf" unless name already ends with it in any
// case. The bool reports whether name was changed.
func normalizeOutput(name string) (string, bool) {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name, false
	}
	return name + ".pdf", true
}

// applyConfig fills every flag the user did not set from cfg.
func applyConfig(flags *pflag.FlagSet, opts *options, cfg *config.Config) {
	if !flags.Changed("sort-by") {
		opts.sortBy = cfg.SortBy
	}
	if !flags.Changed("recursive") {
		opts.recursive = cfg.Recursive
	}
	if !flags.Changed("reverse") {
		opts.reverse = cfg.Reverse
	}
	if !flags.Changed("output") {
		opts.output = cfg.Output
	}
	if !flags.Changed("verbose") {
		opts.verbose = cfg.Verbose
	}
}
