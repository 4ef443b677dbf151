package main

import (
	"io"

	"example.com/mergepdf/internal/merge"
)

// ======================= CONFIG =======================

const (
	appName = "mergepdf"

	exitFailure = 1 // invalid folder, unreadable order file, output failure
	exitUsage   = 2 // bad flags or arguments
)

// ======================= DATA TYPES ===================

// options are the parsed command-line flags.
type options struct {
	folder      string
	recursive   bool
	sortBy      string
	customOrder []string
	orderFile   string
	reverse     bool
	output      string
	dryRun      bool
	verbose     bool
	configFile  string
}

// app carries what the command needs from the process.
type app struct {
	stderr io.Writer
	prompt merge.PasswordPrompt
	// configDir replaces the per-user config directory when set.
	configDir string
}
