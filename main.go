package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"example.com/mergepdf/internal/config"
	"example.com/mergepdf/internal/merge"
	"example.com/mergepdf/internal/order"
	"example.com/mergepdf/internal/prompt"
	"example.com/mergepdf/internal/scan"
)

func main() {
	root := newRootCmd(app{stderr: os.Stderr, prompt: prompt.NewTerminal()})
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(resolveVersion()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitFailure)
	}
}

func newRootCmd(a app) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName + " <folder> [flags]",
		Short: "Merge all PDF files in a folder",
		Long: `Merge all PDF files in a folder into a single PDF.

Files can be ordered by name, modification time, size, page count or an
explicit list. Encrypted files prompt for their password; files that
cannot be read are skipped with a warning.

Flags left unset fall back to the config file ($XDG_CONFIG_HOME/mergepdf/config.toml)
and to MERGEPDF_* environment variables (MERGEPDF_SORT_BY, MERGEPDF_OUTPUT, ...).`,
		Example: `  mergepdf ./pdfs -o combined.pdf
  mergepdf ./docs --recursive --sort-by modified
  mergepdf ./invoices --sort-by custom --custom-order A.pdf B.pdf
  mergepdf ./reports --sort-by custom --order-file order.txt -o final.pdf`,
		Version:       resolveVersion(),
		Args:          validateArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.folder = args[0]
			// --custom-order A.pdf B.pdf leaves B.pdf as a positional.
			opts.customOrder = append(opts.customOrder, args[1:]...)
			return a.run(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVar(&opts.recursive, "recursive", false, "recursively search subfolders for PDF files")
	flags.StringVar(&opts.sortBy, "sort-by", string(order.ByFilename), "sort PDF files by: "+order.StrategyNames())
	flags.StringArrayVar(&opts.customOrder, "custom-order", nil,
		"file names in custom sort order (use with --sort-by custom); with --recursive, a name shared by several files picks the lexicographically smallest path")
	flags.StringVar(&opts.orderFile, "order-file", "", "text file listing file names for custom sort order; wins over --custom-order")
	flags.BoolVar(&opts.reverse, "reverse", false, "reverse the sort order")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "name of the output merged PDF file")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "preview the files to be merged without creating output")
	flags.BoolVar(&opts.verbose, "verbose", false, "enable verbose output")
	flags.StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mergepdf/config.toml)")

	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageError(errors.New("missing required argument: folder"))
	}
	if len(args) > 1 && !cmd.Flags().Changed("custom-order") {
		return usageError(fmt.Errorf("unexpected arguments: %s", strings.Join(args[1:], " ")))
	}
	return nil
}

func (a app) run(cmd *cobra.Command, opts *options) error {
	cfg, cfgPath, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		ConfigDir:  a.configDir,
	})
	if err != nil {
		return failure(err)
	}
	applyConfig(cmd.Flags(), opts, cfg)

	logger := newLogger(a.stderr, opts.verbose)
	if cfgPath != "" {
		logger.Debug("Loaded config", "path", cfgPath)
	}

	strategy, err := order.ParseStrategy(opts.sortBy)
	if err != nil {
		return usageError(err)
	}

	files, err := scan.PDFs(opts.folder, opts.recursive, logger)
	if err != nil {
		if errors.Is(err, scan.ErrNotDirectory) {
			return failure(fmt.Errorf("%s is not a valid directory", opts.folder))
		}
		return failure(err)
	}
	logger.Debug("Found PDF files", "count", len(files), "folder", opts.folder, "recursive", opts.recursive)

	custom := order.CustomOrder(opts.customOrder)
	if opts.orderFile != "" {
		if len(custom) > 0 {
			logger.Debug("Both --order-file and --custom-order given, using --order-file")
		}
		if custom, err = order.ReadOrderFile(opts.orderFile); err != nil {
			return failure(err)
		}
	}

	backend := merge.NewPDFCPU()
	sorted := order.Sort(files, order.Options{
		Strategy: strategy,
		Custom:   custom,
		Reverse:  opts.reverse,
		Pages:    backend,
	}, logger)

	output, adjusted := normalizeOutput(opts.output)
	if adjusted {
		logger.Debug("Adjusted output filename", "output", output)
	}

	_, err = merge.New(backend, a.prompt, logger).Run(cmd.Context(), merge.Job{
		Files:  sorted,
		Output: output,
		DryRun: opts.dryRun,
	})
	if err != nil {
		return failure(err)
	}
	return nil
}
