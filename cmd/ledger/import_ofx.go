package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/config"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var (
		dryRun  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported by your bank. Debits
become expenses and credits become income. A transaction already present
(same day, type, amount, category and note) is skipped.

Examples:
  # Import single file
  ledger import-ofx ~/Downloads/statement_oct_2025.ofx

  # Import all QFX files in a directory
  ledger import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			parent, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			handler := cli.NewInterruptHandler(out, "Import").
				WithHint("Nothing was saved. Run the import again when ready.")
			ctx := handler.HandleInterrupts(parent)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			categories, err := s.ledger.Categories(ctx)
			if err != nil {
				return err
			}
			parser := ofx.NewParser(categories)

			slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

			var parsed []model.Transaction
			bar := cli.NewProgressBar(out, len(files), "Reading statements...")
			for _, path := range files {
				txns, err := parseOFXFile(ctx, parser, path)
				if err != nil {
					if handler.WasInterrupted() {
						return nil
					}
					return err
				}
				parsed = append(parsed, txns...)
				cli.Advance(bar)
			}

			if verbose || dryRun {
				if err := cli.RenderTransactions(out, parsed, s.settings.Currency); err != nil {
					return err
				}
			}

			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions found in %d files, nothing saved.", len(parsed), len(files))))
				return nil
			}

			added, err := s.ledger.ImportTransactions(ctx, parsed)
			if err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present)", added, len(parsed)-added)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the parsed transactions")

	return cmd
}

// expandFiles resolves globs, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		pattern = config.ExpandPath(pattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path) // #nosec G304 - user-chosen input path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	txns, err := parser.ParseFile(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	slog.Debug("Parsed statement", "file", path, "transactions", len(txns))
	return txns, nil
}
