package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/daily-ledger/internal/backup"
	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/config"
	"github.com/spf13/cobra"
)

const restoreFailedMessage = "Could not restore backup, check that the file is correct."

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore a JSON backup",
		Long: `A backup holds every transaction, category and setting in one JSON file.
Importing a backup replaces everything currently stored.`,
	}

	cmd.AddCommand(exportBackupCmd())
	cmd.AddCommand(importBackupCmd())

	return cmd
}

func exportBackupCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := s.ledger.Export(ctx)
			if err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if output == "-" {
				return backup.Encode(out, data)
			}

			path := output
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				path = filepath.Join(cfg.BackupDir, backup.DefaultFileName(data.ExportDate))
			}
			path = config.ExpandPath(path)

			f, err := os.Create(path) // #nosec G304 - user-chosen output path
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			if err := backup.Encode(f, data); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write backup: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d transactions and %d categories to %s",
				len(data.Transactions), len(data.Categories), path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default: ledger-backup-<date>.json in backup.dir)")

	return cmd
}

func importBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			f, err := os.Open(config.ExpandPath(args[0])) // #nosec G304 - user-chosen input path
			if err != nil {
				return common.NewUserError(cli.FormatError(restoreFailedMessage), err)
			}
			data, err := backup.Decode(f)
			_ = f.Close()
			if err != nil {
				return common.NewUserError(cli.FormatError(restoreFailedMessage), err)
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			ok, err := confirm(cmd, force, fmt.Sprintf("Replace all data with %d transactions and %d categories from this backup?",
				len(data.Transactions), len(data.Categories)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.FormatInfo("Import canceled."))
				return nil
			}

			s.autoSnapshot(ctx, out, "import")

			if err := s.ledger.Import(ctx, data); err != nil {
				return common.NewUserError(cli.FormatError(restoreFailedMessage), err)
			}
			cli.ApplyTheme(data.Settings.WithDefaults().Theme)

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Restored %d transactions and %d categories",
				len(data.Transactions), len(data.Categories))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
