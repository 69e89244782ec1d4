package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/verification"
	"github.com/spf13/cobra"
)

// newVerifier builds the email verifier. Codes are printed locally
// because no mail transport is configured.
var newVerifier = func(out io.Writer) *verification.Verifier {
	return verification.NewVerifier(verification.SenderFunc(func(email, code string) error {
		_, err := fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Verification code for %s: %s", email, code)))
		return err
	}))
}

var errUnknownSetting = errors.New("unknown setting")

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change preferences",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingCmd())
	cmd.AddCommand(emailSettingCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return renderSettings(cmd.OutOrStdout(), s.settings)
		},
	}
}

func renderSettings(w io.Writer, settings model.AppSettings) error {
	email := settings.BackupEmail
	if email == "" {
		email = cli.SubtleStyle.Render("(not set)")
	}
	currency := settings.Currency
	if c, ok := model.LookupCurrency(settings.Currency); ok {
		currency = fmt.Sprintf("%s (%s, %s)", c.Code, c.Symbol, c.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "currency\t%s\n", currency)
	fmt.Fprintf(tw, "language\t%s\n", settings.Language)
	fmt.Fprintf(tw, "theme\t%s\n", settings.Theme)
	fmt.Fprintf(tw, "biometric\t%t\n", settings.BiometricEnabled)
	fmt.Fprintf(tw, "email\t%s\n", email)
	return tw.Flush()
}

// applySetting sets one field by name.
func applySetting(settings *model.AppSettings, field, value string) error {
	switch strings.ToLower(field) {
	case "currency":
		settings.Currency = strings.ToUpper(value)
	case "language":
		settings.Language = value
	case "theme":
		settings.Theme = model.Theme(strings.ToLower(value))
	case "biometric":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("biometric must be true or false: %w", err)
		}
		settings.BiometricEnabled = enabled
	default:
		return fmt.Errorf("%w %q (currency, language, theme, biometric)", errUnknownSetting, field)
	}
	return nil
}

func setSettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change a setting",
		Long: `Change one setting. Fields:
  currency   BRL, USD, EUR or GBP
  language   pt-BR, en-US or es-ES
  theme      light or dark
  biometric  true or false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			updated, err := s.ledger.UpdateSettings(ctx, func(settings *model.AppSettings) error {
				return applySetting(settings, args[0], args[1])
			})
			if err != nil {
				return friendly(err)
			}

			cli.ApplyTheme(updated.Theme)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Settings saved"))
			return renderSettings(cmd.OutOrStdout(), updated)
		},
	}
}

func emailSettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <address>",
		Short: "Set the backup email after verifying it",
		Long: `Send a six-digit code to the address and save it once the code is
entered. Codes expire after five minutes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			verifier := newVerifier(out)
			challenge, err := verifier.Start(args[0])
			if err != nil {
				return friendly(err)
			}

			reader := cli.NewNonBlockingReader(cmd.InOrStdin())
			code, err := cli.Ask(ctx, reader, out, "Enter the code")
			if err != nil {
				return fmt.Errorf("failed to read code: %w", err)
			}
			if err := verifier.Verify(challenge, code); err != nil {
				return common.NewUserError(cli.FormatError("Invalid or expired code, email not changed."), err)
			}

			updated, err := s.ledger.SetBackupEmail(ctx, challenge.Email)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Backup email set to "+updated.BackupEmail))
			return nil
		},
	}
}
