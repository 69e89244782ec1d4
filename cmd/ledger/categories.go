package main

import (
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/cli"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long: `List, add, rename and delete categories. Transactions keep a copy of
their category, so renaming or deleting one never changes past records.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var categories []model.Category
			if typ == "" {
				categories, err = s.ledger.Categories(ctx)
			} else {
				t, parseErr := model.ParseTransactionType(typ)
				if parseErr != nil {
					return friendly(parseErr)
				}
				categories, err = s.ledger.CategoriesFor(ctx, t)
			}
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No categories found. Use 'ledger categories add' to create one."))
				return nil
			}
			return cli.RenderCategories(cmd.OutOrStdout(), categories)
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only categories offered for expense or income")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			cat, err := s.ledger.AddCategory(ctx, args[0], icon, color)
			if err != nil {
				return friendly(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %s (%s)", cat.Label(), cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&icon, "icon", "i", "📦", "Emoji shown next to the name")
	cmd.Flags().StringVar(&color, "color", model.DefaultCategoryColor, "Display color as #RRGGBB")

	return cmd
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			cat, err := s.ledger.RenameCategory(ctx, args[0], args[1])
			if err != nil {
				return friendly(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Renamed to "+cat.Label()))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			cat, err := s.ledger.Category(ctx, args[0])
			if err != nil {
				return friendly(err)
			}

			ok, err := confirm(cmd, force, fmt.Sprintf("Delete category %s? Existing transactions keep it.", cat.Label()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, cli.FormatInfo("Nothing deleted."))
				return nil
			}

			if _, err := s.ledger.DeleteCategory(ctx, cat.ID); err != nil {
				return friendly(err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Deleted category "+cat.Label()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
