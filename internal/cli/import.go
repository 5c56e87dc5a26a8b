package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/casa/internal/importer"
)

func (s *session) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk-load expenses from a spreadsheet CSV",
		Long: `Bulk-load expenses from a CSV exported from a spreadsheet. The header row
selects the layout (Tipo;Cantidad;Descripción or category,amount,description).
Rows without a category are matched against learnt description rules.
Nothing is stored if any row is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: s.withApp(s.runImport),
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Parse and print the rows without storing them")

	return cmd
}

func (s *session) runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	params, err := s.app.Importer.Import(cmd.Context(), importer.FormatSheet, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if dryRun {
		for _, p := range params {
			fmt.Fprintf(out, "%s\t%s\t%s\n", p.Category, s.money(p.Amount), p.Description)
		}

		fmt.Fprintf(out, "%d rows parsed\n", len(params))

		return nil
	}

	created, err := s.app.Expenses.CreateBatch(cmd.Context(), params)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d expenses\n", len(created))

	return nil
}
