package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/casa/internal/expense"
)

func (s *session) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add CATEGORY AMOUNT [DESCRIPTION...]",
		Short: "Record an expense",
		Long: `Record a bill under one of the household categories. AMOUNT accepts a dot or a
comma as decimal separator. The remaining arguments form the description.`,
		Example: `  casa add gas 45.50 "factura marzo"
  casa add internet 30,99`,
		Args: cobra.MinimumNArgs(2),
		RunE: s.withApp(s.runAdd),
	}
}

func (s *session) runAdd(cmd *cobra.Command, args []string) error {
	svc := s.app.Expenses

	params, err := expense.ParseParams(svc.Catalog(), args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}

	e, err := svc.Create(cmd.Context(), params)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s %s\n", e.ID, e.Category, s.money(e.Amount))

	return nil
}

func (s *session) lsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List recorded expenses in insertion order",
		Args:    cobra.NoArgs,
		RunE:    s.withApp(s.runLs),
	}
}

func (s *session) runLs(cmd *cobra.Command, _ []string) error {
	expenses, err := s.app.Expenses.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(expenses) == 0 {
		fmt.Fprintln(out, "No expenses recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")

	for _, e := range expenses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.CreatedAt.Format("2006-01-02"), e.Category, s.money(e.Amount), e.Description)
	}

	return tw.Flush()
}

func (s *session) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete an expense by id",
		Args:    cobra.ExactArgs(1),
		RunE:    s.withApp(s.runRm),
	}
}

func (s *session) runRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	if err := s.app.Expenses.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d\n", id)

	return nil
}
