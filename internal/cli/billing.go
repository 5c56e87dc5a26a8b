package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (s *session) money(d decimal.Decimal) string {
	return s.app.Config.Report.Currency + d.StringFixed(2)
}

func (s *session) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show category totals and each resident's share",
		Args:  cobra.NoArgs,
		RunE:  s.withApp(s.runSummary),
	}
}

func (s *session) runSummary(cmd *cobra.Command, _ []string) error {
	res, err := s.app.Billing.Summary(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "RESIDENT\tDAYS\tSHARE\tTOTAL")
	for _, c := range res.Catalog {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintln(tw)

	for _, a := range res.Residents {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%s", a.Name, a.Days, a.Proportion*100, s.money(a.Total))
		for _, c := range res.Catalog {
			fmt.Fprintf(tw, "\t%s", s.money(a.Categories[c].Amount))
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CATEGORY\tTOTAL")

	for _, c := range res.Catalog {
		fmt.Fprintf(tw, "%s\t%s\n", c, s.money(res.Totals[c]))
	}

	fmt.Fprintf(tw, "Total General\t%s\n", s.money(res.Totals.Grand()))

	if err := tw.Flush(); err != nil {
		return err
	}

	for _, c := range res.Unallocated {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s (%s) has no resident to charge\n", c, s.money(res.Totals[c]))
	}

	return nil
}

func (s *session) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the proration sheet as CSV",
		Long: `Write the proration sheet as CSV in REPORT_CHARSET. With --out the sheet is
saved as facturas_resultado.csv in the given directory.`,
		Args: cobra.NoArgs,
		RunE: s.withApp(s.runReport),
	}

	cmd.Flags().StringP("out", "o", "", "Write the report file into this directory instead of stdout")

	return cmd
}

func (s *session) runReport(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("out")

	if dir == "" {
		return s.app.Export.Write(cmd.Context(), cmd.OutOrStdout())
	}

	path, err := s.app.Export.Export(cmd.Context(), dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Written %s\n", path)

	return nil
}

func (s *session) occupancyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "occupancy",
		Short: "Show the days each resident counts within the reference period",
		Args:  cobra.NoArgs,
		RunE:  s.withApp(s.runOccupancy),
	}
}

func (s *session) runOccupancy(cmd *cobra.Command, _ []string) error {
	h := s.app.Household

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reference period %s (%d days)\n\n", h.Period, h.ReferenceDays())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RESIDENT\tFROM\tTO\tDAYS\tSHARE")

	for _, st := range s.app.Billing.Occupancy() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.1f%%\n", st.Name, st.Start, st.End, st.Days, st.Proportion*100)
	}

	return tw.Flush()
}
