package view

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/casa/internal/billing"
	"github.com/MrJamesThe3rd/casa/internal/proration"
)

// SummaryModel shows the current split per resident and the category totals.
type SummaryModel struct {
	billingService *billing.Service
	currency       string

	result  *proration.Result
	loading bool
	err     error
}

func NewSummaryModel(svc *billing.Service, currency string) SummaryModel {
	return SummaryModel{
		billingService: svc,
		currency:       currency,
		loading:        true,
	}
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.loading = false
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	res := m.result
	border := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	headers := []string{"Resident", "Total", "Days", "%"}
	for _, c := range res.Catalog {
		headers = append(headers, c.String())
	}

	residents := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers(headers...)

	for _, a := range res.Residents {
		row := []string{
			a.Name.String(),
			FormatMoney(m.currency, a.Total),
			strconv.Itoa(a.Days),
			FormatPercent(a.Proportion),
		}
		for _, c := range res.Catalog {
			row = append(row, FormatMoney(m.currency, a.Categories[c].Amount))
		}

		residents.Row(row...)
	}

	totals := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers("Category", "Total")

	for _, c := range res.Catalog {
		totals.Row(c.String(), FormatMoney(m.currency, res.Totals[c]))
	}

	parts := []string{
		headerStyle.Render(fmt.Sprintf("Reference period: %d days", res.ReferenceDays)),
		residents.Render(),
		totals.Render(),
		accentStyle.Render("Total General: " + FormatMoney(m.currency, res.Totals.Grand())),
	}

	for _, c := range res.Unallocated {
		parts = append(parts, errorStyle.Render(
			fmt.Sprintf("%s: %s has no resident to charge", c, FormatMoney(m.currency, res.Totals[c])),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type summaryMsg struct {
	result *proration.Result
	err    error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.billingService.Summary(ctx)

		return summaryMsg{result: res, err: err}
	}
}
