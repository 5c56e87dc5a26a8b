package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/casa/internal/expense"
)

type addState int

const (
	addStateForm addState = iota
	addStateResult
)

// AddModel records one expense through a form.
type AddModel struct {
	expenseService *expense.Service
	currency       string

	state  addState
	form   *huh.Form
	fields *addFields
	saved  *expense.Expense
	err    error
}

// addFields outlives the value copies bubbletea makes of the model, so the form
// can bind to it.
type addFields struct {
	category    string
	amount      string
	description string
}

func NewAddModel(svc *expense.Service, currency string) AddModel {
	m := AddModel{
		expenseService: svc,
		currency:       currency,
		fields:         &addFields{},
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string { return "Add Expense" }

func (m AddModel) ShortHelp() string {
	if m.state == addStateResult {
		return "Esc: back to menu | Enter: add another"
	}

	return "Esc: back | Enter: confirm"
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *AddModel) buildForm() *huh.Form {
	catalog := m.expenseService.Catalog()

	options := make([]huh.Option[string], len(catalog))
	for i, c := range catalog {
		options[i] = huh.NewOption(c.String(), c.String())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.fields.category),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("45.50").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					_, err := expense.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Placeholder("optional").
				Value(&m.fields.description),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(addResultMsg); ok {
		m.state = addStateResult
		m.saved = res.expense
		m.err = res.err

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.Type == tea.KeyEsc:
			return m, Back
		case m.state == addStateResult && keyMsg.Type == tea.KeyEnter:
			m.reset()
			return m, m.form.Init()
		}
	}

	if m.state != addStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m *AddModel) reset() {
	m.state = addStateForm
	m.saved = nil
	m.err = nil
	m.fields = &addFields{}
	m.form = m.buildForm()
}

func (m AddModel) View() string {
	if m.state == addStateForm {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	line := fmt.Sprintf("#%d %s %s", m.saved.ID, m.saved.Category, FormatMoney(m.currency, m.saved.Amount))
	if m.saved.Description != "" {
		line += " " + m.saved.Description
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render("Expense saved"), "", line),
	)
}

type addResultMsg struct {
	expense *expense.Expense
	err     error
}

func (m AddModel) saveCmd() tea.Cmd {
	category, amount, description := m.fields.category, m.fields.amount, strings.TrimSpace(m.fields.description)

	return func() tea.Msg {
		params, err := expense.ParseParams(m.expenseService.Catalog(), category, amount, description)
		if err != nil {
			return addResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.expenseService.Create(ctx, params)

		return addResultMsg{expense: e, err: err}
	}
}
