package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/casa/internal/expense"
	"github.com/MrJamesThe3rd/casa/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStateReview
	importStateResult
)

type ImportModel struct {
	expenseService *expense.Service
	importService  *importer.Service
	currency       string

	state      importState
	filePicker filepicker.Model
	format     importer.Format

	params     []expense.CreateParams
	reviewList list.Model
	skipped    map[int]bool

	status string
	err    error
}

func NewImportModel(expenseSvc *expense.Service, importSvc *importer.Service, currency string) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".tsv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		expenseService: expenseSvc,
		importService:  importSvc,
		currency:       currency,
		filePicker:     fp,
		format:         importer.FormatSheet,
		skipped:        make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Sheet" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReview {
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateReview {
			return m.updateReview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.params) == 0 {
			m.state = importStateResult
			m.status = "No expenses found in file."

			return m, nil
		}

		m.params = msg.params
		m.skipped = make(map[int]bool)
		m.state = importStateReview

		items := make([]list.Item, len(m.params))
		for i, p := range m.params {
			items[i] = reviewItem{params: p, index: i}
		}

		delegate := reviewDelegate{skipped: &m.skipped, currency: m.currency}
		m.reviewList = list.New(items, delegate, 80, 20)
		m.reviewList.Title = "Expenses to import"
		m.reviewList.SetShowStatusBar(false)
		m.reviewList.SetFilteringEnabled(false)
		m.reviewList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d expenses.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult, importStateReview:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.params = nil
		m.skipped = make(map[int]bool)

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.reviewList.Index()
		m.skipped[idx] = !m.skipped[idx]

		return m, nil
	case "a":
		for i := range m.params {
			m.skipped[i] = false
		}

		return m, nil
	case "n":
		for i := range m.params {
			m.skipped[i] = true
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.reviewList, cmd = m.reviewList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.format, m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return lipgloss.NewStyle().Padding(1).Render(m.reviewList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := errorStyle
	if m.err == nil {
		style = headerStyle
	}

	return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
}

type parseResultMsg struct {
	params []expense.CreateParams
	err    error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	format := m.format

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		params, err := m.importService.Import(ctx, format, f)

		return parseResultMsg{params: params, err: err}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	params := m.params
	skipped := m.skipped

	return func() tea.Msg {
		keep := make([]expense.CreateParams, 0, len(params))
		for i, p := range params {
			if !skipped[i] {
				keep = append(keep, p)
			}
		}

		if len(keep) == 0 {
			return confirmResultMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		created, err := m.expenseService.CreateBatch(ctx, keep)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: len(created)}
	}
}

type reviewItem struct {
	params expense.CreateParams
	index  int
}

func (i reviewItem) Title() string       { return "" }
func (i reviewItem) Description() string { return "" }
func (i reviewItem) FilterValue() string { return "" }

type reviewDelegate struct {
	skipped  *map[int]bool
	currency string
}

func (d reviewDelegate) Height() int                             { return 1 }
func (d reviewDelegate) Spacing() int                            { return 0 }
func (d reviewDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d reviewDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(reviewItem)
	if !ok {
		return
	}

	checkbox := "[x]"
	if (*d.skipped)[item.index] {
		checkbox = "[ ]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%s %-14s %10s  %s",
		cursor, checkbox,
		item.params.Category,
		FormatMoney(d.currency, item.params.Amount),
		item.params.Description,
	)
}
