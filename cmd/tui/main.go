package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/casa/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/casa/internal/app"
	"github.com/MrJamesThe3rd/casa/internal/config"
	"github.com/MrJamesThe3rd/casa/internal/logging"
)

const logFile = "casa-tui.log"

type model struct {
	app *app.App

	currentView View

	addView     view.AddModel
	listView    view.ListModel
	summaryView view.SummaryModel
	exportView  view.ExportModel
	importView  view.ImportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewAdd     View = 1
	ViewList    View = 2
	ViewSummary View = 3
	ViewExport  View = 4
	ViewImport  View = 5
)

// setupLogging keeps log records off the terminal the TUI is drawing on.
// Setting DEBUG writes them to casa-tui.log instead of discarding them.
func setupLogging(level string) (io.Closer, error) {
	if os.Getenv("DEBUG") == "" {
		slog.SetDefault(logging.New(io.Discard, logging.ParseLevel(level)))
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logging.New(f, slog.LevelDebug))

	return f, nil
}

func initialModel(a *app.App) model {
	currency := a.Config.Report.Currency

	return model{
		app:         a,
		currentView: ViewMenu,
		addView:     view.NewAddModel(a.Expenses, currency),
		listView:    view.NewListModel(a.Expenses, currency),
		summaryView: view.NewSummaryModel(a.Billing, currency),
		exportView:  view.NewExportModel(a.Export, a.Config.Report.ExportDir),
		importView:  view.NewImportModel(a.Expenses, a.Importer, currency),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	currency := m.app.Config.Report.Currency

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAdd
				m.addView = view.NewAddModel(m.app.Expenses, currency)

				return m, m.addView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.app.Expenses, currency)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.app.Billing, currency)

				return m, m.summaryView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.app.Export, m.app.Config.Report.ExportDir)

				return m, m.exportView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.app.Expenses, m.app.Importer, currency)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		name := m.app.Household.Name
		if name == "" {
			name = "Casa"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			name + "\n\n" +
				"1. Add Expense\n" +
				"2. List Expenses\n" +
				"3. Summary\n" +
				"4. Export Report\n" +
				"5. Import Sheet\n\n" +
				"q. Quit",
		)
	case ViewAdd:
		return view.Frame(m.addView)
	case ViewList:
		return view.Frame(m.listView)
	case ViewSummary:
		return view.Frame(m.summaryView)
	case ViewExport:
		return view.Frame(m.exportView)
	case ViewImport:
		return view.Frame(m.importView)
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		// The TUI may have redirected the default logger, so report on stderr directly.
		logging.New(os.Stderr, slog.LevelError).Error("casa tui failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(cfg.Log.Level)

	a, err := app.New(cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	closer, err := setupLogging(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	if _, err := tea.NewProgram(initialModel(a)).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
