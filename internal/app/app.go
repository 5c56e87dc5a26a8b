// Package app wires configuration, storage and services for the casa binaries.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/casa/internal/billing"
	"github.com/MrJamesThe3rd/casa/internal/config"
	"github.com/MrJamesThe3rd/casa/internal/database"
	"github.com/MrJamesThe3rd/casa/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/casa/internal/expense/store"
	"github.com/MrJamesThe3rd/casa/internal/export"
	"github.com/MrJamesThe3rd/casa/internal/household"
	"github.com/MrJamesThe3rd/casa/internal/importer"
	"github.com/MrJamesThe3rd/casa/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/casa/internal/matching/store"
	"github.com/MrJamesThe3rd/casa/internal/metrics"
	"github.com/MrJamesThe3rd/casa/internal/report"
)

type App struct {
	Config    *config.Config
	DB        *sql.DB
	Household *household.Household
	Metrics   *metrics.Metrics

	Expenses *expense.Service
	Matching *matching.Service
	Importer *importer.Service
	Billing  *billing.Service
	Export   *export.Service
}

// New loads the household file, opens and migrates the database and builds every
// service. m may be nil when metrics are not served.
func New(cfg *config.Config, m *metrics.Metrics) (*App, error) {
	house, err := household.Load(cfg.Household.File)
	if err != nil {
		return nil, fmt.Errorf("loading household: %w", err)
	}

	driver, err := cfg.Driver()
	if err != nil {
		return nil, err
	}

	charset, err := cfg.Charset()
	if err != nil {
		return nil, err
	}

	db, err := database.New(driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	slog.Debug("household loaded",
		"name", house.Name,
		"period", house.Period.String(),
		"residents", len(house.Residents),
		"categories", house.Categories.Strings(),
		"driver", driver)

	var (
		expenseService  = expense.NewService(expenseStore.New(db, driver), house.Categories)
		matchingService = matching.NewService(matchingStore.New(db, driver), house.Categories)
		importService   = importer.NewService(house.Categories, matchingService)
		billingService  = billing.NewService(expenseService, house, report.NewFormatter(cfg.Report.Currency), m)
		exportService   = export.NewService(billingService, charset)
	)

	return &App{
		Config:    cfg,
		DB:        db,
		Household: house,
		Metrics:   m,
		Expenses:  expenseService,
		Matching:  matchingService,
		Importer:  importService,
		Billing:   billingService,
		Export:    exportService,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
