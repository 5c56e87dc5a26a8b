package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/casa/internal/app"
	"github.com/MrJamesThe3rd/casa/internal/config"
	casaHttp "github.com/MrJamesThe3rd/casa/internal/http"
	expenseHandler "github.com/MrJamesThe3rd/casa/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/casa/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/casa/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/casa/internal/http/matching"
	summaryHandler "github.com/MrJamesThe3rd/casa/internal/http/summary"
	"github.com/MrJamesThe3rd/casa/internal/logging"
	"github.com/MrJamesThe3rd/casa/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled. Every resource it opens is closed
// before it returns.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Setup(cfg.Log.Level)

	m := metrics.New()

	a, err := app.New(cfg, m)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		expenseH  = expenseHandler.NewHandler(a.Expenses, m)
		summaryH  = summaryHandler.NewHandler(a.Billing)
		exportH   = exportHandler.NewHandler(a.Export)
		importH   = importHandler.NewHandler(a.Importer, a.Expenses, m)
		matchingH = matchingHandler.NewHandler(a.Matching)
	)

	router := casaHttp.New(casaHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     m,
	}, expenseH, summaryH, exportH, importH, matchingH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("starting server", "port", srv.Addr, "household", a.Household.Name)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped")

	return nil
}
