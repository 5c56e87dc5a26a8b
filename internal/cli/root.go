// Package cli implements the casa command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/casa/internal/app"
	"github.com/MrJamesThe3rd/casa/internal/config"
	"github.com/MrJamesThe3rd/casa/internal/logging"
)

// session holds the app opened for a single command run.
type session struct {
	app *app.App
}

type runFunc func(cmd *cobra.Command, args []string) error

// withApp opens the household and database around fn.
func (s *session) withApp(fn runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logging.Setup(cfg.Log.Level)

		a, err := app.New(cfg, nil)
		if err != nil {
			return err
		}

		defer func() {
			err = errors.Join(err, a.Close())
			s.app = nil
		}()

		s.app = a

		return fn(cmd, args)
	}
}

// NewRootCommand builds the casa command tree.
func NewRootCommand() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "casa",
		Short: "Split household bills by the days each resident spent at home",
		Long: `casa records household bills and splits each category among the residents
in proportion to their days of occupancy within the reference period.

Residents and the reference period are read from HOUSEHOLD_FILE (TOML).
Expenses are stored in the database selected by DB_DRIVER.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		s.addCommand(),
		s.lsCommand(),
		s.rmCommand(),
		s.summaryCommand(),
		s.reportCommand(),
		s.occupancyCommand(),
		s.importCommand(),
	)

	return root
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
