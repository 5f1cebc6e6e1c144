// Package cli implements the dtm command tree.
package cli

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtmlib/dtm/internal/config"
	"github.com/dtmlib/dtm/internal/zonedb"
)

// env holds the process dependencies the commands read. Tests replace them
// to get deterministic output.
type env struct {
	now       func() time.Time
	randN     func(n int64) int64
	zoneNames func() ([]string, error)
}

func defaultEnv() *env {
	return &env{
		now:       time.Now,
		randN:     rand.Int64N,
		zoneNames: zonedb.Names,
	}
}

// NewRootCommand returns the dtm command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultEnv())
}

func newRootCommand(e *env) *cobra.Command {
	var (
		debug      bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "dtm",
		Short:        "Date and time utilities",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
				slog.SetDefault(slog.New(handler))
			}
			if configPath != "" {
				return config.ReadFile(configPath)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file with formats and str settings")

	root.AddCommand(
		newCalendarCommand(e),
		newLTUCommand(e),
		newUTLCommand(e),
		newRDTCommand(e),
		newRTDCommand(e),
		newSplatCommand(e),
		newZonesCommand(e),
		newZDetailsCommand(e),
		newWestEastCommand(e),
	)
	return root
}
