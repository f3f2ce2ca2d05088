// Package cli wires the harvest subcommands to the source adapters and the
// local cache.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"jpdiet/kokkaiharvester/config"
	"jpdiet/kokkaiharvester/helpers"
	"jpdiet/kokkaiharvester/internal/store"
	"jpdiet/kokkaiharvester/internal/sync"
)

// app holds the shared dependencies built once before any subcommand runs
type app struct {
	cfg    config.Config
	client *helpers.Client
	store  *store.Store
}

var shared app

var rootCmd = &cobra.Command{
	Use:   "kokkaiharvester",
	Short: "Harvest Japanese Diet records into a local file cache",
	Long: "kokkaiharvester downloads parliamentary minutes, written questions, " +
		"video session metadata and the session calendar, caching each record " +
		"as a file so repeated runs only fetch what changed.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		shared = app{
			cfg:    cfg,
			client: helpers.NewClient(cfg),
			store:  store.New(cfg.DataRoot),
		}
		return nil
	},
}

// ExecuteContext runs the CLI under the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// printSummary renders the per-run counters after a harvest, as a table for
// humans and one JSON line for scripts
func printSummary(scope string, s sync.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Scope", "Fetched", "Skipped", "Errored", "Total"})
	t.AppendRow(table.Row{scope, s.Fetched, s.Skipped, s.Errored, s.Total})
	t.Render()

	if line, err := json.Marshal(s); err == nil {
		fmt.Println(string(line))
	}
}
