package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// RootConfig holds the global flags.
type RootConfig struct {
	ConfigPath string
	Store      string
	Dir        string
	DBPath     string
	LogLevel   string
	Yes        bool
}

// newRootCmd builds the command tree around a. Run it with run so the
// storage it opens is closed.
func newRootCmd(a *app) *cobra.Command {
	rc := a.rc

	cmd := &cobra.Command{
		Use:   "fxjournal",
		Short: "MUBRA FX trade journal and risk/reward calculator",
		Long: `fxjournal keeps a journal of FX trades and sizes new ones.

It provides tools for:
  - Logging trades (date, pair, direction, risk %, result, notes)
  - Listing the journal as a table, org-mode, CSV, HTML or JSON
  - Deleting one trade or clearing the journal
  - Calculating risk amount, potential reward and risk/reward ratio

The journal is stored under the key "mubrafx_trades" in a file, SQLite or
Redis backend, in the same JSON shape the MUBRA FX web journal used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.Store, "store", "", "Storage backend: memory|file|sqlite|redis")
	cmd.PersistentFlags().StringVar(&rc.Dir, "dir", "", "Directory for file storage")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite database for sqlite storage")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVarP(&rc.Yes, "yes", "y", false, "Answer yes to confirmation prompts")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
		newCalcCmd(a),
		newConfigCmd(a),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fxjournal version %s\n", version)
		},
	})

	return cmd
}

// run executes cmd and then releases what a opened. cobra skips post-run
// hooks when a command fails, so teardown happens here.
func run(a *app, cmd *cobra.Command) error {
	err := cmd.Execute()
	if terr := a.teardown(); err == nil {
		err = terr
	}
	return err
}

func Execute() {
	a := newApp()
	if err := run(a, newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
