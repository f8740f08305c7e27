package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/render"
	"github.com/spf13/cobra"
)

// tableWatch keeps the collection published by the last mutation so the
// table can be redrawn, the way the web page refreshed it, after the
// command has reported the outcome.
type tableWatch struct {
	trades  []journal.TradeRecord
	changed bool
	stop    func()
}

func watchTable(s *journal.Store) *tableWatch {
	w := &tableWatch{}
	w.stop = s.Subscribe(func(ev journal.Event) {
		w.trades = ev.Trades
		w.changed = true
	})
	return w
}

// show prints the table if a mutation happened.
func (w *tableWatch) show(cmd *cobra.Command) {
	if !w.changed {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout())
	if err := render.Table(cmd.OutOrStdout(), w.trades); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "render:", err)
	}
}

func newAddCmd(a *app) *cobra.Command {
	var in journal.TradeInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a trade",
		Long: `Validate a trade and add it to the top of the journal.

Example:
  fxjournal add --pair eurusd --type buy --risk 2 --result 150.50 --notes "London open"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.journal()
			if err != nil {
				return err
			}
			if in.Date == "" {
				in.Date = a.now().Format(journal.DateLayout)
			}

			w := watchTable(s)
			defer w.stop()

			if _, err := s.AddTrade(in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Trade added successfully!")
			w.show(cmd)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", "", "trade date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&in.Pair, "pair", "p", "", "currency pair, e.g. EURUSD (required)")
	cmd.Flags().StringVarP(&in.Type, "type", "t", "", "Buy or Sell (required)")
	cmd.Flags().StringVarP(&in.Risk, "risk", "r", "", "risk as percent of account (required)")
	cmd.Flags().StringVar(&in.Result, "result", "", "profit/loss in account currency")
	cmd.Flags().StringVarP(&in.Notes, "notes", "n", "", "free text notes")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Journal.Format
			}
			r, err := render.ByName(format)
			if err != nil {
				return err
			}
			s, err := a.journal()
			if err != nil {
				return err
			}
			return r.Render(cmd.OutOrStdout(), s.ListTrades())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table|org|csv|html|json")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one trade by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trade id %q", args[0])
			}

			ok, err := a.confirmer(cmd.InOrStdin(), cmd.OutOrStdout()).
				Confirm("Are you sure you want to delete this trade?")
			if err != nil || !ok {
				return err
			}

			s, err := a.journal()
			if err != nil {
				return err
			}
			w := watchTable(s)
			defer w.stop()

			if err := s.DeleteTrade(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Trade deleted")
			w.show(cmd)
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirmer(cmd.InOrStdin(), cmd.OutOrStdout()).
				Confirm("Are you sure you want to delete ALL trades? This cannot be undone.")
			if err != nil || !ok {
				return err
			}

			s, err := a.journal()
			if err != nil {
				return err
			}
			w := watchTable(s)
			defer w.stop()

			if err := s.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All trades cleared")
			w.show(cmd)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Merge trades from a JSON export",
		Long: `Merge a JSON array of trades (from "fxjournal list -f json" or a copy of
the browser's mubrafx_trades value) into the journal. Trades whose id is
already present are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			records, err := journal.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			s, err := a.journal()
			if err != nil {
				return err
			}
			n, err := s.Import(records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d trades\n", n, len(records))
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the stored journal is readable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.journal()
			if err != nil {
				return err
			}

			trades, err := s.Load()
			var ce *journal.CorruptError
			switch {
			case errors.As(err, &ce):
				fmt.Fprintf(cmd.OutOrStdout(), "corrupted: %v\n", ce.Err)
				return err
			case err != nil:
				return err
			case len(trades) == 0:
				fmt.Fprintln(cmd.OutOrStdout(), "empty")
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d trades\n", len(trades))
			}
			return nil
		},
	}
}
