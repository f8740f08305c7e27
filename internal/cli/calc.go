package cli

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/rustyeddy/fxjournal/risk"
	"github.com/spf13/cobra"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		in             risk.Inputs
		pipLocation    int
		quoteToAccount float64
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate risk amount, reward and risk/reward ratio",
		Long: `Calculate how much a trade risks and could make.

  risk amount = balance * risk% / 100
  reward      = risk amount * take profit / stop loss
  ratio       = 1 : take profit / stop loss

Defaults come from the calculator section of the config file.

Example:
  fxjournal calc --balance 10000 --risk 2 --stop-loss 50 --take-profit 150`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg.Calculator
			if !cmd.Flags().Changed("balance") {
				in.AccountBalance = c.AccountBalance
			}
			if !cmd.Flags().Changed("risk") {
				in.RiskPercentage = c.RiskPercentage
			}
			if !cmd.Flags().Changed("stop-loss") {
				in.StopLossPips = c.StopLossPips
			}
			if !cmd.Flags().Changed("take-profit") {
				in.TakeProfitPips = c.TakeProfitPips
			}

			if math.IsNaN(quoteToAccount) || math.IsInf(quoteToAccount, 0) || quoteToAccount <= 0 {
				return fmt.Errorf("--quote-to-account must be a positive number, got %v", quoteToAccount)
			}

			policy := risk.DefaultPolicy()
			policy.HighRiskPct = c.HighRiskPct

			d := risk.Evaluate(policy, in)
			if !d.Allowed {
				return &risk.InputError{Violations: d.Violations}
			}
			if d.NeedsConfirmation() {
				confirm := a.confirmer(cmd.InOrStdin(), cmd.OutOrStdout())
				for _, w := range d.Warnings {
					ok, err := confirm.Confirm(w.Msg)
					if err != nil {
						return err
					}
					if !ok {
						return nil
					}
				}
			}

			res, err := risk.Calculate(in)
			if err != nil {
				return err
			}

			units := risk.PositionUnits(res.RiskAmount.InexactFloat64(), in.StopLossPips, pipLocation, quoteToAccount)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Risk Amount:\t%s\n", risk.FormatMoney(res.RiskAmount))
			fmt.Fprintf(tw, "Potential Reward:\t%s\n", risk.FormatMoney(res.RewardAmount))
			fmt.Fprintf(tw, "Risk/Reward Ratio:\t%s (%s)\n", risk.FormatRatio(res.Ratio), res.Grade())
			fmt.Fprintf(tw, "Position Size:\t%.0f units (%.2f lots)\n", units, risk.Lots(units))
			fmt.Fprintf(tw, "Pip Size:\t%g\n", risk.PipSize(pipLocation))
			return tw.Flush()
		},
	}

	cmd.Flags().Float64VarP(&in.AccountBalance, "balance", "b", 0, "account balance")
	cmd.Flags().Float64VarP(&in.RiskPercentage, "risk", "r", 0, "risk percentage (2 = 2%)")
	cmd.Flags().Float64Var(&in.StopLossPips, "stop-loss", 0, "stop loss in pips")
	cmd.Flags().Float64Var(&in.TakeProfitPips, "take-profit", 0, "take profit in pips")
	cmd.Flags().IntVar(&pipLocation, "pip-location", -4, "pip location for position sizing (-4 majors, -2 JPY pairs)")
	cmd.Flags().Float64Var(&quoteToAccount, "quote-to-account", 1.0, "quote currency to account currency rate")
	return cmd
}
