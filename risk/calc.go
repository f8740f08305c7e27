package risk

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Grade string

const (
	GradeGood Grade = "good" // ratio >= 3
	GradeFair Grade = "fair" // ratio >= 2
	GradePoor Grade = "poor"
)

type Result struct {
	RiskAmount   decimal.Decimal
	RewardAmount decimal.Decimal
	Ratio        decimal.Decimal // reward per unit of risk, shown as 1:N
}

// Calculate computes risk and reward in account currency:
//
//	risk   = balance * risk% / 100
//	reward = risk * tp / sl
//	ratio  = tp / sl
//
// Warnings from Evaluate are not enforced here; callers that want the
// confirmation step call Evaluate first.
func Calculate(in Inputs) (Result, error) {
	d := Evaluate(DefaultPolicy(), in)
	if !d.Allowed {
		return Result{}, &InputError{Violations: d.Violations}
	}

	balance := decimal.NewFromFloat(in.AccountBalance)
	pct := decimal.NewFromFloat(in.RiskPercentage)
	sl := decimal.NewFromFloat(in.StopLossPips)
	tp := decimal.NewFromFloat(in.TakeProfitPips)

	riskAmt := balance.Mul(pct).Div(hundred)

	return Result{
		RiskAmount:   riskAmt,
		RewardAmount: riskAmt.Mul(tp).Div(sl),
		Ratio:        tp.Div(sl),
	}, nil
}

func (r Result) Grade() Grade {
	switch {
	case r.Ratio.GreaterThanOrEqual(decimal.NewFromInt(3)):
		return GradeGood
	case r.Ratio.GreaterThanOrEqual(decimal.NewFromInt(2)):
		return GradeFair
	default:
		return GradePoor
	}
}

// FormatMoney renders an amount as "$200.00".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatRatio renders a ratio as "1:3.00".
func FormatRatio(d decimal.Decimal) string {
	return "1:" + d.StringFixed(2)
}
