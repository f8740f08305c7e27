package risk

import (
	"fmt"
	"math"
	"strings"
)

const (
	CodeNotANumber  = "NOT_A_NUMBER"
	CodeNotPositive = "NOT_POSITIVE"
	CodeRiskOver    = "RISK_OVER_MAX"
	CodeHighRisk    = "HIGH_RISK"
)

type Violation struct {
	Code string
	Msg  string
}

// Decision is the outcome of checking Inputs. Violations block the
// calculation; Warnings need the user to confirm.
type Decision struct {
	Allowed    bool
	Violations []Violation
	Warnings   []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

func (d *Decision) warn(code, msg string) {
	d.Warnings = append(d.Warnings, Violation{Code: code, Msg: msg})
}

// NeedsConfirmation reports whether the inputs are valid but risky.
func (d Decision) NeedsConfirmation() bool {
	return d.Allowed && len(d.Warnings) > 0
}

// Evaluate checks in against p. Checks stop at the first failing group so
// the user gets one message at a time.
func Evaluate(p Policy, in Inputs) Decision {
	d := Decision{Allowed: true}

	vals := []float64{in.AccountBalance, in.RiskPercentage, in.StopLossPips, in.TakeProfitPips}

	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			d.add(CodeNotANumber, "Please fill in all fields with valid numbers")
			return d
		}
	}

	for _, v := range vals {
		if v <= 0 {
			d.add(CodeNotPositive, "All values must be greater than zero")
			return d
		}
	}

	if in.RiskPercentage > p.MaxRiskPct {
		d.add(CodeRiskOver, fmt.Sprintf("Risk percentage cannot exceed %g%%", p.MaxRiskPct))
		return d
	}

	if in.RiskPercentage > p.HighRiskPct {
		d.warn(CodeHighRisk, fmt.Sprintf(
			"Warning: %g%% risk is high. Professional traders typically risk 1-2%% per trade. Continue?",
			in.RiskPercentage))
	}

	return d
}

// InputError is returned by Calculate when Evaluate rejects the inputs.
type InputError struct {
	Violations []Violation
}

func (e *InputError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Msg)
	}
	return strings.Join(msgs, "; ")
}
