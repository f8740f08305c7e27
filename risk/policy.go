package risk

// Inputs are the four calculator fields.
type Inputs struct {
	AccountBalance float64 // account currency
	RiskPercentage float64 // 2 means 2%
	StopLossPips   float64
	TakeProfitPips float64
}

// Policy holds the limits the calculator checks inputs against.
type Policy struct {
	// Above this a warning is raised and the caller should confirm.
	HighRiskPct float64 // 5

	// Above this the inputs are rejected.
	MaxRiskPct float64 // 100
}

func DefaultPolicy() Policy {
	return Policy{
		HighRiskPct: 5,
		MaxRiskPct:  100,
	}
}

// DefaultInputs are the values the calculator form starts with.
func DefaultInputs() Inputs {
	return Inputs{
		AccountBalance: 10000,
		RiskPercentage: 2,
		StopLossPips:   50,
		TakeProfitPips: 150,
	}
}
