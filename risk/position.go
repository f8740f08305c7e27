package risk

// EUR_USD → quote = USD → QuoteToAccount = 1.0
// USD_JPY → quote = JPY → QuoteToAccount = 1 / USDJPY_mid

import (
	"math"

	"github.com/shopspring/decimal"
)

// PipSize returns the pip size for a pip location, e.g. -4 → 0.0001.
func PipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}

// PositionUnits returns how many units lose riskAmount when price moves
// stopPips against the position. Rounded down to whole units; zero when any
// input is not a finite number or the stop or conversion rate is not positive.
func PositionUnits(riskAmount, stopPips float64, pipLocation int, quoteToAccount float64) float64 {
	if !finite(riskAmount) || !finite(stopPips) || !finite(quoteToAccount) {
		return 0
	}
	if riskAmount <= 0 || stopPips <= 0 || quoteToAccount <= 0 {
		return 0
	}
	pip := decimal.New(1, int32(pipLocation))
	pipValue := pip.Mul(decimal.NewFromFloat(quoteToAccount)).Mul(decimal.NewFromFloat(stopPips))
	units := decimal.NewFromFloat(riskAmount).Div(pipValue).Floor()
	return units.InexactFloat64()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Lots converts units to standard lots of 100,000.
func Lots(units float64) float64 {
	return units / 100_000
}
