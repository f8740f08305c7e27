package journal

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of TradeRecord.Date.
const DateLayout = "2006-01-02"

// Validate checks a form submission and returns the record that would be
// stored, without an ID. Required fields are checked before numbers so the
// user sees the same message order as the browser form.
func Validate(in TradeInput) (TradeRecord, error) {
	date := strings.TrimSpace(in.Date)
	pair := strings.ToUpper(strings.TrimSpace(in.Pair))
	typ := strings.TrimSpace(in.Type)

	switch {
	case date == "":
		return TradeRecord{}, &MissingFieldError{Field: "date"}
	case pair == "":
		return TradeRecord{}, &MissingFieldError{Field: "pair"}
	case typ == "":
		return TradeRecord{}, &MissingFieldError{Field: "type"}
	}

	tt, err := ParseTradeType(typ)
	if err != nil {
		return TradeRecord{}, err
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return TradeRecord{}, &InvalidDateError{Value: date}
	}

	risk, err := parseFloat(in.Risk)
	if err != nil || risk <= 0 {
		return TradeRecord{}, &InvalidRiskError{Value: in.Risk}
	}

	var result float64
	if strings.TrimSpace(in.Result) != "" {
		result, err = parseFloat(in.Result)
		if err != nil {
			return TradeRecord{}, &InvalidResultError{Value: in.Result}
		}
	}

	return TradeRecord{
		Date:   date,
		Pair:   pair,
		Type:   tt,
		Risk:   risk,
		Result: result,
		Notes:  strings.TrimSpace(in.Notes),
	}, nil
}

// ParseTradeType accepts buy/sell in any case.
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	}
	return "", &InvalidTypeError{Value: s}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}
