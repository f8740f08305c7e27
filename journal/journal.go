// journal/journal.go
package journal

// StorageKey is the key the browser journal has always used. Keeping it lets
// the CLI read data exported from a browser profile as-is.
const StorageKey = "mubrafx_trades"

type TradeType string

const (
	Buy  TradeType = "Buy"
	Sell TradeType = "Sell"
)

// TradeRecord is one logged trade. The JSON shape matches what the browser
// journal wrote to local storage.
type TradeRecord struct {
	ID     int64     `json:"id"`
	Date   string    `json:"date"` // YYYY-MM-DD
	Pair   string    `json:"pair"`
	Type   TradeType `json:"type"`
	Risk   float64   `json:"risk"`   // percent of account
	Result float64   `json:"result"` // P/L in account currency
	Notes  string    `json:"notes"`
}

// TradeInput holds the raw form values for a new trade. Risk and Result are
// strings because parsing them is part of validation.
type TradeInput struct {
	Date   string
	Pair   string
	Type   string
	Risk   string
	Result string
	Notes  string
}

type EventKind string

const (
	EventAdded    EventKind = "added"
	EventDeleted  EventKind = "deleted"
	EventCleared  EventKind = "cleared"
	EventImported EventKind = "imported"
)

// Event is sent to listeners after a mutation has been persisted. Trades is a
// copy of the whole collection, newest first.
type Event struct {
	Kind   EventKind
	Trade  TradeRecord // zero for cleared/imported
	Trades []TradeRecord
}

type Listener func(Event)
