package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t   *testing.T
	db  string
	now func() time.Time

	last *app
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{t: t, db: filepath.Join(t.TempDir(), "journal.sqlite"), now: time.Now}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()

	a := newApp()
	a.now = h.now
	h.last = a
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--store", "sqlite", "--db", h.db, "--log-level", "error"}, args...))

	err := run(a, cmd)
	return out.String(), err
}

func (h *harness) trades() []journal.TradeRecord {
	h.t.Helper()
	out, err := h.run("", "list", "--format", "json")
	require.NoError(h.t, err)
	var trades []journal.TradeRecord
	require.NoError(h.t, json.Unmarshal([]byte(out), &trades))
	return trades
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "add", "--date", "2024-01-05", "--pair", " eurusd ", "--type", "Buy", "--risk", "2", "--result", "150.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Trade added successfully!")
	assert.Contains(t, out, "EURUSD")
	assert.Contains(t, out, "+$150.50")

	out, err = h.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 5, 2024")
	assert.Contains(t, out, "2%")

	trades := h.trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "EURUSD", trades[0].Pair)
}

func TestAddRejectsInvalid(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "--date", "2024-01-05", "--pair", "eurusd", "--type", "Buy", "--risk", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, journal.ErrValidation)

	_, err = h.run("", "add", "--date", "2024-01-05", "--type", "Buy", "--risk", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pair"`)

	assert.Empty(t, h.trades())
}

func TestAddReportsBeforeTable(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "add", "--date", "2024-01-05", "--pair", "eurusd", "--type", "Buy", "--risk", "2")
	require.NoError(t, err)

	msg := strings.Index(out, "Trade added successfully!")
	header := strings.Index(out, "PAIR")
	require.GreaterOrEqual(t, msg, 0)
	require.GreaterOrEqual(t, header, 0)
	assert.Less(t, msg, header)

	id := strconv.FormatInt(h.trades()[0].ID, 10)
	out, err = h.run("", "--yes", "delete", id)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Trade deleted"), strings.Index(out, "No trades logged yet"))
}

func TestAddDefaultsDateAndIDToClock(t *testing.T) {
	h := newHarness(t)
	clock := time.Date(2024, 3, 8, 14, 30, 0, 0, time.UTC)
	h.now = func() time.Time { return clock }

	_, err := h.run("", "add", "--pair", "eurusd", "--type", "Sell", "--risk", "1")
	require.NoError(t, err)

	trades := h.trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "2024-03-08", trades[0].Date)
	assert.Equal(t, clock.UnixMilli(), trades[0].ID)
}

func TestStorageClosedWhenCommandFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "--date", "2024-01-05", "--pair", "eurusd", "--type", "Buy", "--risk", "0")
	require.Error(t, err)
	require.NotNil(t, h.last)
	assert.Nil(t, h.last.storage)
	assert.Nil(t, h.last.store)

	// the database is free for the next invocation
	_, err = h.run("", "add", "--date", "2024-01-05", "--pair", "eurusd", "--type", "Buy", "--risk", "1")
	require.NoError(t, err)
	assert.Len(t, h.trades(), 1)
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No trades logged yet")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "--date", "2024-01-04", "--pair", "eurusd", "--type", "Buy", "--risk", "1", "--result", "-20")
	require.NoError(t, err)
	_, err = h.run("", "add", "--date", "2024-01-05", "--pair", "gbpusd", "--type", "Sell", "--risk", "1", "--result", "40")
	require.NoError(t, err)

	trades := h.trades()
	require.Len(t, trades, 2)
	oldest := strconv.FormatInt(trades[1].ID, 10)

	// declining is a no-op
	out, err := h.run("n\n", "delete", oldest)
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this trade?")
	assert.NotContains(t, out, "Trade deleted")
	assert.Len(t, h.trades(), 2)

	out, err = h.run("y\n", "delete", oldest)
	require.NoError(t, err)
	assert.Contains(t, out, "Trade deleted")

	left := h.trades()
	require.Len(t, left, 1)
	assert.Equal(t, "GBPUSD", left[0].Pair)
}

func TestDeleteBadID(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "--yes", "delete", "abc")
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "--date", "2024-01-05", "--pair", "eurusd", "--type", "Buy", "--risk", "1")
	require.NoError(t, err)

	out, err := h.run("", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "delete ALL trades")
	assert.Len(t, h.trades(), 1)

	out, err = h.run("", "--yes", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All trades cleared")
	assert.Contains(t, out, "No trades logged yet")
	assert.Empty(t, h.trades())
}

func TestImportAndCheck(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "empty")

	path := filepath.Join(t.TempDir(), "export.json")
	raw := `[{"id":1704450000000,"date":"2024-01-05","pair":"EURUSD","type":"Buy","risk":2,"result":150.5,"notes":""}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	out, err = h.run("", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 1 trades")

	out, err = h.run("", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 1 trades")

	out, err = h.run("", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1 trades")
}

func TestCalc(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "calc", "--balance", "10000", "--risk", "2", "--stop-loss", "50", "--take-profit", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "$200.00")
	assert.Contains(t, out, "$600.00")
	assert.Contains(t, out, "1:3.00 (good)")
	assert.Contains(t, out, "40000 units")
}

func TestCalcUsesConfigDefaults(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "calc")
	require.NoError(t, err)
	assert.Contains(t, out, "1:3.00")
}

func TestCalcHighRiskNeedsConfirmation(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("n\n", "calc", "--risk", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "8% risk is high")
	assert.NotContains(t, out, "Risk Amount")

	out, err = h.run("y\n", "calc", "--risk", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "$800.00")
}

func TestCalcRejectsBadQuoteRate(t *testing.T) {
	h := newHarness(t)

	for _, v := range []string{"NaN", "Inf", "-Inf", "0", "-1"} {
		out, err := h.run("", "calc", "--quote-to-account", v)
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "quote-to-account", v)
		assert.NotContains(t, out, "Risk Amount", v)
	}
}

func TestCalcPrintsPipSize(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "calc", "--pip-location", "-2", "--quote-to-account", "0.0091")
	require.NoError(t, err)
	assert.Contains(t, out, "Pip Size:")
	assert.Contains(t, out, "0.01")
}

func TestCalcRejectsInvalid(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "calc", "--stop-loss", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than zero")

	_, err = h.run("", "calc", "--risk", "150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed")
}

func TestConfigInitAndValidate(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "fxjournal.yaml")

	out, err := h.run("", "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = h.run("", "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fxjournal version")
}
