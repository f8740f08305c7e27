package journal

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/storage"
	"go.uber.org/zap"
)

// IDGenerator issues trade ids. existing is the largest id currently stored.
type IDGenerator interface {
	Next(existing int64) int64
}

// MillisIDs issues millisecond timestamps, bumped past the last issued and
// the largest stored id so two trades added in the same millisecond never
// share an id.
type MillisIDs struct {
	Now  func() time.Time
	last int64
}

func (g *MillisIDs) Next(existing int64) int64 {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	next := id.Millis(now())
	if next <= g.last {
		next = g.last + 1
	}
	if next <= existing {
		next = existing + 1
	}
	g.last = next
	return next
}

// Store owns the persisted trade collection. Every mutation reads the whole
// collection, changes it, and writes it back under one key.
type Store struct {
	storage storage.Storage
	key     string
	ids     IDGenerator
	log     *zap.Logger

	mu        sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the time source for the default id generator.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids = &MillisIDs{Now: now} }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func NewStore(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:   st,
		key:       StorageKey,
		ids:       &MillisIDs{},
		log:       zap.NewNop(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("journal").With(zap.String("key", s.key))
	return s
}

// Subscribe registers l to be called after each persisted mutation. The
// returned func removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.nextSub
	s.nextSub++
	s.listeners[n] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, n)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	keys := make([]int, 0, len(s.listeners))
	for k := range s.listeners {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ls := make([]Listener, 0, len(keys))
	for _, k := range keys {
		ls = append(ls, s.listeners[k])
	}
	s.mu.Unlock()

	for _, l := range ls {
		snap := make([]TradeRecord, len(ev.Trades))
		copy(snap, ev.Trades)
		l(Event{Kind: ev.Kind, Trade: ev.Trade, Trades: snap})
	}
}

// Load reads the collection. Nothing stored is an empty slice and a nil
// error; an undecodable value is a *CorruptError; a backend failure is a
// *PersistenceError.
func (s *Store) Load() ([]TradeRecord, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		return nil, &PersistenceError{Op: "get", Key: s.key, Err: err}
	}
	if !ok || raw == "" {
		return []TradeRecord{}, nil
	}

	return Decode([]byte(raw))
}

// ListTrades is Load with every failure treated as an empty journal. The
// failure is logged, never returned. Mutations go through Load so an
// unreadable journal is never overwritten.
func (s *Store) ListTrades() []TradeRecord {
	trades, err := s.Load()
	if err != nil {
		s.log.Warn("treating journal as empty", zap.Error(err))
		return []TradeRecord{}
	}
	return trades
}

// AddTrade validates in, assigns an id, and stores the record at the front
// of the collection. Nothing is written when validation fails.
func (s *Store) AddTrade(in TradeInput) (TradeRecord, error) {
	rec, err := Validate(in)
	if err != nil {
		return TradeRecord{}, err
	}

	opID := id.New()
	trades, err := s.Load()
	if err != nil {
		s.log.Error("add trade: journal unreadable, nothing written", zap.String("op_id", opID), zap.Error(err))
		return TradeRecord{}, err
	}
	rec.ID = s.ids.Next(maxID(trades))

	trades = append([]TradeRecord{rec}, trades...)

	if err := s.save(trades); err != nil {
		s.log.Error("add trade", zap.String("op_id", opID), zap.Error(err))
		return TradeRecord{}, err
	}

	s.log.Info("trade added",
		zap.String("op_id", opID),
		zap.Int64("id", rec.ID),
		zap.Time("logged_at", id.Time(rec.ID)),
		zap.String("pair", rec.Pair),
		zap.String("type", string(rec.Type)),
		zap.Int("count", len(trades)))

	s.notify(Event{Kind: EventAdded, Trade: rec, Trades: trades})
	return rec, nil
}

// DeleteTrade removes the record with the given id. A missing id is not an
// error; the collection is still written back. Nothing is written when the
// stored collection cannot be read.
func (s *Store) DeleteTrade(tradeID int64) error {
	opID := id.New()
	trades, err := s.Load()
	if err != nil {
		s.log.Error("delete trade: journal unreadable, nothing written", zap.String("op_id", opID), zap.Int64("id", tradeID), zap.Error(err))
		return err
	}

	var removed TradeRecord
	kept := trades[:0:0]
	for _, t := range trades {
		if t.ID == tradeID {
			removed = t
			continue
		}
		kept = append(kept, t)
	}

	if err := s.save(kept); err != nil {
		s.log.Error("delete trade", zap.String("op_id", opID), zap.Int64("id", tradeID), zap.Error(err))
		return err
	}

	s.log.Info("trade deleted",
		zap.String("op_id", opID),
		zap.Int64("id", tradeID),
		zap.Bool("found", removed.ID != 0),
		zap.Int("count", len(kept)))

	s.notify(Event{Kind: EventDeleted, Trade: removed, Trades: kept})
	return nil
}

// ClearAll removes the journal key entirely.
func (s *Store) ClearAll() error {
	opID := id.New()
	if err := s.storage.RemoveItem(s.key); err != nil {
		perr := &PersistenceError{Op: "remove", Key: s.key, Err: err}
		s.log.Error("clear journal", zap.String("op_id", opID), zap.Error(perr))
		return perr
	}

	s.log.Info("journal cleared", zap.String("op_id", opID))
	s.notify(Event{Kind: EventCleared, Trades: []TradeRecord{}})
	return nil
}

// Import merges records into the collection, skipping ids already present,
// and returns how many were added. The result is kept newest first by id.
func (s *Store) Import(records []TradeRecord) (int, error) {
	opID := id.New()
	trades, err := s.Load()
	if err != nil {
		s.log.Error("import trades: journal unreadable, nothing written", zap.String("op_id", opID), zap.Error(err))
		return 0, err
	}

	seen := make(map[int64]bool, len(trades))
	for _, t := range trades {
		seen[t.ID] = true
	}

	added := 0
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		trades = append(trades, r)
		added++
	}

	sort.SliceStable(trades, func(i, j int) bool { return trades[i].ID > trades[j].ID })

	if err := s.save(trades); err != nil {
		s.log.Error("import trades", zap.String("op_id", opID), zap.Error(err))
		return 0, err
	}

	s.log.Info("trades imported", zap.String("op_id", opID), zap.Int("added", added), zap.Int("count", len(trades)))
	s.notify(Event{Kind: EventImported, Trades: trades})
	return added, nil
}

func (s *Store) save(trades []TradeRecord) error {
	data, err := Encode(trades)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		return &PersistenceError{Op: "set", Key: s.key, Err: err}
	}
	return nil
}

// Encode serializes a collection the way the browser did: a compact JSON
// array. A nil slice encodes as [] rather than null.
func Encode(trades []TradeRecord) ([]byte, error) {
	if trades == nil {
		trades = []TradeRecord{}
	}
	return json.Marshal(trades)
}

// Decode parses a stored collection. JSON null decodes as empty.
func Decode(data []byte) ([]TradeRecord, error) {
	var trades []TradeRecord
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, &CorruptError{Raw: string(data), Err: err}
	}
	if trades == nil {
		trades = []TradeRecord{}
	}
	return trades, nil
}

func maxID(trades []TradeRecord) int64 {
	var m int64
	for _, t := range trades {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}
