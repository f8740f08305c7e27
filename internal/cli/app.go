package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/fxjournal/config"
	"github.com/rustyeddy/fxjournal/internal/logger"
	"github.com/rustyeddy/fxjournal/internal/prompt"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/storage"
	"go.uber.org/zap"
)

// app is the state shared by one command invocation. Storage is opened
// lazily so commands like calc never touch it.
type app struct {
	rc  *RootConfig
	cfg *config.Config
	log *zap.Logger
	now func() time.Time

	storage storage.Storage
	store   *journal.Store
}

func newApp() *app {
	return &app{rc: &RootConfig{}, now: time.Now}
}

func (a *app) setup() error {
	cfg, err := config.Load(a.rc.ConfigPath)
	if err != nil {
		return err
	}

	if a.rc.Store != "" {
		cfg.Storage.Type = a.rc.Store
	}
	if a.rc.Dir != "" {
		cfg.Storage.Dir = a.rc.Dir
	}
	if a.rc.DBPath != "" {
		cfg.Storage.DBPath = a.rc.DBPath
	}
	if a.rc.LogLevel != "" {
		cfg.Log.Level = a.rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.log = log
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.storage != nil {
		err = a.storage.Close()
		a.storage = nil
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}

func (a *app) journal() (*journal.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	st, err := storage.Open(a.cfg.Storage.Options(), a.log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.storage = st
	a.store = journal.NewStore(st,
		journal.WithKey(a.cfg.Journal.Key),
		journal.WithIDGenerator(&journal.MillisIDs{Now: a.now}),
		journal.WithLogger(a.log))
	return a.store, nil
}

func (a *app) confirmer(in io.Reader, out io.Writer) prompt.Confirmer {
	if a.rc.Yes {
		return prompt.Always{}
	}
	return prompt.NewTerminal(in, out)
}
