// storage/storage.go
package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Storage is a synchronous string key/value store with the same shape as a
// browser's window.localStorage. The journal keeps its whole collection under
// a single key.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

const (
	TypeMemory = "memory"
	TypeFile   = "file"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// ErrClosed is returned by a backend used after Close.
var ErrClosed = errors.New("storage closed")

// Options selects and configures a backend for Open.
type Options struct {
	Type string

	Dir string // file

	DBPath string // sqlite

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the backend named by opts.Type.
func Open(opts Options, log *zap.Logger) (Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("storage")

	switch strings.ToLower(strings.TrimSpace(opts.Type)) {
	case TypeMemory:
		log.Debug("using in-memory storage")
		return NewMemory(), nil

	case TypeFile, "":
		log.Debug("using file storage", zap.String("dir", opts.Dir))
		return NewFile(opts.Dir)

	case TypeSQLite:
		log.Debug("using sqlite storage", zap.String("db", opts.DBPath))
		return NewSQLite(opts.DBPath)

	case TypeRedis:
		log.Debug("using redis storage",
			zap.String("addr", opts.RedisAddr),
			zap.Int("db", opts.RedisDB),
			zap.String("prefix", opts.RedisPrefix))
		return NewRedis(RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})

	default:
		return nil, fmt.Errorf("unknown storage type %q (supported: memory, file, sqlite, redis)", opts.Type)
	}
}

// Memory keeps values in a map. Used by tests and --store memory.
type Memory struct {
	mu     sync.Mutex
	items  map[string]string
	closed bool
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.items[key] = value
	return nil
}

func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
