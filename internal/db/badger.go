package db

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerConfig holds the options for opening an embedded BadgerDB.
type BadgerConfig struct {
	// Path is the directory for database files. Ignored when InMemory is true.
	Path string
	// InMemory keeps everything in RAM.
	InMemory bool
	// SyncWrites makes every write durable before returning.
	SyncWrites bool
	// Logger receives BadgerDB's internal messages. Nil disables them.
	Logger *zap.Logger
}

// zapBadgerLogger adapts zap to badger.Logger.
type zapBadgerLogger struct {
	s *zap.SugaredLogger
}

func (l zapBadgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(f, v...) }
func (l zapBadgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(f, v...) }
func (l zapBadgerLogger) Infof(f string, v ...interface{})    { l.s.Infof(f, v...) }
func (l zapBadgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(f, v...) }

// OpenBadger opens a BadgerDB according to cfg, creating the directory if needed.
func OpenBadger(cfg BadgerConfig) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger dir %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(zapBadgerLogger{s: cfg.Logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return bdb, nil
}
