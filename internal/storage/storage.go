// Package storage defines the persistence interface for the question/answer corpus.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/models"
)

var (
	// ErrCorpusUnavailable is returned when the stored corpus does not exist or cannot be opened.
	ErrCorpusUnavailable = errors.New("storage: corpus unavailable")
	// ErrMalformedCorpus is returned when a corpus file has a bad header or incomplete rows.
	ErrMalformedCorpus = errors.New("storage: malformed corpus")
	// ErrUnsupportedFormat is returned for corpus files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("storage: unsupported corpus format")
)

// Storage defines corpus persistence operations. Record order is significant:
// Load returns records in the order they were appended or saved.
type Storage interface {
	Load(ctx context.Context) ([]models.Record, error)
	Append(ctx context.Context, r models.Record) error
	// Save replaces the whole stored corpus, preserving order.
	Save(ctx context.Context, records []models.Record) error
	Count(ctx context.Context) (int64, error)

	// Name identifies the backend in status output.
	Name() string
	// Paths lists the files backing the store, for disk usage and watching.
	Paths() []string
	Close() error
}

// Open returns the backend selected by cfg.Backend.
func Open(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		return NewSQLiteStorage(cfg.DatabasePath)
	case config.BackendFile:
		return NewFileStorage(cfg.CorpusPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
