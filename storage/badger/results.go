package badger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/storage"
)

// resultRepository is the BadgerDB implementation of storage.ResultRepository.
type resultRepository struct {
	backend *Backend
	logger  *slog.Logger
}

// ErrNilBackend is returned when a repository is created without a backend.
var ErrNilBackend = errors.New("backend cannot be nil")

// NewResultRepository creates a result repository on top of an open backend.
// The backend stays owned by the caller and is not closed by the repository.
func NewResultRepository(backend *Backend) (storage.ResultRepository, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	return &resultRepository{
		backend: backend,
		logger:  slog.Default(),
	}, nil
}

func (r *resultRepository) PutResults(ctx context.Context, searchID string, records []*core.MatchRecord, retention time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, record := range records {
		if err := core.ValidateMatchRecord(record); err != nil {
			return err
		}
	}

	data := storage.MarshalMatchRecords(records)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeResultKey(searchID), data)
		if retention > 0 {
			entry = entry.WithTTL(retention)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (r *resultRepository) GetResults(ctx context.Context, searchID string) ([]*core.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []*core.MatchRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeResultKey(searchID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			records, err = storage.UnmarshalMatchRecords(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *resultRepository) DeleteResults(ctx context.Context, searchID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeResultKey(searchID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (r *resultRepository) Close() error {
	return nil
}
