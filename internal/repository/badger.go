package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "snapshot/"

// BadgerSnapshotRepository stores snapshots in an embedded BadgerDB.
type BadgerSnapshotRepository struct {
	DB *badger.DB
}

// NewBadgerSnapshotRepository wraps an opened BadgerDB.
func NewBadgerSnapshotRepository(db *badger.DB) *BadgerSnapshotRepository {
	return &BadgerSnapshotRepository{DB: db}
}

// Load reads the snapshot under key, or returns ErrNotFound.
func (r *BadgerSnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return value, nil
}

// Save writes data under key in a single transaction.
func (r *BadgerSnapshotRepository) Save(_ context.Context, key string, data []byte) error {
	err := r.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
