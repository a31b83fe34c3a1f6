// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/dgraph-io/badger/v4"
)

// Key layout:
//   - summary:<6-digit position> (JSON summary)
//   - detail (JSON detail, flat wire shape)
var (
	badgerSummaryPrefix = []byte("summary:")
	badgerDetailKey     = []byte("detail")
)

var errBadgerClosed = errors.New("cache: badger database is closed")

// BadgerBackend stores the rows in an embedded Badger database.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadgerBackend opens the database directory at path.
func OpenBadgerBackend(path string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Name() string { return BackendBadger }

func summaryKey(pos int) []byte {
	return []byte(fmt.Sprintf("%s%06d", badgerSummaryPrefix, pos))
}

func (b *BadgerBackend) ReplaceSummaries(_ context.Context, list []recipe.Summary) error {
	return b.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = badgerSummaryPrefix
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		for i, r := range list {
			buf, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := txn.Set(summaryKey(i), buf); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BadgerBackend) Summaries(_ context.Context) ([]recipe.Summary, error) {
	out := []recipe.Summary{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = badgerSummaryPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var r recipe.Summary
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BadgerBackend) ReplaceDetail(_ context.Context, d recipe.Detail) error {
	buf, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(badgerDetailKey); err != nil {
			return err
		}
		return txn.Set(badgerDetailKey, buf)
	})
}

func (b *BadgerBackend) Detail(_ context.Context) (recipe.Detail, bool, error) {
	var out recipe.Detail
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerDetailKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return recipe.Detail{}, false, nil
	}
	if err != nil {
		return recipe.Detail{}, false, err
	}
	return out, true, nil
}

func (b *BadgerBackend) Close() error { return b.db.Close() }

// HealthCheck fails once the database is closed.
func (b *BadgerBackend) HealthCheck(_ context.Context) error {
	if b.db.IsClosed() {
		return errBadgerClosed
	}
	return nil
}
