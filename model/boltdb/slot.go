// Package boltdb stores the timeline slot in a BoltDB file.
package boltdb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"timeline/model"
)

const timelineBucket = "timeline"

// Slot keeps the payload under Key in the timeline bucket.
type Slot struct {
	db  *bbolt.DB
	key []byte
}

// Open opens a BoltDB-backed slot at the provided path.
func Open(path, key string) (*Slot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("slot key is required")
	}
	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(timelineBucket)); err != nil {
			return fmt.Errorf("create timeline bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Slot{db: db, key: []byte(key)}, nil
}

// Close closes the underlying BoltDB database.
func (s *Slot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(timelineBucket))
		if bucket == nil {
			return fmt.Errorf("timeline bucket is missing")
		}
		v := bucket.Get(s.key)
		if v == nil {
			return model.ErrNotFound
		}
		// v is only valid inside the transaction.
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Slot) Write(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(timelineBucket))
		if bucket == nil {
			return fmt.Errorf("timeline bucket is missing")
		}
		return bucket.Put(s.key, payload)
	})
}
