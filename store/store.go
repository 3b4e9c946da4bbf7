// Package store persists fintrack state as JSON blobs under fixed keys.
//
// Every blob is read in full and overwritten in full, and there is no schema
// versioning. Absent keys load as the caller's default; malformed blobs
// load as the default too, but the failure is reported as a *ParseError so
// the caller can decide whether to log it.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed keys, shared with backups made by earlier versions of the tracker.
const (
	KeyTransactions = "portfolioTransactions"
	KeyDCA          = "dcaSettings"
	KeyMacro        = "macroSettings"
	KeyPrices       = "yahooData"
	KeyTheme        = "theme"
)

// BackupKeys lists the keys bundled by Export and accepted by Import.
var BackupKeys = []string{KeyTransactions, KeyDCA, KeyMacro, KeyPrices}

// ErrNotFound is returned by Store.Get for an absent key.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store of raw JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Entry is one key and its raw JSON value.
type Entry struct {
	Key   string
	Value []byte
}

// Batcher is implemented by stores that can write several entries as one
// unit: either all of them are stored or none is.
type Batcher interface {
	PutBatch(ctx context.Context, entries []Entry) error
}

// ParseError reports a stored blob that could not be decoded.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed value for %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load decodes the blob under key into a T. An absent key or a stored JSON
// null yields def and a nil error. A malformed blob yields def and a
// *ParseError. Any other store failure is returned as is, also with def.
func Load[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("get %s: %w", key, err)
	}
	if isNull(raw) {
		return def, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, &ParseError{Key: key, Err: err}
	}
	return v, nil
}

// Save encodes v as JSON and stores it under key, replacing any prior value.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func isNull(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
