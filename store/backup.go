package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rustyeddy/fintrack/config"
)

// ErrInvalidBackup is returned by Import when the bundle is not a JSON object.
var ErrInvalidBackup = errors.New("invalid backup")

// Open returns the persistent Store selected by cfg. Memory stores are built
// with NewMemory; they are not selectable here because they lose everything
// on Close.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		if cfg.Path == "" {
			return nil, errors.New("sqlite store needs a path")
		}
		return NewSQLite(cfg.Path)
	case "memory":
		return nil, fmt.Errorf("store driver %q does not persist", cfg.Driver)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Export bundles every BackupKeys blob verbatim into one indented JSON
// object. Absent keys are exported as null.
func Export(ctx context.Context, s Store) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(BackupKeys))
	for _, k := range BackupKeys {
		raw, err := s.Get(ctx, k)
		if errors.Is(err, ErrNotFound) {
			out[k] = json.RawMessage("null")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", k, err)
		}
		if !json.Valid(raw) {
			return nil, &ParseError{Key: k, Err: errors.New("not valid JSON")}
		}
		out[k] = json.RawMessage(raw)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Import restores a bundle produced by Export. The whole document must decode
// before anything is written, and stores implementing Batcher write it in one
// unit. Keys outside BackupKeys are ignored. It returns
// the keys that were written, in bundle order of BackupKeys.
func Import(ctx context.Context, s Store, data []byte) ([]string, error) {
	var bundle map[string]json.RawMessage
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if bundle == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidBackup)
	}

	var entries []Entry
	for _, k := range BackupKeys {
		raw, ok := bundle[k]
		if !ok {
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, fmt.Errorf("compact %s: %w", k, err)
		}
		entries = append(entries, Entry{Key: k, Value: buf.Bytes()})
	}

	if err := putAll(ctx, s, entries); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(entries))
	for _, e := range entries {
		written = append(written, e.Key)
	}
	return written, nil
}

// putAll writes entries atomically when s supports it, one by one otherwise.
func putAll(ctx context.Context, s Store, entries []Entry) error {
	if b, ok := s.(Batcher); ok {
		return b.PutBatch(ctx, entries)
	}
	for _, e := range entries {
		if err := s.Put(ctx, e.Key, e.Value); err != nil {
			return fmt.Errorf("put %s: %w", e.Key, err)
		}
	}
	return nil
}

// Reset deletes every bundled key.
func Reset(ctx context.Context, s Store) error {
	for _, k := range BackupKeys {
		if err := s.Delete(ctx, k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

// ClearPrices drops the cached external price dataset.
func ClearPrices(ctx context.Context, s Store) error {
	return s.Delete(ctx, KeyPrices)
}

// IsBackupKey reports whether key is carried by Export and Import.
func IsBackupKey(key string) bool {
	return slices.Contains(BackupKeys, key)
}
