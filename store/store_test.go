package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fintrack/config"
)

type settings struct {
	Monthly float64 `json:"monthly"`
	Years   int     `json:"years"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sq, err := NewSQLite(filepath.Join(t.TempDir(), "fintrack.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestGetPutDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, KeyTheme, []byte(`"dark"`)))
			v, err := s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, `"dark"`, string(v))

			require.NoError(t, s.Put(ctx, KeyTheme, []byte(`"light"`)))
			v, err = s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, `"light"`, string(v))

			require.NoError(t, s.Put(ctx, KeyDCA, []byte(`{}`)))
			keys, err := s.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{KeyDCA, KeyTheme}, keys)

			require.NoError(t, s.Delete(ctx, KeyTheme))
			_, err = s.Get(ctx, KeyTheme)
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting an absent key is not an error
			assert.NoError(t, s.Delete(ctx, KeyTheme))
		})
	}
}

func TestLoadSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	def := settings{Monthly: 100, Years: 20}

	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			got, err := Load(ctx, s, KeyDCA, def)
			require.NoError(t, err)
			assert.Equal(t, def, got, "absent key yields default")

			want := settings{Monthly: 250, Years: 10}
			require.NoError(t, Save(ctx, s, KeyDCA, want))
			got, err = Load(ctx, s, KeyDCA, def)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, s.Put(ctx, KeyDCA, []byte("null")))
			got, err = Load(ctx, s, KeyDCA, def)
			require.NoError(t, err)
			assert.Equal(t, def, got, "stored null yields default")

			require.NoError(t, s.Put(ctx, KeyDCA, []byte("{not json")))
			got, err = Load(ctx, s, KeyDCA, def)
			assert.Equal(t, def, got, "malformed blob yields default")
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, KeyDCA, pe.Key)
			assert.Contains(t, err.Error(), KeyDCA)
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fintrack.sqlite")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, Save(ctx, s, KeyTheme, "dark"))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	theme, err := Load(ctx, s, KeyTheme, "light")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	_, err := Open(config.StoreConfig{Driver: "memory"})
	assert.Error(t, err)

	_, err = Open(config.StoreConfig{Driver: "sqlite"})
	assert.Error(t, err)

	s, err := Open(config.StoreConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "x.sqlite")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	assert.NoError(t, s.Close())

	_, err = Open(config.StoreConfig{Driver: "redis"})
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := NewMemory()
	require.NoError(t, src.Put(ctx, KeyTransactions, []byte(`[{"ticker":"AAPL"}]`)))
	require.NoError(t, src.Put(ctx, KeyDCA, []byte(`{"monthly":100}`)))
	require.NoError(t, src.Put(ctx, KeyTheme, []byte(`"dark"`)))

	data, err := Export(ctx, src)
	require.NoError(t, err)

	var bundle map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Len(t, bundle, len(BackupKeys))
	assert.JSONEq(t, "null", string(bundle[KeyMacro]))
	assert.JSONEq(t, "null", string(bundle[KeyPrices]))
	_, hasTheme := bundle[KeyTheme]
	assert.False(t, hasTheme, "theme is not part of the backup")

	dst := NewMemory()
	written, err := Import(ctx, dst, data)
	require.NoError(t, err)
	assert.Equal(t, BackupKeys, written)

	v, err := dst.Get(ctx, KeyTransactions)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"ticker":"AAPL"}]`, string(v))

	got, err := Load(ctx, dst, KeyMacro, settings{Years: 7})
	require.NoError(t, err)
	assert.Equal(t, settings{Years: 7}, got)
}

func TestImportIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dst := NewMemory()
	written, err := Import(ctx, dst, []byte(`{"dcaSettings":{"monthly":5},"somethingElse":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{KeyDCA}, written)

	keys, err := dst.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyDCA}, keys)
}

func TestImportInvalidWritesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, doc := range []string{`{"dcaSettings":`, `[1,2]`, `null`, ``} {
		dst := NewMemory()
		_, err := Import(ctx, dst, []byte(doc))
		assert.ErrorIs(t, err, ErrInvalidBackup, doc)
		keys, _ := dst.Keys(ctx)
		assert.Empty(t, keys, doc)
	}
}

func TestExportMalformedBlob(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemory()
	require.NoError(t, s.Put(ctx, KeyMacro, []byte("{oops")))
	_, err := Export(ctx, s)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestResetAndClearPrices(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewMemory()
	for _, k := range append([]string{KeyTheme}, BackupKeys...) {
		require.NoError(t, s.Put(ctx, k, []byte(`1`)))
	}

	require.NoError(t, ClearPrices(ctx, s))
	_, err := s.Get(ctx, KeyPrices)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, Reset(ctx, s))
	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTheme}, keys)

	assert.True(t, IsBackupKey(KeyDCA))
	assert.False(t, IsBackupKey(KeyTheme))
}

func TestImportIsAtomicOnSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "fintrack.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	// The price key is written last; make its insert fail.
	_, err = s.db.Exec(`
		CREATE TRIGGER reject_prices BEFORE INSERT ON kv
		WHEN NEW.key = 'yahooData'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END;`)
	require.NoError(t, err)

	bundle := `{
		"portfolioTransactions": [],
		"dcaSettings": {"monthly": 5},
		"macroSettings": {"inflation": 0.03},
		"yahooData": {"AAPL": 1}
	}`
	written, err := Import(ctx, s, []byte(bundle))
	require.Error(t, err)
	assert.Empty(t, written)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys, "a failed restore leaves nothing behind")
}

func TestPutBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			b, ok := s.(Batcher)
			require.True(t, ok)

			require.NoError(t, b.PutBatch(ctx, []Entry{
				{Key: KeyDCA, Value: []byte(`{"monthly":1}`)},
				{Key: KeyTheme, Value: []byte(`"dark"`)},
			}))
			keys, err := s.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{KeyDCA, KeyTheme}, keys)
		})
	}
}
