package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/domain"
)

func TestOpenStorage_Memory(t *testing.T) {
	ctx := context.Background()
	storage, err := OpenStorage(ctx, &config.Config{StorageDriver: config.StorageMemory})
	require.NoError(t, err)
	defer storage.Close()

	assert.Equal(t, config.StorageMemory, storage.Driver)
	require.NoError(t, storage.Store.Ping(ctx))
	require.NoError(t, storage.Store.Save(ctx, domain.NewCharacter("Vex")))

	names, err := storage.Store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vex"}, names)
}

func TestOpenStorage_SQLiteCreatesDirectoryAndMigrates(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data", "armory.db")

	storage, err := OpenStorage(ctx, &config.Config{StorageDriver: config.StorageSQLite, SQLitePath: path})
	require.NoError(t, err)

	require.NoError(t, storage.Store.Save(ctx, domain.NewCharacter("Vex")))
	require.NoError(t, storage.Close())

	// Reopening runs the migrations again and still sees the record
	storage, err = OpenStorage(ctx, &config.Config{StorageDriver: config.StorageSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer storage.Close()

	got, err := storage.Store.Load(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), &config.Config{StorageDriver: "floppy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownStorageDriver)
}

func TestStorage_CloseNil(t *testing.T) {
	var s *Storage
	assert.NoError(t, s.Close())
	assert.NoError(t, (&Storage{}).Close())
}
