package postgres

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/database"
	"github.com/osse101/armory/internal/repository/repositorytest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = startContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func TestCharacterRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	pool, err := database.NewPool(testDBConnString, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, database.MigratePool(ctx, pool))
	_, err = pool.Exec(ctx, "TRUNCATE characters")
	require.NoError(t, err)

	repo := NewCharacterRepository(pool)
	require.NoError(t, repo.Ping(ctx))
	repositorytest.Run(t, repo)
}
