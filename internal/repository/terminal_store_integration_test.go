//go:build integration

package repository

// Terminal stores against real Redis and Postgres via testcontainers.
// Run with: go test -tags integration ./internal/repository/... -v

import (
	"context"
	"testing"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisTerminalStore(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	verifierStore(t, NewRedisTerminalStore(rdb, time.Hour))

	ttl, err := rdb.TTL(ctx, terminalKeyPrefix+"buvette").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 59*time.Minute)
}

func TestGormTerminalStore(t *testing.T) {
	ctx := context.Background()
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("caisse_test"),
		tcPostgres.WithUsername("caisse"),
		tcPostgres.WithPassword("caisse"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)

	verifierStore(t, NewGormTerminalStore(db))
}
