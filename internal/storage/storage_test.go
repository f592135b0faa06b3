package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/redis"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	dir := t.TempDir()
	sqlite, err := NewSQLiteBackend(context.Background(), filepath.Join(dir, "sugang.db"))
	require.NoError(t, err)
	vault, err := NewVaultBackend(filepath.Join(dir, "vault"), filepath.Join(dir, "master.key"), "correct horse")
	require.NoError(t, err)

	all := map[string]Backend{
		"memory": NewMemoryBackend(),
		"sqlite": sqlite,
		"vault":  vault,
	}
	// a live server is opt-in; each run gets its own key namespace
	if url := os.Getenv("SUGANG_TEST_REDIS_URL"); url != "" {
		client, err := redis.New(context.Background(), redis.Config{URL: url, Prefix: "sugang-test-" + uuid.NewString()})
		require.NoError(t, err)
		all["redis"] = NewRedisBackend(RedisConfig{Client: client})
	}
	t.Cleanup(func() {
		for _, b := range all {
			_ = b.Close()
		}
	})
	return all
}

func TestCredentialRoundTrip(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := b.Get(ctx)
			require.ErrorIs(t, err, ErrNotFound)

			first := credential.Credentials{Username: "2024123456", Password: "pw", AutoLogin: true, SaveInfo: true}
			require.NoError(t, b.Set(ctx, first))

			second := credential.Credentials{Username: "2024999999", Password: "비밀", AutoLogin: false, SaveInfo: true}
			require.NoError(t, b.Set(ctx, second))

			got, err := b.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, second, got)

			require.NoError(t, b.Delete(ctx))
			_, err = b.Get(ctx)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Delete(ctx), "deleting an empty slot")
		})
	}
}

func TestVaultReopenWithSamePassphrase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	vaultDir, keyFile := filepath.Join(dir, "vault"), filepath.Join(dir, "master.key")

	v, err := NewVaultBackend(vaultDir, keyFile, "pass")
	require.NoError(t, err)
	want := credential.Credentials{Username: "u", Password: "p", AutoLogin: true}
	require.NoError(t, v.Set(ctx, want))

	reopened, err := NewVaultBackend(vaultDir, keyFile, "pass")
	require.NoError(t, err)
	got, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = NewVaultBackend(vaultDir, keyFile, "wrong")
	assert.Error(t, err)
}

func TestAttemptHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := backends(t)
	target := time.Date(2025, time.February, 10, 12, 30, 0, 0, time.UTC)
	chain := uuid.New()

	for _, name := range []string{"memory", "sqlite", "redis"} {
		t.Run(name, func(t *testing.T) {
			store, ok := b[name]
			if !ok {
				t.Skip("SUGANG_TEST_REDIS_URL not set")
			}
			require.NoError(t, store.RecordAttempt(ctx, Attempt{
				ChainID: chain, Target: target, Reason: "timeout",
			}))
			require.NoError(t, store.RecordAttempt(ctx, Attempt{
				ChainID: chain, Target: target.Add(30 * time.Minute),
				FiredAt: target.Add(30*time.Minute - 150*time.Millisecond),
				Clicked: true, Reason: "clicked",
			}))

			got, err := store.ListAttempts(ctx, 10)
			require.NoError(t, err)
			require.Len(t, got, 2)

			assert.True(t, got[0].Clicked)
			assert.Equal(t, chain, got[0].ChainID)
			assert.True(t, got[0].FiredAt.Equal(target.Add(30*time.Minute-150*time.Millisecond)))
			assert.True(t, got[1].FiredAt.IsZero())
			assert.True(t, got[1].Target.Equal(target))

			limited, err := store.ListAttempts(ctx, 1)
			require.NoError(t, err)
			assert.Len(t, limited, 1)
		})
	}

	got, err := b["vault"].ListAttempts(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
