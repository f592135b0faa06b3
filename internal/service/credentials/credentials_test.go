package credentials

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/xerrors"
)

type fakeScheduler struct {
	scheduled []credential.Credentials
	cancels   int
}

func (f *fakeScheduler) Schedule(c credential.Credentials) bool {
	f.scheduled = append(f.scheduled, c)
	return c.AutoLogin
}

func (f *fakeScheduler) Cancel() { f.cancels++ }

func ptr(b bool) *bool { return &b }

func TestSaveNormalizesAndSchedules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	sched := &fakeScheduler{}
	svc := NewStore(backend, sched)

	got, err := svc.Save(ctx, credential.Payload{Username: " 2024123456 ", Password: " pw ", SaveInfo: ptr(false)})
	require.NoError(t, err)

	want := credential.Credentials{Username: "2024123456", Password: "pw", AutoLogin: true, SaveInfo: false}
	assert.Equal(t, want, got)

	stored, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, stored)
	assert.Equal(t, []credential.Credentials{want}, sched.scheduled)
}

func TestSaveRejectsBlankFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sched := &fakeScheduler{}
	svc := NewStore(storage.NewMemoryBackend(), sched)

	_, err := svc.Save(ctx, credential.Payload{Username: "   ", Password: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.Validation(nil)))
	assert.Empty(t, sched.scheduled)

	_, err = svc.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClearCancels(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sched := &fakeScheduler{}
	svc := NewStore(storage.NewMemoryBackend(), sched)

	_, err := svc.Save(ctx, credential.Payload{Username: "a", Password: "b"})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	assert.Equal(t, 1, sched.cancels)
	_, err = svc.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveWithoutScheduler(t *testing.T) {
	t.Parallel()

	svc := NewStore(storage.NewMemoryBackend(), nil)
	_, err := svc.Save(context.Background(), credential.Payload{Username: "a", Password: "b"})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(context.Background()))
}

func TestWipeOnFirstRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	marker := filepath.Join(t.TempDir(), ".first-run")
	svc := NewStore(storage.NewMemoryBackend(), nil)

	_, err := svc.Save(ctx, credential.Payload{Username: "a", Password: "b"})
	require.NoError(t, err)

	wiped, err := svc.WipeOnFirstRun(ctx, marker)
	require.NoError(t, err)
	assert.True(t, wiped)
	_, err = svc.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.Save(ctx, credential.Payload{Username: "a", Password: "b"})
	require.NoError(t, err)

	wiped, err = svc.WipeOnFirstRun(ctx, marker)
	require.NoError(t, err)
	assert.False(t, wiped)
	_, err = svc.Load(ctx)
	assert.NoError(t, err)
}
