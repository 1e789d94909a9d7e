package imagestate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/go-errors-context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFile(model.StateDir(dir)), dir
}

func TestReadNeverDeployed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	state, err := s.Read(ctx, model.EnvironmentStaging)
	require.NoError(t, err)
	assert.Empty(t, state.Current)
	assert.Empty(t, state.Previous)
	assert.True(t, state.DeployedAt.IsZero())
}

func TestRecordDeployRotation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		err := s.RecordDeploy(ctx, model.EnvironmentStaging, model.ImageReference(fmt.Sprintf("registry/app:v%d", i)), at)
		require.NoError(t, err)
		state, err := s.Read(ctx, model.EnvironmentStaging)
		require.NoError(t, err)
		assert.Equal(t, model.ImageReference(fmt.Sprintf("registry/app:v%d", i)), state.Current)
		if i == 1 {
			assert.Empty(t, state.Previous)
		} else {
			assert.Equal(t, model.ImageReference(fmt.Sprintf("registry/app:v%d", i-1)), state.Previous)
		}
		assert.Equal(t, at, state.DeployedAt)
	}
}

func TestRecordDeployEmptyImage(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.RecordDeploy(context.Background(), model.EnvironmentStaging, " ", time.Now())
	assert.True(t, errors.Is(err, model.ErrBadInput))
}

func TestRecordDeployUnknownEnvironment(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.RecordDeploy(context.Background(), model.Environment("qa"), "registry/app:v1", time.Now())
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestRollbackToggles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordDeploy(ctx, model.EnvironmentProduction, "registry/app:v1", time.Now()))
	require.NoError(t, s.RecordDeploy(ctx, model.EnvironmentProduction, "registry/app:v2", time.Now()))

	restored, err := s.Rollback(ctx, model.EnvironmentProduction)
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("registry/app:v1"), restored)
	state, err := s.Read(ctx, model.EnvironmentProduction)
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("registry/app:v1"), state.Current)
	assert.Equal(t, model.ImageReference("registry/app:v2"), state.Previous)

	restored, err = s.Rollback(ctx, model.EnvironmentProduction)
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("registry/app:v2"), restored)
	state, err = s.Read(ctx, model.EnvironmentProduction)
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("registry/app:v2"), state.Current)
	assert.Equal(t, model.ImageReference("registry/app:v1"), state.Previous)
}

func TestRollbackWithoutPrevious(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordDeploy(ctx, model.EnvironmentStaging, "registry/app:v1", time.Now()))
	before, err := s.Read(ctx, model.EnvironmentStaging)
	require.NoError(t, err)

	_, err = s.Rollback(ctx, model.EnvironmentStaging)
	assert.True(t, errors.Is(err, model.ErrNoPreviousImage))

	after, err := s.Read(ctx, model.EnvironmentStaging)
	require.NoError(t, err)
	assert.Equal(t, before.Current, after.Current)
	assert.Equal(t, before.Previous, after.Previous)
}

func TestRecoverInterruptedBeforeCurrentWrite(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordDeploy(ctx, model.EnvironmentStaging, "registry/app:v1", time.Now()))

	// A crash after shadowing the current image but before writing the new
	// one leaves a pending slot equal to current.
	pending := filepath.Join(dir, "staging.image.pending")
	require.NoError(t, os.WriteFile(pending, []byte("registry/app:v1\n"), 0644))

	state, err := s.Read(ctx, model.EnvironmentStaging)
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("registry/app:v1"), state.Current)
	assert.Empty(t, state.Previous)
	_, err = os.Stat(pending)
	assert.True(t, os.IsNotExist(err))
}

func TestRecoverInterruptedAfterCurrentWrite(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordDeploy(ctx, model.EnvironmentStaging, "registry/app:v2", time.Now()))

	// A crash after the new current was written leaves a pending slot with
	// the old image; the rotation must be completed on the next read.
	pending := filepath.Join(dir, "staging.image.pending")
	require.NoError(t, os.WriteFile(pending, []byte("registry/app:v1\n"), 0644))

	state, err := s.Read(ctx, model.EnvironmentStaging)
	require.NoError(t, err)
	assert.Equal(t, model.ImageReference("registry/app:v2"), state.Current)
	assert.Equal(t, model.ImageReference("registry/app:v1"), state.Previous)
	_, err = os.Stat(pending)
	assert.True(t, os.IsNotExist(err))
}

func TestReadCorruptedSlot(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staging.image"), []byte("a\nb\n"), 0644))
	_, err := s.Read(context.Background(), model.EnvironmentStaging)
	assert.True(t, errors.Is(err, model.ErrStateCorrupted))
}
