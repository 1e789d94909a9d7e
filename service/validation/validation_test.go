package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploy(t *testing.T) {
	v := NewValidation()
	ctx := context.Background()

	f, err := v.Deploy(ctx, model.FormDeploy{Environment: " staging ", Commit: " ABC123F "})
	require.NoError(t, err)
	assert.Equal(t, "staging", f.Environment)
	assert.Equal(t, "abc123f", f.Commit)

	f, err = v.Deploy(ctx, model.FormDeploy{Environment: "production"})
	require.NoError(t, err)
	assert.Empty(t, f.Commit)

	_, err = v.Deploy(ctx, model.FormDeploy{Environment: "qa", Commit: "abc123f"})
	assert.True(t, errors.Is(err, model.ErrBadInput))

	_, err = v.Deploy(ctx, model.FormDeploy{Environment: "staging", Commit: "abc; rm -rf /"})
	assert.True(t, errors.Is(err, model.ErrBadInput))

	_, err = v.Deploy(ctx, model.FormDeploy{Environment: "staging", Commit: "abc"})
	assert.True(t, errors.Is(err, model.ErrBadInput))
}

func TestRollback(t *testing.T) {
	v := NewValidation()
	ctx := context.Background()

	f, err := v.Rollback(ctx, model.FormRollback{Environment: "production"})
	require.NoError(t, err)
	assert.Equal(t, "production", f.Environment)

	_, err = v.Rollback(ctx, model.FormRollback{Environment: ""})
	assert.True(t, errors.Is(err, model.ErrBadInput))
}

func TestCommit(t *testing.T) {
	v := NewValidation()
	ctx := context.Background()

	c, err := v.Commit(ctx, "ABC123F\n")
	require.NoError(t, err)
	assert.Equal(t, "abc123f", c)

	_, err = v.Commit(ctx, "")
	assert.True(t, errors.Is(err, model.ErrBadInput))

	_, err = v.Commit(ctx, "origin/main")
	assert.True(t, errors.Is(err, model.ErrBadInput))
}
