package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/app-promoter/service"
	"github.com/beldeveloper/app-promoter/service/confirmation"
	"github.com/beldeveloper/app-promoter/service/imagestate"
	"github.com/beldeveloper/app-promoter/service/rbac"
	"github.com/beldeveloper/app-promoter/service/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrchestrator struct {
	mux       sync.Mutex
	deploys   []model.ActionRequest
	rollbacks []model.ActionRequest
}

func (f *fakeOrchestrator) Deploy(ctx context.Context, req model.ActionRequest) (model.DeploymentAttempt, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.deploys = append(f.deploys, req)
	return model.DeploymentAttempt{
		Environment: req.Environment,
		Commit:      req.Commit,
		Requester:   req.Requester,
		Status:      model.AttemptStatusSuccess,
	}, nil
}

func (f *fakeOrchestrator) Rollback(ctx context.Context, req model.ActionRequest) (model.DeploymentAttempt, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.rollbacks = append(f.rollbacks, req)
	return model.DeploymentAttempt{
		Environment: req.Environment,
		Requester:   req.Requester,
		Status:      model.AttemptStatusRolledBack,
	}, nil
}

type fakeHealth struct{}

func (f fakeHealth) Poll(ctx context.Context, url string, maxAttempts int, interval, attemptTimeout time.Duration) (model.HealthResult, error) {
	return model.HealthResult{Healthy: true, Attempts: 1}, nil
}

type memAudit struct {
	mux     sync.Mutex
	entries []model.AuditEntry
}

func (f *memAudit) Append(ctx context.Context, e model.AuditEntry) error {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *memAudit) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	return append([]model.AuditEntry(nil), f.entries...), nil
}

func (f *memAudit) actions() []string {
	f.mux.Lock()
	defer f.mux.Unlock()
	actions := make([]string, len(f.entries))
	for i, e := range f.entries {
		actions[i] = e.Action
	}
	return actions
}

type memHistory struct{}

func (f memHistory) FindAll(ctx context.Context, limit int) ([]model.DeploymentAttempt, error) {
	return []model.DeploymentAttempt{{Environment: model.EnvironmentStaging, Commit: "abc123f"}}, nil
}

func (f memHistory) FindByEnvironment(ctx context.Context, env model.Environment, limit int) ([]model.DeploymentAttempt, error) {
	return nil, nil
}

func (f memHistory) FindByID(ctx context.Context, id uint64) (model.DeploymentAttempt, error) {
	return model.DeploymentAttempt{}, model.ErrNotFound
}

func (f memHistory) Add(ctx context.Context, a model.DeploymentAttempt) (model.DeploymentAttempt, error) {
	return a, nil
}

func (f memHistory) Update(ctx context.Context, a model.DeploymentAttempt) (model.DeploymentAttempt, error) {
	return a, nil
}

type fixture struct {
	controller   Service
	orchestrator *fakeOrchestrator
	audit        *memAudit
	states       imagestate.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	settings := model.Settings{
		Environments: map[model.Environment]model.EnvironmentConfig{
			model.EnvironmentStaging:    {HealthURL: "http://staging/health"},
			model.EnvironmentProduction: {HealthURL: "http://production/health"},
		},
		HealthCheck: model.HealthCheckSettings{MaxAttempts: 10},
		Roles: model.RoleTable{
			Admins:           []string{"alice"},
			StagingOperators: []string{"bob"},
		},
	}
	gate := rbac.NewRBAC(settings.Roles)
	f := &fixture{
		orchestrator: &fakeOrchestrator{},
		audit:        &memAudit{},
		states:       imagestate.NewFile(model.StateDir(t.TempDir())),
	}
	services := service.NewContainer(
		f.orchestrator,
		gate,
		confirmation.NewMemory(gate, time.Minute),
		f.states,
		fakeHealth{},
		f.audit,
		memHistory{},
		validation.NewValidation(),
	)
	f.controller = NewController(services, settings)
	return f
}

func TestDeployStagingRunsDirectly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.controller.Deploy(ctx, "alice", model.FormDeploy{Environment: "staging", Commit: "abc123f"})
	require.NoError(t, err)
	require.NotNil(t, res.Attempt)
	assert.Nil(t, res.Pending)
	assert.Equal(t, model.AttemptStatusSuccess, res.Attempt.Status)

	require.Len(t, f.orchestrator.deploys, 1)
	req := f.orchestrator.deploys[0]
	assert.Equal(t, "alice", req.Requester)
	assert.Equal(t, model.RoleAdmin, req.Role)
	assert.Equal(t, model.EnvironmentStaging, req.Environment)
	assert.Equal(t, "abc123f", req.Commit)
}

func TestDeployProductionRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.controller.Deploy(ctx, "alice", model.FormDeploy{Environment: "production", Commit: "abc123f"})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)
	assert.Nil(t, res.Attempt)
	assert.Empty(t, f.orchestrator.deploys)
	assert.Equal(t, model.ActionDeploy, res.Pending.Action)
	assert.Equal(t, "abc123f", res.Pending.Commit)

	confirmed, err := f.controller.Confirm(ctx, "alice", res.Pending.Token)
	require.NoError(t, err)
	require.NotNil(t, confirmed.Attempt)
	require.Len(t, f.orchestrator.deploys, 1)
	assert.Equal(t, model.EnvironmentProduction, f.orchestrator.deploys[0].Environment)
	assert.Equal(t, "abc123f", f.orchestrator.deploys[0].Commit)

	assert.Equal(t, []string{model.AuditConfirmationProposed, model.AuditConfirmationAccepted}, f.audit.actions())
}

func TestDeployDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.controller.Deploy(ctx, "mallory", model.FormDeploy{Environment: "staging", Commit: "abc123f"})
	assert.True(t, errors.Is(err, model.ErrDenied))
	assert.Empty(t, f.orchestrator.deploys)
	assert.Contains(t, f.audit.actions(), model.AuditDeployDenied)

	_, err = f.controller.Deploy(ctx, "bob", model.FormDeploy{Environment: "production", Commit: "abc123f"})
	assert.True(t, errors.Is(err, model.ErrDenied))
	assert.Empty(t, f.orchestrator.deploys)
}

func TestDeployBadInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.controller.Deploy(context.Background(), "alice", model.FormDeploy{Environment: "qa"})
	assert.True(t, errors.Is(err, model.ErrBadInput))
	assert.Empty(t, f.audit.actions())
}

func TestRollbackAlwaysRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.controller.Rollback(ctx, "alice", model.FormRollback{Environment: "staging"})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)
	assert.Equal(t, model.ActionRollback, res.Pending.Action)
	assert.Empty(t, f.orchestrator.rollbacks)

	confirmed, err := f.controller.Confirm(ctx, "alice", res.Pending.Token)
	require.NoError(t, err)
	require.NotNil(t, confirmed.Attempt)
	assert.Equal(t, model.AttemptStatusRolledBack, confirmed.Attempt.Status)
	require.Len(t, f.orchestrator.rollbacks, 1)
}

func TestRollbackDeniedForOperator(t *testing.T) {
	f := newFixture(t)
	_, err := f.controller.Rollback(context.Background(), "bob", model.FormRollback{Environment: "staging"})
	assert.True(t, errors.Is(err, model.ErrDenied))
	assert.Contains(t, f.audit.actions(), model.AuditRollbackDenied)
}

func TestConfirmWrongIdentityRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.controller.Deploy(ctx, "alice", model.FormDeploy{Environment: "production", Commit: "abc123f"})
	require.NoError(t, err)

	_, err = f.controller.Confirm(ctx, "bob", res.Pending.Token)
	assert.True(t, errors.Is(err, model.ErrDenied))
	assert.Empty(t, f.orchestrator.deploys)
	assert.Contains(t, f.audit.actions(), model.AuditConfirmationRejected)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.controller.Rollback(ctx, "alice", model.FormRollback{Environment: "production"})
	require.NoError(t, err)
	require.NoError(t, f.controller.Cancel(ctx, "alice", res.Pending.Token))
	assert.Contains(t, f.audit.actions(), model.AuditConfirmationCancelled)

	_, err = f.controller.Confirm(ctx, "alice", res.Pending.Token)
	assert.True(t, errors.Is(err, model.ErrDenied))
	assert.Empty(t, f.orchestrator.rollbacks)
}

func TestStatusVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.states.RecordDeploy(ctx, model.EnvironmentStaging, "registry/app:staging-v1", time.Now()))
	require.NoError(t, f.states.RecordDeploy(ctx, model.EnvironmentProduction, "registry/app:production-v1", time.Now()))

	res, err := f.controller.Status(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, model.ImageReference("registry/app:staging-v1"), res[0].Current)
	assert.True(t, res[0].Healthy)

	res, err = f.controller.Status(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, model.EnvironmentStaging, res[0].Environment)

	_, err = f.controller.Status(ctx, "mallory")
	assert.True(t, errors.Is(err, model.ErrDenied))
}

func TestHistoryGated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.controller.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, report.Attempts, 1)
	assert.Equal(t, "abc123f", report.Attempts[0].Commit)

	_, err = f.controller.History(ctx, "bob")
	assert.True(t, errors.Is(err, model.ErrDenied))
}
