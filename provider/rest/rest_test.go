package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	deployErr error
	identity  string
}

func (f *fakeController) Deploy(ctx context.Context, identity string, form model.FormDeploy) (model.DeployOutcome, error) {
	f.identity = identity
	if f.deployErr != nil {
		return model.DeployOutcome{}, f.deployErr
	}
	attempt := model.DeploymentAttempt{
		Environment: model.Environment(form.Environment),
		Commit:      form.Commit,
		Requester:   identity,
		Status:      model.AttemptStatusSuccess,
	}
	return model.DeployOutcome{Attempt: &attempt}, nil
}

func (f *fakeController) Rollback(ctx context.Context, identity string, form model.FormRollback) (model.DeployOutcome, error) {
	return model.DeployOutcome{}, model.ErrNoPreviousImage
}

func (f *fakeController) Confirm(ctx context.Context, identity, token string) (model.DeployOutcome, error) {
	return model.DeployOutcome{}, model.ErrDenied
}

func (f *fakeController) Cancel(ctx context.Context, identity, token string) error {
	return model.ErrDenied
}

func (f *fakeController) Status(ctx context.Context, identity string) ([]model.EnvironmentStatus, error) {
	return []model.EnvironmentStatus{{Environment: model.EnvironmentStaging, Healthy: true}}, nil
}

func (f *fakeController) History(ctx context.Context, identity string) (model.HistoryReport, error) {
	return model.HistoryReport{}, nil
}

func (f *fakeController) SweepConfirmationsJob(ctx context.Context) {}

func doRequest(t *testing.T, c *fakeController, method, path, body, operator string) *httptest.ResponseRecorder {
	t.Helper()
	router := CreateRouter(c)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if operator != "" {
		req.Header.Set("X-Operator-Id", operator)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDeployEndpoint(t *testing.T) {
	c := &fakeController{}
	w := doRequest(t, c, http.MethodPost, "/deployments", `{"environment":"staging","commit":"abc123f"}`, "alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", c.identity)

	var res model.DeployOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Attempt)
	assert.Equal(t, "abc123f", res.Attempt.Commit)
}

func TestMissingOperatorHeader(t *testing.T) {
	w := doRequest(t, &fakeController{}, http.MethodPost, "/deployments", `{"environment":"staging"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMalformedBody(t *testing.T) {
	w := doRequest(t, &fakeController{}, http.MethodPost, "/deployments", "{not json", "alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{model.ErrBadInput, http.StatusBadRequest},
		{model.ErrDenied, http.StatusForbidden},
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrDeploymentInProgress, http.StatusConflict},
		{model.ErrNoPreviousImage, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := doRequest(t, &fakeController{deployErr: tc.err}, http.MethodPost, "/deployments", `{"environment":"staging"}`, "alice")
		assert.Equal(t, tc.code, w.Code, tc.err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	w := doRequest(t, &fakeController{}, http.MethodGet, "/status", "", "alice")
	require.Equal(t, http.StatusOK, w.Code)
	var res []model.EnvironmentStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.True(t, res[0].Healthy)
}

func TestRollbackWithoutPreviousImage(t *testing.T) {
	w := doRequest(t, &fakeController{}, http.MethodPost, "/rollbacks", `{"environment":"production"}`, "alice")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmEndpointDenied(t *testing.T) {
	w := doRequest(t, &fakeController{}, http.MethodPost, "/confirmations/some-token/confirm", "", "alice")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
