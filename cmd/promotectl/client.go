package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/beldeveloper/app-promoter/model"
)

func newClient(baseURL, operator string) *client {
	return &client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		operator: operator,
		http:     &http.Client{},
	}
}

type client struct {
	baseURL  string
	operator string
	http     *http.Client
}

func (c *client) Deploy(ctx context.Context, f model.FormDeploy) (model.DeployOutcome, error) {
	var res model.DeployOutcome
	err := c.do(ctx, http.MethodPost, "/deployments", f, &res)
	return res, err
}

func (c *client) Rollback(ctx context.Context, f model.FormRollback) (model.DeployOutcome, error) {
	var res model.DeployOutcome
	err := c.do(ctx, http.MethodPost, "/rollbacks", f, &res)
	return res, err
}

func (c *client) Confirm(ctx context.Context, token string) (model.DeployOutcome, error) {
	var res model.DeployOutcome
	err := c.do(ctx, http.MethodPost, "/confirmations/"+token+"/confirm", nil, &res)
	return res, err
}

func (c *client) Cancel(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/confirmations/"+token+"/cancel", nil, nil)
}

func (c *client) Status(ctx context.Context) ([]model.EnvironmentStatus, error) {
	var res []model.EnvironmentStatus
	err := c.do(ctx, http.MethodGet, "/status", nil, &res)
	return res, err
}

func (c *client) History(ctx context.Context) (model.HistoryReport, error) {
	var res model.HistoryReport
	err := c.do(ctx, http.MethodGet, "/history", nil, &res)
	return res, err
}

func (c *client) do(ctx context.Context, method, path string, body, target interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Operator-Id", c.operator)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&apiErr); decErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server: unexpected status %s", resp.Status)
	}
	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
