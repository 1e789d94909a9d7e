package history

import (
	"context"
	"fmt"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPostgres creates a new instance of the attempts history service.
func NewPostgres(conn *pgxpool.Pool, schema model.PgSchema) Service {
	return Postgres{conn: conn, schema: string(schema)}
}

// Postgres implements the attempts history service with the Postgres storage.
type Postgres struct {
	conn   *pgxpool.Pool
	schema string
}

// FindAll returns the most recent deployment attempts.
func (p Postgres) FindAll(ctx context.Context, limit int) ([]model.DeploymentAttempt, error) {
	q := fmt.Sprintf(
		`SELECT "id", "environment", "commit", "image", "requester", "correlation_id", "status", "steps", "created_at", "finished_at"
		FROM "%s"."attempts" ORDER BY "created_at" DESC LIMIT $1`,
		p.schema,
	)
	rows, err := p.conn.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("service.history.postgres.FindAll: query: %w", err)
	}
	defer rows.Close()
	return p.scanAll(rows)
}

// FindByEnvironment returns the most recent attempts for one environment.
func (p Postgres) FindByEnvironment(ctx context.Context, env model.Environment, limit int) ([]model.DeploymentAttempt, error) {
	q := fmt.Sprintf(
		`SELECT "id", "environment", "commit", "image", "requester", "correlation_id", "status", "steps", "created_at", "finished_at"
		FROM "%s"."attempts" WHERE "environment" = $1 ORDER BY "created_at" DESC LIMIT $2`,
		p.schema,
	)
	rows, err := p.conn.Query(ctx, q, env, limit)
	if err != nil {
		return nil, fmt.Errorf("service.history.postgres.FindByEnvironment: query: %w", err)
	}
	defer rows.Close()
	return p.scanAll(rows)
}

// FindByID returns the one attempt with the specific ID.
func (p Postgres) FindByID(ctx context.Context, id uint64) (model.DeploymentAttempt, error) {
	var a model.DeploymentAttempt
	q := fmt.Sprintf(
		`SELECT "id", "environment", "commit", "image", "requester", "correlation_id", "status", "steps", "created_at", "finished_at"
		FROM "%s"."attempts" WHERE "id" = $1`,
		p.schema,
	)
	err := p.conn.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Environment, &a.Commit, &a.Image, &a.Requester,
		&a.CorrelationID, &a.Status, &a.Steps, &a.CreatedAt, &a.FinishedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return a, model.ErrNotFound
		}
		return a, fmt.Errorf("service.history.postgres.FindByID: query: %w", err)
	}
	return a, nil
}

// Add saves a new deployment attempt.
func (p Postgres) Add(ctx context.Context, a model.DeploymentAttempt) (model.DeploymentAttempt, error) {
	q := fmt.Sprintf(
		`INSERT INTO "%s"."attempts" ("environment", "commit", "image", "requester", "correlation_id", "status", "steps", "created_at", "finished_at")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING "id"`,
		p.schema,
	)
	err := p.conn.QueryRow(
		ctx, q,
		a.Environment, a.Commit, a.Image, a.Requester, a.CorrelationID, a.Status, a.Steps, a.CreatedAt, a.FinishedAt,
	).Scan(&a.ID)
	if err != nil {
		return a, fmt.Errorf("service.history.postgres.Add: insert: %w", err)
	}
	return a, nil
}

// Update modifies a specific attempt.
func (p Postgres) Update(ctx context.Context, a model.DeploymentAttempt) (model.DeploymentAttempt, error) {
	q := fmt.Sprintf(
		`UPDATE "%s"."attempts" SET "image" = $2, "status" = $3, "steps" = $4, "finished_at" = $5 WHERE "id" = $1`,
		p.schema,
	)
	_, err := p.conn.Exec(ctx, q, a.ID, a.Image, a.Status, a.Steps, a.FinishedAt)
	if err != nil {
		return a, fmt.Errorf("service.history.postgres.Update: exec: %w", err)
	}
	return a, nil
}

func (p Postgres) scanAll(rows pgx.Rows) ([]model.DeploymentAttempt, error) {
	res := make([]model.DeploymentAttempt, 0)
	var a model.DeploymentAttempt
	for rows.Next() {
		a.Steps = nil
		err := rows.Scan(
			&a.ID, &a.Environment, &a.Commit, &a.Image, &a.Requester,
			&a.CorrelationID, &a.Status, &a.Steps, &a.CreatedAt, &a.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("service.history.postgres.scanAll: scan: %w", err)
		}
		res = append(res, a)
	}
	return res, nil
}
