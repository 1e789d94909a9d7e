package healthcheck

import (
	"context"
	"time"

	"github.com/beldeveloper/app-promoter/model"
)

// Service defines the health checker interface.
type Service interface {
	Poll(ctx context.Context, url string, maxAttempts int, interval, attemptTimeout time.Duration) (model.HealthResult, error)
}
