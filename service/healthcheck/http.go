package healthcheck

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/beldeveloper/app-promoter/model"
)

// NewHTTP creates a new instance of the HTTP health checker.
func NewHTTP() Service {
	return HTTP{client: &http.Client{}, sleep: sleepContext}
}

// HTTP implements the health checker with bounded-retry GET probes.
// Only status 200 counts as healthy; any other status or a transport error is
// a failed attempt, never a fatal error.
type HTTP struct {
	client *http.Client
	sleep  func(ctx context.Context, d time.Duration) error
}

// Poll probes the endpoint up to maxAttempts times. The exhaustion check runs
// strictly before the sleep, so a run of M failed attempts sleeps exactly M-1
// times and the last attempt is never followed by a pause.
func (h HTTP) Poll(ctx context.Context, url string, maxAttempts int, interval, attemptTimeout time.Duration) (model.HealthResult, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 1; ; attempt++ {
		if h.probe(ctx, url, attemptTimeout) {
			return model.HealthResult{Healthy: true, Attempts: attempt}, nil
		}
		if attempt >= maxAttempts {
			return model.HealthResult{Healthy: false, Attempts: attempt}, nil
		}
		log.Printf("Health check attempt %d/%d failed; retrying in %s; url = %s\n", attempt, maxAttempts, interval, url)
		err := h.sleep(ctx, interval)
		if err != nil {
			return model.HealthResult{Healthy: false, Attempts: attempt}, err
		}
	}
}

func (h HTTP) probe(ctx context.Context, url string, timeout time.Duration) bool {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
