package model

// HealthResult is the outcome of a bounded readiness poll.
type HealthResult struct {
	Healthy  bool `json:"healthy"`
	Attempts int  `json:"attempts"`
}
