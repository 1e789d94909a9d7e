package model

import "time"

const (
	// AttemptStatusRunning defines the status of an attempt that is still in flight.
	AttemptStatusRunning = "running"
	// AttemptStatusSuccess defines the status of an attempt that went through a healthy deploy.
	AttemptStatusSuccess = "success"
	// AttemptStatusFailed defines the status of an attempt that failed before any state rotation.
	AttemptStatusFailed = "failed"
	// AttemptStatusRolledBack defines the status of a failed attempt whose rollback succeeded.
	AttemptStatusRolledBack = "rolled_back"
	// AttemptStatusRollbackFailed defines the status of a failed attempt whose rollback also failed.
	// The environment is in an unknown state and requires manual intervention.
	AttemptStatusRollbackFailed = "rollback_failed"
)

const (
	// StepValidating resolves and validates the requested commit.
	StepValidating = "validating"
	// StepBuilding builds the container image.
	StepBuilding = "building"
	// StepPushing pushes the image to the registry.
	StepPushing = "pushing"
	// StepRecordingState rotates the environment image state.
	StepRecordingState = "recording_state"
	// StepDeployingTarget rolls the image out to the target host or cluster.
	StepDeployingTarget = "deploying_target"
	// StepHealthChecking probes the environment readiness endpoint.
	StepHealthChecking = "health_checking"
)

const (
	// StepOutcomeOK marks a completed pipeline step.
	StepOutcomeOK = "ok"
	// StepOutcomeFailed marks a failed pipeline step.
	StepOutcomeFailed = "failed"
)

// StepOutcome records the result of a single pipeline step.
type StepOutcome struct {
	Step       string    `json:"step"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

// DeploymentAttempt is the unit of work of one orchestrator run.
type DeploymentAttempt struct {
	ID            uint64         `json:"id"`
	Environment   Environment    `json:"environment"`
	Commit        string         `json:"commit"`
	Image         ImageReference `json:"image,omitempty"`
	Requester     string         `json:"requester"`
	CorrelationID string         `json:"correlationId"`
	Status        string         `json:"status"`
	Steps         []StepOutcome  `json:"steps"`
	CreatedAt     time.Time      `json:"createdAt"`
	FinishedAt    time.Time      `json:"finishedAt"`
}
