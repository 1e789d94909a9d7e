package model

import "time"

const (
	// AuditDeployStarted records the start of a deployment attempt.
	AuditDeployStarted = "deploy_started"
	// AuditDeployStep records a single pipeline step outcome.
	AuditDeployStep = "deploy_step"
	// AuditDeploySuccess records a fully healthy deployment.
	AuditDeploySuccess = "deploy_success"
	// AuditDeployFailed records a terminally failed deployment.
	AuditDeployFailed = "deploy_failed"
	// AuditDeployDenied records a deployment rejected by the authorization gate.
	AuditDeployDenied = "deploy_denied"
	// AuditRollbackStarted records the start of a rollback.
	AuditRollbackStarted = "rollback_started"
	// AuditRollbackSuccess records a successful, healthy rollback.
	AuditRollbackSuccess = "rollback_success"
	// AuditRollbackFailed records a rollback that left the environment in an unknown state.
	AuditRollbackFailed = "rollback_failed"
	// AuditRollbackDenied records a rollback rejected before any mutation.
	AuditRollbackDenied = "rollback_denied"
	// AuditConfirmationProposed records a pending confirmation token being issued.
	AuditConfirmationProposed = "confirmation_proposed"
	// AuditConfirmationAccepted records a token being consumed successfully.
	AuditConfirmationAccepted = "confirmation_accepted"
	// AuditConfirmationRejected records a confirm attempt rejected by the flow.
	AuditConfirmationRejected = "confirmation_rejected"
	// AuditConfirmationCancelled records an explicit cancel.
	AuditConfirmationCancelled = "confirmation_cancelled"
	// AuditConfirmationExpired records a token invalidated by the expiry sweeper.
	AuditConfirmationExpired = "confirmation_expired"
)

// AuditEntry is one immutable record of the append-only audit trail.
type AuditEntry struct {
	Timestamp     time.Time   `json:"timestamp"`
	Requester     string      `json:"requester"`
	Action        string      `json:"action"`
	Environment   Environment `json:"environment,omitempty"`
	Outcome       string      `json:"outcome,omitempty"`
	CorrelationID string      `json:"correlationId,omitempty"`
	Detail        string      `json:"detail,omitempty"`
}
