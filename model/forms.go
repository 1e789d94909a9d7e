package model

// FormDeploy is a deployment request form. An empty commit means the latest
// commit of the environment branch.
type FormDeploy struct {
	Environment string `json:"environment"`
	Commit      string `json:"commit"`
}

// FormRollback is a rollback request form.
type FormRollback struct {
	Environment string `json:"environment"`
}

// DeployOutcome is the controller's answer to a deployment or rollback request:
// either a finished attempt, or a pending confirmation for destructive actions.
type DeployOutcome struct {
	Attempt *DeploymentAttempt   `json:"attempt,omitempty"`
	Pending *PendingConfirmation `json:"pending,omitempty"`
}

// HistoryReport combines the recent attempts with the recent audit trail.
type HistoryReport struct {
	Attempts []DeploymentAttempt `json:"attempts"`
	Audit    []AuditEntry        `json:"audit"`
}
