package model

// Action defines the operation a requester asks the system to perform.
type Action string

const (
	// ActionDeploy triggers the deployment pipeline.
	ActionDeploy Action = "deploy"
	// ActionRollback reverts the environment to the previously deployed image.
	ActionRollback Action = "rollback"
	// ActionStatus reads the environment state and health.
	ActionStatus Action = "status"
)

// ActionRequest is an immutable record of a single incoming trigger.
type ActionRequest struct {
	Requester   string      `json:"requester"`
	Role        Role        `json:"role"`
	Environment Environment `json:"environment"`
	Action      Action      `json:"action"`
	Commit      string      `json:"commit,omitempty"`
}
