package model

// Role defines the access level assigned to a requester identity.
type Role string

const (
	// RoleAdmin is permitted for every action on every environment.
	RoleAdmin Role = "admin"
	// RoleStagingOperator is permitted to deploy and check status on staging only.
	RoleStagingOperator Role = "staging"
)

// RoleTable is the static role assignment table. Admins are a superset of staging operators.
type RoleTable struct {
	Admins           []string `yaml:"admins" json:"admins"`
	StagingOperators []string `yaml:"stagingOperators" json:"stagingOperators"`
}
