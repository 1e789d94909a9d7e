package model

// Environment wraps the string for defining the deployment targets.
type Environment string

const (
	// EnvironmentStaging defines the staging deployment target.
	EnvironmentStaging Environment = "staging"
	// EnvironmentProduction defines the production deployment target.
	EnvironmentProduction Environment = "production"
)

// Environments lists every known environment in promotion order.
var Environments = []Environment{EnvironmentStaging, EnvironmentProduction}

// Valid reports whether the environment belongs to the known set.
func (e Environment) Valid() bool {
	for _, known := range Environments {
		if e == known {
			return true
		}
	}
	return false
}
