package model

import "time"

// EnvironmentConfig describes one deployment target: where the image goes and
// how to verify it is alive. Supplied by external configuration.
type EnvironmentConfig struct {
	Branch         string `yaml:"branch"`
	HealthURL      string `yaml:"healthUrl"`
	Host           string `yaml:"host"`
	DeployUser     string `yaml:"deployUser"`
	SSHKeyPath     string `yaml:"sshKeyPath"`
	UseKubernetes  bool   `yaml:"useKubernetes"`
	KubeNamespace  string `yaml:"kubeNamespace"`
	KubeDeployment string `yaml:"kubeDeployment"`
}

// RegistrySettings describes the container registry the pipeline pushes to.
type RegistrySettings struct {
	URL   string `yaml:"url"`
	Image string `yaml:"image"`
}

// HealthCheckSettings is the bounded retry budget of the readiness probe.
type HealthCheckSettings struct {
	MaxAttempts           int `yaml:"maxAttempts"`
	IntervalSeconds       int `yaml:"intervalSeconds"`
	AttemptTimeoutSeconds int `yaml:"attemptTimeoutSeconds"`
}

// Interval returns the pause between failed attempts.
func (s HealthCheckSettings) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// AttemptTimeout returns the upper bound of a single probe.
func (s HealthCheckSettings) AttemptTimeout() time.Duration {
	return time.Duration(s.AttemptTimeoutSeconds) * time.Second
}

// Settings is the external configuration consumed by the core.
type Settings struct {
	Registry               RegistrySettings                  `yaml:"registry"`
	Environments           map[Environment]EnvironmentConfig `yaml:"environments"`
	HealthCheck            HealthCheckSettings               `yaml:"healthCheck"`
	StepTimeoutSeconds     int                               `yaml:"stepTimeoutSeconds"`
	ConfirmationTTLSeconds int                               `yaml:"confirmationTtlSeconds"`
	Roles                  RoleTable                         `yaml:"roles"`
}

// StepTimeout returns the upper bound of a single build/push/deploy-target call.
func (s Settings) StepTimeout() time.Duration {
	return time.Duration(s.StepTimeoutSeconds) * time.Second
}

// ConfirmationTTL returns the expiry window of a pending confirmation token.
func (s Settings) ConfirmationTTL() time.Duration {
	return time.Duration(s.ConfirmationTTLSeconds) * time.Second
}
