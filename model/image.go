package model

import "time"

// ImageReference is an opaque identifier of a deployable artifact (registry path plus tag).
type ImageReference string

// ImageState is the per-environment record of the currently and previously deployed images.
type ImageState struct {
	Environment Environment    `json:"environment"`
	Current     ImageReference `json:"current"`
	Previous    ImageReference `json:"previous"`
	DeployedAt  time.Time      `json:"deployedAt"`
}

// EnvironmentStatus is the per-environment part of the status report.
type EnvironmentStatus struct {
	Environment Environment    `json:"environment"`
	Current     ImageReference `json:"current"`
	Previous    ImageReference `json:"previous"`
	DeployedAt  time.Time      `json:"deployedAt"`
	Healthy     bool           `json:"healthy"`
}
