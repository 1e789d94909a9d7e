package model

import "time"

// Cmd is a model of the OS command.
type Cmd struct {
	Name    string
	Args    []string
	Env     []string
	Dir     string
	Timeout time.Duration
	Log     bool
}
