package orchestrator

type pipelineStep struct {
	name   string
	action func() error
	next   *pipelineStep
}
