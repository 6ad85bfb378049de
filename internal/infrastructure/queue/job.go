package queue

import (
	"context"

	"reel-processor/internal/domain/repositories"
)

// Job is one argv, or one function wrapping a tool of its own, waiting for a worker. The result channel is buffered so a worker never
// blocks on a caller that has gone away.
type Job struct {
	ID   string
	Argv []string

	fn     func(context.Context) error
	ctx    context.Context
	result chan Result
}

type Result struct {
	Outcome repositories.Outcome
	Err     error
}

func NewJob(ctx context.Context, id string, argv []string) Job {
	return Job{
		ID:     id,
		Argv:   argv,
		ctx:    ctx,
		result: make(chan Result, 1),
	}
}

// NewFuncJob queues fn instead of an argv. fn gets the same cancellation as an argv job.
func NewFuncJob(ctx context.Context, id string, fn func(context.Context) error) Job {
	job := NewJob(ctx, id, nil)
	job.fn = fn
	return job
}
