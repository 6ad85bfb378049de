package repositories

import (
	"context"

	"reel-processor/internal/domain/entities"
)

type CommandBuilder interface {
	Build(job *entities.MediaJob) []string
}

type Outcome struct {
	ExitCode int
	Stderr   string
}

// Invoker runs a built argv to completion. It blocks the caller until the child exits
// or the timeout kills it.
type Invoker interface {
	Run(ctx context.Context, argv []string) (Outcome, error)
}

type Prober interface {
	Probe(ctx context.Context, path string) (*entities.ProbeResult, error)
}

// JobQueue runs argv on a bounded set of workers and waits for the result. Do takes a
// slot from the same set for work that is not a plain argv, such as a probe.
type JobQueue interface {
	Submit(ctx context.Context, id string, argv []string) (Outcome, error)
	Do(ctx context.Context, id string, fn func(context.Context) error) error
}
