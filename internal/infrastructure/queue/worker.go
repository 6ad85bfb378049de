package queue

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/repositories"
)

type Worker struct {
	ID      int
	JobChan <-chan Job
	Wg      *sync.WaitGroup
	Invoker repositories.Invoker
	Log     logrus.FieldLogger
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer w.Wg.Done()
		for {
			select {
			case job, ok := <-w.JobChan:
				if !ok {
					w.Log.WithField("worker", w.ID).Debug("job channel closed")
					return
				}
				select {
				case <-ctx.Done():
					job.result <- Result{Outcome: repositories.Outcome{ExitCode: -1}, Err: ctx.Err()}
					continue
				default:
					w.processJob(ctx, job)
				}
			case <-ctx.Done():
				w.Log.WithField("worker", w.ID).Debug("stopping on context cancellation")
				return
			}
		}
	}()
}

// processJob runs the job under the caller's context, also cancelled when the pool
// shuts down so no child outlives the worker.
func (w *Worker) processJob(poolCtx context.Context, job Job) {
	entry := w.Log.WithFields(logrus.Fields{"worker": w.ID, "job_id": job.ID})

	// the caller gave up while the job sat in the queue
	if err := job.ctx.Err(); err != nil {
		entry.Info("job skipped, caller cancelled")
		job.result <- Result{Outcome: repositories.Outcome{ExitCode: -1}, Err: err}
		return
	}

	ctx, cancel := context.WithCancel(job.ctx)
	defer cancel()
	stop := context.AfterFunc(poolCtx, cancel)
	defer stop()

	entry.Info("processing job")
	var (
		out repositories.Outcome
		err error
	)
	if job.fn != nil {
		err = job.fn(ctx)
	} else {
		out, err = w.Invoker.Run(ctx, job.Argv)
	}
	if err != nil {
		entry.WithError(err).Warn("job failed")
	} else {
		entry.Info("job succeeded")
	}
	job.result <- Result{Outcome: out, Err: err}
}
