package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/repositories"
)

var ErrPoolClosed = errors.New("worker pool is shut down")

// WorkerPool bounds how many media tools run at once. Callers block in Submit until their
// job has run.
type WorkerPool struct {
	JobChan chan Job
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(workerCount int, invoker repositories.Invoker, log logrus.FieldLogger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		JobChan: make(chan Job, 100),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workerCount; i++ {
		worker := &Worker{
			ID:      i,
			JobChan: pool.JobChan,
			Wg:      &pool.wg,
			Invoker: invoker,
			Log:     log,
		}
		pool.wg.Add(1)
		worker.Start(pool.ctx)
	}
	return pool
}

// Submit queues argv and waits for its result. Every accepted job gets exactly one result,
// even across Shutdown.
func (p *WorkerPool) Submit(ctx context.Context, id string, argv []string) (repositories.Outcome, error) {
	job := NewJob(ctx, id, argv)

	if err := p.enqueue(ctx, job); err != nil {
		return repositories.Outcome{ExitCode: -1}, err
	}

	res := <-job.result
	return res.Outcome, res.Err
}

// Do runs fn on a worker slot, so tools other than the encoder count against the same
// limit. It blocks like Submit.
func (p *WorkerPool) Do(ctx context.Context, id string, fn func(context.Context) error) error {
	job := NewFuncJob(ctx, id, fn)
	if err := p.enqueue(ctx, job); err != nil {
		return err
	}
	return (<-job.result).Err
}

// Run makes the pool a repositories.Invoker.
func (p *WorkerPool) Run(ctx context.Context, argv []string) (repositories.Outcome, error) {
	return p.Submit(ctx, "", argv)
}

func (p *WorkerPool) enqueue(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.JobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.JobChan)
	}
	p.mu.Unlock()
	p.wg.Wait()

	// jobs still buffered when the workers stopped
	for job := range p.JobChan {
		job.result <- Result{Outcome: repositories.Outcome{ExitCode: -1}, Err: ErrPoolClosed}
	}
}
