package processor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"reel-processor/internal/domain/repositories"
)

var (
	ErrToolFailure = errors.New("media tool exited with an error")
	ErrToolTimeout = errors.New("media tool timed out")
)

const stderrTailSize = 4 << 10

// FFmpegRunner executes a built argv as a child process. It never retries.
type FFmpegRunner struct {
	Timeout time.Duration
	// WaitDelay bounds how long Run waits for the child's pipes after it was killed.
	WaitDelay time.Duration
	log       logrus.FieldLogger
}

func NewFFmpegRunner(timeout time.Duration, log logrus.FieldLogger) *FFmpegRunner {
	return &FFmpegRunner{
		Timeout:   timeout,
		WaitDelay: 2 * time.Second,
		log:       log,
	}
}

// Run blocks until the process exits or Timeout elapses. On timeout the child is killed
// and ErrToolTimeout returned; a non-zero exit yields ErrToolFailure. The stderr tail is
// kept in the Outcome for logs and must not reach clients.
func (r *FFmpegRunner) Run(ctx context.Context, argv []string) (repositories.Outcome, error) {
	if len(argv) == 0 {
		return repositories.Outcome{ExitCode: -1}, fmt.Errorf("%w: empty command", ErrToolFailure)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	stderr := &tailBuffer{limit: stderrTailSize}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = stderr
	cmd.WaitDelay = r.WaitDelay

	start := time.Now()
	err := cmd.Run()
	out := repositories.Outcome{ExitCode: cmd.ProcessState.ExitCode(), Stderr: stderr.String()}

	entry := r.log.WithFields(logrus.Fields{
		"tool":      argv[0],
		"exit_code": out.ExitCode,
		"elapsed":   time.Since(start).Round(time.Millisecond).String(),
	})

	switch {
	case err == nil:
		entry.Debug("media tool finished")
		return out, nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		entry.WithField("stderr", out.Stderr).Warn("media tool killed after timeout")
		return out, fmt.Errorf("%w after %s", ErrToolTimeout, r.Timeout)
	case ctx.Err() != nil:
		entry.Warn("media tool cancelled")
		return out, ctx.Err()
	default:
		entry.WithError(err).WithField("stderr", out.Stderr).Error("media tool failed")
		return out, fmt.Errorf("%w: exit code %d", ErrToolFailure, out.ExitCode)
	}
}

// tailBuffer keeps only the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
