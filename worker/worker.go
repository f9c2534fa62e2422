package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/romanqed/jobqd/config"
	"github.com/romanqed/jobqd/internal"
	"github.com/romanqed/jobqd/job"
	"github.com/romanqed/jobqd/queue"
)

// Worker repeatedly claims and runs one job at a time via a shell,
// finalizing it through Manager before polling again.
//
// Worker has the same strict lifecycle as the other background
// components: Start may only be called once, and Stop waits for the
// in-flight job (if any) to finish or the timeout to expire.
type Worker struct {
	internal.Lifecycle
	id   string
	mgr  *queue.Manager
	cfg  *config.Store
	task internal.TimerTask
	log  *slog.Logger
}

// New creates a Worker identified by id for logging.
func New(id string, mgr *queue.Manager, cfg *config.Store, log *slog.Logger) *Worker {
	return &Worker{id: id, mgr: mgr, cfg: cfg, log: log}
}

// Start begins the poll loop using the current worker_poll_interval
// config value. It returns internal.ErrDoubleStarted if already
// running.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.TryStart(); err != nil {
		return err
	}
	interval, err := w.cfg.WorkerPollInterval(ctx)
	if err != nil {
		return err
	}
	w.task.Start(ctx, w.poll, interval)
	return nil
}

// Stop terminates the poll loop, waiting up to timeout for the
// in-flight job's finalize step to complete.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.TryStop(timeout, w.task.Stop)
}

func (w *Worker) poll(ctx context.Context) {
	j, err := w.mgr.Claim(ctx)
	if err != nil {
		w.log.Error("claim failed", "worker", w.id, "err", err)
		return
	}
	if j == nil {
		return
	}
	w.execute(ctx, j)
}

// execute runs j's command to completion and finalizes it. Both the
// subprocess and the finalize call deliberately run on a context
// derived from context.Background rather than the poll loop's ctx:
// the subprocess call is not interruptible by design (spec §4.5/§9),
// so a worker told to shut down mid-job lets the command finish and
// finalizes normally instead of SIGKILLing the child and stranding the
// record in Processing.
func (w *Worker) execute(_ context.Context, j *job.Job) {
	w.log.Info("job started", "worker", w.id, "id", j.Id, "command", j.Command, "priority", j.Priority)
	start := time.Now()

	cmdCtx, cancel := context.WithTimeout(context.Background(), j.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "sh", "-c", j.Command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	elapsed := time.Since(start)

	finalizeCtx := context.Background()
	if runErr == nil {
		w.log.Info("job completed", "worker", w.id, "id", j.Id, "duration", elapsed)
		if err := w.mgr.Complete(finalizeCtx, j, stdout.String(), stderr.String()); err != nil {
			w.log.Error("cannot finalize completed job", "id", j.Id, "err", err)
		}
		return
	}

	errMsg := classifyFailure(cmdCtx, runErr, stderr.String(), j.Timeout)
	if err := w.mgr.Fail(finalizeCtx, j, stdout.String(), stderr.String(), errMsg); err != nil {
		w.log.Error("cannot finalize failed job", "id", j.Id, "err", err)
		return
	}
	w.log.Warn("job failed", "worker", w.id, "id", j.Id, "duration", elapsed, "error", errMsg)
}

// classifyFailure derives the error message recorded on the job from
// how the command failed: timeout, non-zero exit, or spawn failure.
func classifyFailure(cmdCtx context.Context, runErr error, stderr string, timeout time.Duration) string {
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("Command timed out after %s", timeout)
	}
	if stderr != "" {
		return stderr
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return fmt.Sprintf("Exit code: %d", exitErr.ExitCode())
	}
	return runErr.Error()
}
