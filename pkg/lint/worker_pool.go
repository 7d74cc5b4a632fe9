package lint

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnana997/reactlint/pkg/util"
)

// FileJob is a file to be linted by the worker pool.
type FileJob struct {
	Path  string
	JobID int
}

// fileLinter is the part of Linter the pool depends on.
type fileLinter interface {
	LintFile(path string) (*FileResult, error)
}

// WorkerPool lints files on a fixed set of goroutines.
//
// **Architecture:**
//   - Buffered jobs channel feeding numWorkers goroutines
//   - Separate result and error channels
//   - Graceful shutdown via FinishSubmitting / Stop
//
// Worker count should match the parser pool size so that workers never wait
// on a parser.
//
// **Usage:**
//
//	pool := NewWorkerPool(0, linter, logger)
//	pool.Start()
//	defer pool.Stop()
//	results, errs, err := pool.Collect(ctx, paths)
type WorkerPool struct {
	numWorkers int
	jobs       chan FileJob
	results    chan *FileResult
	errors     chan FileError
	wg         sync.WaitGroup
	linter     fileLinter
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewWorkerPool creates a pool. numWorkers 0 uses util.PoolSize(0).
func NewWorkerPool(numWorkers int, linter fileLinter, logger *slog.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = util.PoolSize(0)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan FileJob, numWorkers*2),
		results:    make(chan *FileResult, numWorkers),
		errors:     make(chan FileError, numWorkers),
		linter:     linter,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the workers. Must be called before submitting jobs.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		wp.logger.Warn("worker pool already started")
		return
	}

	wp.logger.Debug("starting worker pool", "workers", wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			wp.processJob(id, job)
		}
	}
}

func (wp *WorkerPool) processJob(workerID int, job FileJob) {
	wp.logger.Debug("linting file", "worker_id", workerID, "file", job.Path, "job_id", job.JobID)

	res, err := wp.linter.LintFile(job.Path)
	if err != nil {
		wp.jobsFailed.Add(1)
		fe := FileError{Path: job.Path, Error: err, Message: err.Error()}
		select {
		case wp.errors <- fe:
		case <-wp.ctx.Done():
		}
		return
	}

	wp.jobsProcessed.Add(1)
	select {
	case wp.results <- res:
	case <-wp.ctx.Done():
	}
}

// Submit enqueues a job. It blocks while the queue is full and fails once
// FinishSubmitting has been called.
func (wp *WorkerPool) Submit(ctx context.Context, job FileJob) error {
	if wp.stopped.Load() {
		return fmt.Errorf("worker pool is stopped")
	}
	if wp.jobsClosed.Load() {
		return fmt.Errorf("worker pool is not accepting jobs")
	}

	wp.jobsSubmitted.Add(1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool cancelled")
	case wp.jobs <- job:
		return nil
	}
}

// Results returns the results channel.
func (wp *WorkerPool) Results() <-chan *FileResult {
	return wp.results
}

// Errors returns the errors channel.
func (wp *WorkerPool) Errors() <-chan FileError {
	return wp.errors
}

// FinishSubmitting closes the jobs channel so that workers exit once it is
// drained. Safe to call more than once.
func (wp *WorkerPool) FinishSubmitting() {
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
}

// Collect submits one job per path and gathers every result and error. The
// collector runs before submission starts so a full queue cannot deadlock
// the submitter. A pool collects once; later calls return an error.
func (wp *WorkerPool) Collect(ctx context.Context, paths []string) ([]*FileResult, []FileError, error) {
	total := len(paths)
	var (
		results []*FileResult
		errs    []FileError
	)

	collectCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(results)+len(errs) < total {
			select {
			case <-collectCtx.Done():
				return
			case res, ok := <-wp.results:
				if !ok {
					return
				}
				results = append(results, res)
			case fe, ok := <-wp.errors:
				if !ok {
					return
				}
				wp.logger.Warn("file lint failed", "file", fe.Path, "error", fe.Error)
				errs = append(errs, fe)
			}
		}
	}()

	var submitErr error
	for i, path := range paths {
		if err := wp.Submit(collectCtx, FileJob{Path: path, JobID: i}); err != nil {
			submitErr = fmt.Errorf("failed to submit %s: %w", path, err)
			cancel()
			break
		}
	}
	wp.FinishSubmitting()
	<-done

	if submitErr != nil {
		return nil, nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return results, errs, nil
}

// Stop shuts the pool down and waits for the workers. Safe to call more than
// once.
func (wp *WorkerPool) Stop() {
	if !wp.stopped.CompareAndSwap(false, true) {
		return
	}

	wp.FinishSubmitting()
	// Workers blocked on a result nobody reads are released by the cancel.
	wp.cancel()
	wp.wg.Wait()

	wp.logger.Debug("worker pool stopped",
		"jobs_submitted", wp.jobsSubmitted.Load(),
		"jobs_processed", wp.jobsProcessed.Load(),
		"jobs_failed", wp.jobsFailed.Load())
}

// GetStats returns current worker pool statistics.
func (wp *WorkerPool) GetStats() WorkerPoolStats {
	return WorkerPoolStats{
		NumWorkers:    wp.numWorkers,
		JobsSubmitted: wp.jobsSubmitted.Load(),
		JobsProcessed: wp.jobsProcessed.Load(),
		JobsFailed:    wp.jobsFailed.Load(),
		QueueLength:   len(wp.jobs),
	}
}

// WorkerPoolStats contains statistics about the worker pool.
type WorkerPoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
	QueueLength   int
}
