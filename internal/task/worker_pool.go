package task

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// WorkerPool manages a pool of worker goroutines that process tasks
// from a task queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	// taskQueue provides read access to the tasks to be processed
	taskQueue TaskQueueReader

	// store records status transitions; may be nil
	store TaskStore

	workerCount int
	taskTimeout time.Duration

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is cancelled by Stop and is the parent of every task context
	ctx    context.Context
	cancel context.CancelFunc

	logger *slog.Logger

	// errorHandler is called when a task execution fails
	// If nil, errors are only logged
	errorHandler func(task Task, err error)

	startOnce sync.Once
	stopOnce  sync.Once
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int

	// TaskTimeout bounds a single task execution. Zero means no limit.
	TaskTimeout time.Duration
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
		TaskTimeout: 10 * time.Minute,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
// store may be nil when task status does not need to be tracked.
func NewWorkerPool(
	taskQueue TaskQueueReader,
	store TaskStore,
	config WorkerPoolConfig,
	logger *slog.Logger,
) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "worker_pool")

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		taskQueue:   taskQueue,
		store:       store,
		workerCount: workerCount,
		taskTimeout: config.TaskTimeout,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution failures
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the workers. Calling Start more than once has no effect.
func (p *WorkerPool) Start() {
	p.startOnce.Do(func() {
		p.logger.Info("starting worker pool", "worker_count", p.workerCount)
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Stop cancels running tasks and waits for every worker to return.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("stopping worker pool")
		p.cancel()
		p.wg.Wait()
		p.logger.Info("worker pool stopped")
	})
}

// Wait blocks until every worker has returned, which happens after Stop or
// once the queue is closed and drained.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Run starts the pool and blocks until ctx is cancelled, then stops it.
func (p *WorkerPool) Run(ctx context.Context) error {
	p.Start()
	<-ctx.Done()
	p.Stop()
	return nil
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	log := p.logger.With("worker_id", id)
	log.Debug("starting worker")

	tasks := p.taskQueue.GetChannel()
	for {
		select {
		case <-p.ctx.Done():
			log.Debug("stopping worker")
			return

		case task, ok := <-tasks:
			if !ok {
				log.Debug("task channel closed, stopping worker")
				return
			}
			queueDepth.Set(float64(len(tasks)))
			p.processTask(task, log)
		}
	}
}

// processTask handles execution of a single task
func (p *WorkerPool) processTask(task Task, workerLog *slog.Logger) {
	log := workerLog.With("task_id", task.ID(), "task_type", task.Type())

	ctx := p.ctx
	if p.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.taskTimeout)
		defer cancel()
	}

	p.updateStatus(task, TaskStatusProcessing, "", log)
	log.Info("processing task")

	start := time.Now()
	err := p.execute(ctx, task)
	taskDuration.WithLabelValues(task.Type()).Observe(time.Since(start).Seconds())

	if err != nil {
		tasksTotal.WithLabelValues(task.Type(), string(TaskStatusFailed)).Inc()
		log.Error("task execution failed", "error", err)
		p.updateStatus(task, TaskStatusFailed, err.Error(), log)
		if p.errorHandler != nil {
			p.errorHandler(task, err)
		}
		return
	}

	tasksTotal.WithLabelValues(task.Type(), string(TaskStatusCompleted)).Inc()
	log.Info("task completed successfully", "duration", time.Since(start))
	p.updateStatus(task, TaskStatusCompleted, "", log)
}

// execute runs task, converting a panic into an error so one bad task
// cannot take down its worker.
func (p *WorkerPool) execute(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return task.Execute(ctx)
}

func (p *WorkerPool) updateStatus(task Task, status TaskStatus, msg string, log *slog.Logger) {
	if p.store == nil {
		return
	}
	// The store outlives the pool context so final statuses are still written.
	if err := p.store.UpdateTaskStatus(context.Background(), task.ID(), status, msg); err != nil {
		log.Error("failed to update task status", "status", status, "error", err)
	}
}
