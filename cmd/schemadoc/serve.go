package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/schemadoc/internal/api"
	"github.com/phrazzld/schemadoc/internal/auth"
	"github.com/phrazzld/schemadoc/internal/config"
	"github.com/phrazzld/schemadoc/internal/documenter"
	"github.com/phrazzld/schemadoc/internal/platform/logger"
	"github.com/phrazzld/schemadoc/internal/platform/postgres"
	"github.com/phrazzld/schemadoc/internal/store"
	"github.com/phrazzld/schemadoc/internal/task"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 15 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and process queued documentation jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFile(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.close()

			jwtService, err := auth.NewJWTService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("auth.jwt_secret is required to serve: %w", err)
			}

			tasks, err := postgres.NewTaskStore(app.db, log)
			if err != nil {
				return fmt.Errorf("failed to create task store: %w", err)
			}

			srv, err := newServer(serverDeps{
				config:     cfg,
				logger:     log,
				documenter: app.documenter,
				progress:   app.tracker,
				summaries:  app.summaries,
				tasks:      tasks,
				jwtService: jwtService,
			})
			if err != nil {
				return err
			}
			return srv.run(cmd.Context())
		},
	}
}

type serverDeps struct {
	config     *config.Config
	logger     *slog.Logger
	documenter documenter.Documenter
	progress   api.ProgressReader
	summaries  store.SummaryStore
	jwtService auth.JWTService

	// tasks records task status; nil keeps records in memory.
	tasks task.TaskStore
}

// server couples the HTTP server with the worker pool that drains its queue.
type server struct {
	http            *http.Server
	queue           *task.TaskQueue
	pool            *task.WorkerPool
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func newServer(deps serverDeps) (*server, error) {
	cfg := deps.config
	log := deps.logger

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	queue := task.NewTaskQueue(cfg.Documenter.QueueSize, log)
	var tasks task.TaskStore = task.NewMemoryTaskStore()
	if deps.tasks != nil {
		tasks = deps.tasks
	}
	pool := task.NewWorkerPool(queue, tasks, task.WorkerPoolConfig{
		WorkerCount: cfg.Documenter.WorkerCount,
		TaskTimeout: cfg.Documenter.TaskTimeout,
	}, log)
	pool.SetErrorHandler(logTaskPanic(log))

	factory, err := task.NewDocumentationTaskFactory(deps.documenter, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	docHandler, err := api.NewDocumentationHandler(api.DocumentationDeps{
		Factory:   factory,
		Queue:     queue,
		Tasks:     tasks,
		Progress:  deps.progress,
		Summaries: deps.summaries,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create documentation handler: %w", err)
	}

	taskHandler, err := api.NewTaskHandler(tasks, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task handler: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:        log,
		JWTService:    deps.jwtService,
		Documentation: docHandler,
		Tasks:         taskHandler,
	})

	return &server{
		http: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		queue:           queue,
		pool:            pool,
		logger:          log,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// logTaskPanic returns a worker pool error handler that logs the stack of
// tasks that panicked. Ordinary failures are already logged by the pool.
func logTaskPanic(log *slog.Logger) func(task.Task, error) {
	return func(t task.Task, err error) {
		var panicErr *task.PanicError
		if !errors.As(err, &panicErr) {
			return
		}
		log.Error("task panicked",
			"task_id", t.ID().String(),
			"task_type", t.Type(),
			"panic", fmt.Sprint(panicErr.Value),
			"stack", string(panicErr.Stack))
	}
}

// run serves until ctx is cancelled or the listener fails, then shuts the
// HTTP server down, closes the queue and stops the workers.
func (s *server) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.pool.Run(gctx)
	})

	g.Go(func() error {
		s.logger.Info("starting server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), s.shutdownTimeout)
		defer cancel()

		s.queue.Close()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.logger.Info("server shutdown completed")
		return nil
	})

	return g.Wait()
}
