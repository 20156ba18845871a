package services

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// Worker processes async tasks from the queue
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	router  *TaskRouter
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// NewWorker returns nil unless queue is backed by Redis. A sync queue runs
// tasks inline, including the fallback used when Redis is unreachable.
func NewWorker(cfg *config.RedisConfig, queue TaskQueue, router *TaskRouter) *Worker {
	if !cfg.Enabled || queue == nil || !queue.IsAsync() {
		return nil
	}

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warnf("[Worker] Error processing task %s: %v", task.Type(), err)
			}),
		},
	)

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		router: router,
	}
}

// Start begins processing tasks
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	for _, taskType := range w.router.types() {
		taskType := taskType
		w.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
			logger.Debug().Str("task", taskType).Msg("[Worker] processing")
			return w.router.Process(ctx, taskType, t.Payload())
		})
	}

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("[Worker] Starting async worker...")
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("[Worker] Server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Infof("[Worker] Shutting down...")
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
	logger.Infof("[Worker] Shutdown complete")
}
