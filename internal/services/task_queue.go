package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

const (
	TaskTypeStorageCleanup = "storage:cleanup"
	TaskTypeContactNotify  = "contact:notify"
)

// StorageCleanupTask removes objects that are no longer referenced.
type StorageCleanupTask struct {
	Bucket string   `json:"bucket"`
	URLs   []string `json:"urls"`
}

// ContactNotifyTask emails the team about a new contact message.
type ContactNotifyTask struct {
	MessageID string `json:"message_id"`
}

// TaskHandler processes one task payload.
type TaskHandler func(ctx context.Context, payload []byte) error

// TaskRouter dispatches tasks by type. It backs both the sync queue and
// the asynq worker.
type TaskRouter struct {
	mu       sync.RWMutex
	handlers map[string]TaskHandler
}

func NewTaskRouter() *TaskRouter {
	return &TaskRouter{handlers: make(map[string]TaskHandler)}
}

func (r *TaskRouter) Handle(taskType string, h TaskHandler) {
	r.mu.Lock()
	r.handlers[taskType] = h
	r.mu.Unlock()
}

// Process runs the handler registered for taskType.
func (r *TaskRouter) Process(ctx context.Context, taskType string, payload []byte) error {
	r.mu.RLock()
	h, ok := r.handlers[taskType]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no handler for task type %q", taskType)
	}
	return h(ctx, payload)
}

func (r *TaskRouter) types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	return out
}

// TaskQueue defines the interface for background task processing
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(taskType string, payload interface{}) error
	// IsAsync returns true if queue processes tasks asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// NewTaskQueue returns an asynq queue when Redis is enabled and reachable,
// and a sync queue bound to router otherwise.
func NewTaskQueue(cfg *config.Config, router *TaskRouter) TaskQueue {
	if cfg.Redis.Enabled {
		queue, err := NewAsyncQueue(&cfg.Redis)
		if err != nil {
			logger.Infof("[TaskQueue] Redis unavailable, falling back to sync mode: %v", err)
			return NewSyncQueue(router)
		}
		logger.Infof("[TaskQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
		return queue
	}
	logger.Infof("[TaskQueue] Sync queue initialized (Redis disabled)")
	return NewSyncQueue(router)
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// AsyncQueue implements TaskQueue using asynq (Redis-based)
type AsyncQueue struct {
	client *asynq.Client
}

// NewAsyncQueue creates a new Redis-based async queue
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	opt := redisOpt(cfg)
	client := asynq.NewClient(opt)

	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(taskType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	info, err := q.client.Enqueue(asynq.NewTask(taskType, data),
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("[AsyncQueue] Task enqueued: id=%s, type=%s", info.ID, taskType)
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements TaskQueue by running the task inline (no Redis).
// Failures are logged, never returned to the caller.
type SyncQueue struct {
	router *TaskRouter
}

func NewSyncQueue(router *TaskRouter) *SyncQueue {
	return &SyncQueue{router: router}
}

func (q *SyncQueue) Enqueue(taskType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if q.router == nil {
		logger.Infof("[SyncQueue] Warning: no router set, task %s dropped", taskType)
		return nil
	}
	if err := q.router.Process(context.Background(), taskType, data); err != nil {
		logger.Warn().Err(err).Str("task", taskType).Msg("[SyncQueue] task failed")
	}
	return nil
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

func (q *SyncQueue) Close() error {
	return nil
}

// enqueue logs instead of failing the caller: tasks are follow-up work.
func enqueue(q TaskQueue, taskType string, payload interface{}) {
	if q == nil {
		return
	}
	if err := q.Enqueue(taskType, payload); err != nil {
		logger.Error().Err(err).Str("task", taskType).Msg("failed to enqueue task")
	}
}
