package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mastrovia/devxtra-team/internal/config"
)

func TestTaskRouter_Process(t *testing.T) {
	r := NewTaskRouter()
	var got []byte
	r.Handle("demo", func(ctx context.Context, payload []byte) error {
		got = payload
		return nil
	})

	if err := r.Process(bg, "demo", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("payload = %s", got)
	}
	if err := r.Process(bg, "missing", nil); err == nil {
		t.Error("expected error for unknown task type")
	}
}

func TestSyncQueue_RunsInline(t *testing.T) {
	r := NewTaskRouter()
	var bucket string
	r.Handle(TaskTypeStorageCleanup, func(ctx context.Context, payload []byte) error {
		bucket = string(payload)
		return nil
	})
	q := NewSyncQueue(r)

	if q.IsAsync() {
		t.Error("sync queue should not report async")
	}
	if err := q.Enqueue(TaskTypeStorageCleanup, StorageCleanupTask{Bucket: "avatars"}); err != nil {
		t.Fatalf("Enqueue() error: %v", err)
	}
	if bucket != `{"bucket":"avatars","urls":null}` {
		t.Errorf("handler saw %s", bucket)
	}
}

func TestSyncQueue_HandlerErrorIsSwallowed(t *testing.T) {
	r := NewTaskRouter()
	r.Handle("fail", func(ctx context.Context, payload []byte) error {
		return errors.New("boom")
	})
	q := NewSyncQueue(r)

	if err := q.Enqueue("fail", struct{}{}); err != nil {
		t.Errorf("task failures should not reach the caller, got %v", err)
	}
	if err := q.Enqueue("unknown", struct{}{}); err != nil {
		t.Errorf("unknown task should not fail the caller, got %v", err)
	}
}

func TestSyncQueue_NoRouter(t *testing.T) {
	if err := NewSyncQueue(nil).Enqueue("x", 1); err != nil {
		t.Errorf("Enqueue() error: %v", err)
	}
}

func TestNewTaskQueue_RedisDisabled(t *testing.T) {
	cfg := &config.Config{}
	q := NewTaskQueue(cfg, NewTaskRouter())
	if _, ok := q.(*SyncQueue); !ok {
		t.Errorf("expected *SyncQueue, got %T", q)
	}
	if w := NewWorker(&cfg.Redis, q, NewTaskRouter()); w != nil {
		t.Error("worker should be nil without Redis")
	}
}

func TestNewWorker_SyncFallback(t *testing.T) {
	cfg := &config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}
	router := NewTaskRouter()
	if w := NewWorker(cfg, NewSyncQueue(router), router); w != nil {
		t.Error("worker should not start when the queue fell back to sync mode")
	}
}
