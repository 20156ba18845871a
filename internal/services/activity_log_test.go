package services

import (
	"testing"
	"time"

	"github.com/mastrovia/devxtra-team/internal/models"
)

func TestActivityLogService_RecordAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityLogService(db)

	svc.Record(bg, ActivityEntry{Module: "team", Action: "POST /api/admin/team", Message: "created Ada", ActorID: "u1", Extra: map[string]string{"name": "Ada"}})
	svc.Record(bg, ActivityEntry{Level: "warning", Module: "projects", Action: "DELETE /api/admin/projects/:id", Message: "deleted project", ActorID: "u2"})
	svc.Record(bg, ActivityEntry{Module: "team", Action: "DELETE /api/admin/team/:id", Message: "deleted Bob", ActorID: "u1"})

	tests := []struct {
		name string
		req  ActivityLogListRequest
		want int64
	}{
		{"all", ActivityLogListRequest{}, 3},
		{"module", ActivityLogListRequest{Module: "team"}, 2},
		{"level", ActivityLogListRequest{Level: "warning"}, 1},
		{"action", ActivityLogListRequest{Action: "DELETE"}, 2},
		{"actor", ActivityLogListRequest{ActorID: "u1"}, 2},
		{"search", ActivityLogListRequest{Search: "Ada"}, 1},
		{"start date in future", ActivityLogListRequest{StartDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02")}, 0},
		{"end date today", ActivityLogListRequest{EndDate: time.Now().Format("2006-01-02")}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := svc.List(bg, &req)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if resp.Total != tt.want {
				t.Errorf("total = %d, expected %d", resp.Total, tt.want)
			}
		})
	}

	var entry models.ActivityLog
	db.Where("message = ?", "created Ada").First(&entry)
	if entry.Level != "info" {
		t.Errorf("default level = %q, expected info", entry.Level)
	}
	if entry.Extra != `{"name":"Ada"}` {
		t.Errorf("extra = %q", entry.Extra)
	}
}

func TestActivityLogService_GetModules(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityLogService(db)

	for _, m := range []string{"team", "projects", "team", "auth"} {
		svc.Record(bg, ActivityEntry{Module: m, Action: "x"})
	}

	modules, err := svc.GetModules(bg)
	if err != nil {
		t.Fatalf("GetModules() error: %v", err)
	}
	want := []string{"auth", "projects", "team"}
	if len(modules) != len(want) {
		t.Fatalf("modules = %v, expected %v", modules, want)
	}
	for i := range want {
		if modules[i] != want[i] {
			t.Errorf("modules[%d] = %q, expected %q", i, modules[i], want[i])
		}
	}
}

func TestActivityLogService_CleanupOldLogs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityLogService(db)

	db.Create(&models.ActivityLog{Module: "team", Action: "old", CreatedAt: time.Now().AddDate(0, 0, -100)})
	db.Create(&models.ActivityLog{Module: "team", Action: "new"})

	deleted, err := svc.CleanupOldLogs(bg, 30)
	if err != nil {
		t.Fatalf("CleanupOldLogs() error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, expected 1", deleted)
	}

	if n, _ := svc.CleanupOldLogs(bg, 0); n != 0 {
		t.Error("retention 0 should disable cleanup")
	}
}

func TestActivityLogService_StartCleanupScheduler(t *testing.T) {
	svc := NewActivityLogService(setupTestDB(t))

	if err := svc.StartCleanupScheduler("not a cron spec", 30); err == nil {
		t.Error("expected error for bad cron spec")
	}
	if err := svc.StartCleanupScheduler("0 3 * * *", 30); err != nil {
		t.Fatalf("StartCleanupScheduler() error: %v", err)
	}
	svc.Stop()
}
