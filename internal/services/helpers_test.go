package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mastrovia/devxtra-team/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys = ON")
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func createMember(t *testing.T, db *gorm.DB, name, status string) *models.TeamMember {
	t.Helper()
	m := &models.TeamMember{Name: name, Email: name + "@devxtra.dev", Role: models.RoleDeveloper, Status: status}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}
	return m
}

func createProject(t *testing.T, db *gorm.DB, p *models.Project) *models.Project {
	t.Helper()
	if p.Status == "" {
		p.Status = models.ProjectCompleted
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func assign(t *testing.T, db *gorm.DB, projectID, memberID string) {
	t.Helper()
	if err := db.Create(&models.ProjectMember{ProjectID: projectID, MemberID: memberID}).Error; err != nil {
		t.Fatalf("assign: %v", err)
	}
}

type enqueuedTask struct {
	Type    string
	Payload []byte
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []enqueuedTask
}

func (q *fakeQueue) Enqueue(taskType string, payload interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, enqueuedTask{Type: taskType, Payload: b})
	q.mu.Unlock()
	return nil
}

func (q *fakeQueue) IsAsync() bool { return false }
func (q *fakeQueue) Close() error  { return nil }

func (q *fakeQueue) cleanupURLs(t *testing.T) []string {
	t.Helper()
	var urls []string
	for _, task := range q.tasks {
		if task.Type != TaskTypeStorageCleanup {
			continue
		}
		var p StorageCleanupTask
		if err := json.Unmarshal(task.Payload, &p); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		urls = append(urls, p.URLs...)
	}
	return urls
}

type storedObject struct {
	Bucket, Path, ContentType string
	Data                      []byte
}

type fakeStore struct {
	uploads []storedObject
	removed map[string][]string
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{removed: make(map[string][]string)}
}

func (s *fakeStore) Upload(bucket, path string, body io.Reader, contentType string) error {
	if s.err != nil {
		return s.err
	}
	data, _ := io.ReadAll(body)
	s.uploads = append(s.uploads, storedObject{Bucket: bucket, Path: path, ContentType: contentType, Data: data})
	return nil
}

func (s *fakeStore) PublicURL(bucket, path string) string {
	return "https://proj.supabase.co/storage/v1/object/public/" + bucket + "/" + path
}

func (s *fakeStore) Remove(bucket string, paths []string) error {
	if s.err != nil {
		return s.err
	}
	s.removed[bucket] = append(s.removed[bucket], paths...)
	return nil
}

type fakeAuthAdmin struct {
	invited []string
	created map[string]string
	users   []types.User
	deleted []uuid.UUID
	bans    map[uuid.UUID]time.Duration
	err     error
}

func newFakeAuthAdmin() *fakeAuthAdmin {
	return &fakeAuthAdmin{created: make(map[string]string), bans: make(map[uuid.UUID]time.Duration)}
}

func (a *fakeAuthAdmin) InviteUser(email string) error {
	if a.err != nil {
		return a.err
	}
	a.invited = append(a.invited, email)
	return nil
}

func (a *fakeAuthAdmin) CreateUser(email, password string) (*types.User, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.created[email] = password
	return &types.User{ID: uuid.New(), Email: email}, nil
}

func (a *fakeAuthAdmin) ListUsers() ([]types.User, error) {
	return a.users, a.err
}

func (a *fakeAuthAdmin) DeleteUser(id uuid.UUID) error {
	a.deleted = append(a.deleted, id)
	return a.err
}

func (a *fakeAuthAdmin) SetBan(id uuid.UUID, d time.Duration) error {
	a.bans[id] = d
	return a.err
}

type fakeSessionAuth struct {
	password string
	signOuts []string
}

func (f *fakeSessionAuth) session() *types.Session {
	s := &types.Session{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600}
	s.User.ID = uuid.MustParse("11111111-2222-3333-4444-555555555555")
	s.User.Email = "admin@devxtra.dev"
	return s
}

func (f *fakeSessionAuth) SignIn(email, password string) (*types.Session, error) {
	if password != f.password {
		return nil, errors.New("invalid login credentials")
	}
	return f.session(), nil
}

func (f *fakeSessionAuth) Refresh(refreshToken string) (*types.Session, error) {
	if refreshToken != "refresh" {
		return nil, errors.New("invalid refresh token")
	}
	return f.session(), nil
}

func (f *fakeSessionAuth) ExchangeCode(code, verifier string) (*types.Session, error) {
	if code != "good-code" {
		return nil, errors.New("invalid flow state")
	}
	return f.session(), nil
}

func (f *fakeSessionAuth) SignOut(accessToken string) error {
	f.signOuts = append(f.signOuts, accessToken)
	return nil
}

func uploadFile(name, contentType string, size int) *UploadFile {
	return &UploadFile{Name: name, ContentType: contentType, Size: int64(size), Body: bytes.NewReader(make([]byte, size))}
}

var bg = context.Background()
