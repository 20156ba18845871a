package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/internal/middleware"
	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/internal/utils"
)

const (
	adminID    = "11111111-2222-3333-4444-555555555555"
	adminEmail = "admin@devxtra.dev"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-handler-testing")
	if err := services.RegisterValidators(); err != nil {
		panic(err)
	}
}

type fakeStore struct {
	uploads []string
	removed []string
}

func (s *fakeStore) Upload(bucket, path string, body io.Reader, contentType string) error {
	s.uploads = append(s.uploads, bucket+"/"+path)
	return nil
}

func (s *fakeStore) PublicURL(bucket, path string) string {
	return "https://proj.supabase.co/storage/v1/object/public/" + bucket + "/" + path
}

func (s *fakeStore) Remove(bucket string, paths []string) error {
	s.removed = append(s.removed, paths...)
	return nil
}

type fakeSessionAuth struct{}

func (fakeSessionAuth) session() *types.Session {
	s := &types.Session{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600}
	s.User.ID = uuid.MustParse(adminID)
	s.User.Email = adminEmail
	return s
}

func (f fakeSessionAuth) SignIn(email, password string) (*types.Session, error) {
	if password != "secret" {
		return nil, errors.New("invalid login credentials")
	}
	return f.session(), nil
}

func (f fakeSessionAuth) Refresh(refreshToken string) (*types.Session, error) {
	if refreshToken != "refresh" {
		return nil, errors.New("invalid refresh token")
	}
	return f.session(), nil
}

func (f fakeSessionAuth) ExchangeCode(code, verifier string) (*types.Session, error) {
	if code != "good-code" || verifier != "verifier" {
		return nil, errors.New("invalid flow state")
	}
	return f.session(), nil
}

func (fakeSessionAuth) SignOut(accessToken string) error { return nil }

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	store  *fakeStore
	cache  *services.MemoryCache
	token  string
}

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

// newTestEnv wires the handlers the way the server does, with fakes for
// the BaaS clients and no admin client.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	store := &fakeStore{}
	cache := services.NewMemoryCache()
	revalidator := services.NewRevalidator(cache)

	storageCfg := &config.StorageConfig{AvatarBucket: "avatars", ProjectImageBucket: "project-images", MaxUploadBytes: 5 * 1024 * 1024}
	taskRouter := services.NewTaskRouter()
	queue := services.NewSyncQueue(taskRouter)
	uploadService := services.NewUploadService(store, storageCfg)
	contactService := services.NewContactService(db, queue, nil)
	taskRouter.Handle(services.TaskTypeStorageCleanup, uploadService.HandleCleanupTask)
	taskRouter.Handle(services.TaskTypeContactNotify, contactService.HandleNotifyTask)
	activityLog := services.NewActivityLogService(db)

	publicHandler := NewPublicHandler(services.NewPublicService(db))
	teamHandler := NewTeamHandler(services.NewTeamService(db, queue, revalidator, "avatars"))
	studentHandler := NewStudentHandler(services.NewStudentService(db, revalidator))
	projectHandler := NewProjectHandler(services.NewProjectService(db, queue, revalidator, "project-images"))
	dashboardHandler := NewDashboardHandler(services.NewDashboardService(db))
	adminUserHandler := NewAdminUserHandler(services.NewAdminUserService(nil))
	uploadHandler := NewUploadHandler(uploadService)
	contactHandler := NewContactHandler(contactService)
	activityLogHandler := NewActivityLogHandler(activityLog)
	authHandler := NewAuthHandler(services.NewAuthService(fakeSessionAuth{}), false, []string{"https://devxtra.dev"})
	healthHandler := NewHealthHandler(db, queue, cache, true, false)

	r := gin.New()
	r.GET("/health", healthHandler.CheckHealth)
	r.GET("/auth/callback", authHandler.Callback)

	api := r.Group("/api")
	public := api.Group("", middleware.PublicCache(cache, time.Minute))
	public.GET("/landing", publicHandler.Landing)
	public.GET("/team", publicHandler.Team)
	public.GET("/team/:id", publicHandler.Member)
	public.GET("/works", publicHandler.Works)
	public.GET("/works/:id", publicHandler.Work)
	api.POST("/contact", contactHandler.Submit)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", middleware.AuthRequired(), authHandler.GetCurrentUser)

	admin := api.Group("/admin", middleware.AuthRequired(), middleware.AuditLog(activityLog))
	admin.GET("/dashboard", dashboardHandler.GetStats)
	admin.GET("/team", teamHandler.List)
	admin.GET("/team/:id", teamHandler.GetByID)
	admin.POST("/team", teamHandler.Create)
	admin.PUT("/team/:id", teamHandler.Update)
	admin.DELETE("/team/:id", teamHandler.Delete)
	admin.GET("/students", studentHandler.List)
	admin.POST("/students", studentHandler.Create)
	admin.PUT("/students/:id", studentHandler.Update)
	admin.DELETE("/students/:id", studentHandler.Delete)
	admin.GET("/projects", projectHandler.List)
	admin.GET("/projects/:id", projectHandler.GetByID)
	admin.POST("/projects", projectHandler.Create)
	admin.PUT("/projects/:id", projectHandler.Update)
	admin.DELETE("/projects/:id", projectHandler.Delete)
	admin.GET("/admins", adminUserHandler.List)
	admin.POST("/admins", adminUserHandler.Invite)
	admin.DELETE("/admins/:id", adminUserHandler.Delete)
	admin.PUT("/admins/:id/ban", adminUserHandler.ToggleBan)
	admin.POST("/uploads/avatar", uploadHandler.UploadAvatar)
	admin.POST("/uploads/project-image", uploadHandler.UploadProjectImage)
	admin.DELETE("/uploads/avatar", uploadHandler.DeleteAvatar)
	admin.DELETE("/uploads/project-image", uploadHandler.DeleteProjectImage)
	admin.GET("/contact-messages", contactHandler.List)
	admin.PUT("/contact-messages/:id/read", contactHandler.MarkRead)
	admin.DELETE("/contact-messages/:id", contactHandler.Delete)
	admin.GET("/activity-logs", activityLogHandler.List)
	admin.GET("/activity-logs/modules", activityLogHandler.GetModules)

	token, err := utils.GenerateToken(adminID, adminEmail, "authenticated", 1)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &testEnv{db: db, router: r, store: store, cache: cache, token: token}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string, auth bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do("GET", path, nil, "", false)
}

func (e *testEnv) adminGet(path string) *httptest.ResponseRecorder {
	return e.do("GET", path, nil, "", true)
}

func (e *testEnv) adminForm(method, path string, form url.Values) *httptest.ResponseRecorder {
	return e.do(method, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", true)
}

func (e *testEnv) adminJSON(method, path string, v interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(v)
	return e.do(method, path, bytes.NewReader(b), "application/json", true)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("invalid data %s: %v", env.Data, err)
		}
	}
	return env
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, expected %d; body: %s", w.Code, want, w.Body.String())
	}
}
