package main

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/internal/handlers"
	"github.com/mastrovia/devxtra-team/internal/models"
	"github.com/mastrovia/devxtra-team/internal/services"
	"github.com/mastrovia/devxtra-team/internal/supabase"
	"github.com/mastrovia/devxtra-team/internal/utils"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	db          *gorm.DB
	cache       services.Cache
	taskQueue   services.TaskQueue
	worker      *services.Worker
	activityLog *services.ActivityLogService

	publicHandler      *handlers.PublicHandler
	teamHandler        *handlers.TeamHandler
	studentHandler     *handlers.StudentHandler
	projectHandler     *handlers.ProjectHandler
	dashboardHandler   *handlers.DashboardHandler
	adminUserHandler   *handlers.AdminUserHandler
	uploadHandler      *handlers.UploadHandler
	contactHandler     *handlers.ContactHandler
	activityLogHandler *handlers.ActivityLogHandler
	authHandler        *handlers.AuthHandler
	healthHandler      *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, BaaS
// clients, services, task queue and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.Supabase.JWTSecret)

	if err := services.RegisterValidators(); err != nil {
		logger.Fatalf("Failed to register validators: %v", err)
	}

	db, err := models.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Typed nils would satisfy the interfaces, so only assign real clients.
	var (
		sessionAuth services.SessionAuth
		authAdmin   services.AuthAdmin
		objectStore services.ObjectStore
	)
	clients, err := supabase.New(&cfg.Supabase)
	switch {
	case errors.Is(err, supabase.ErrNotConfigured):
		logger.Warn().Msg("Supabase is not configured: sign in and uploads are disabled")
	case err != nil:
		logger.Fatalf("Failed to init supabase: %v", err)
	default:
		sessionAuth = clients.Auth
		objectStore = clients.Storage
		if clients.Admin != nil {
			authAdmin = clients.Admin
		}
	}
	if !cfg.HasServiceRole() {
		logger.Warn().Msg("No service role key: admin user management is disabled")
	}

	cache := services.NewCache(cfg)
	revalidator := services.NewRevalidator(cache)

	router := services.NewTaskRouter()
	taskQueue := services.NewTaskQueue(cfg, router)

	uploadService := services.NewUploadService(objectStore, &cfg.Storage)
	emailService := services.NewEmailService(&cfg.Email)
	contactService := services.NewContactService(db, taskQueue, emailService)
	router.Handle(services.TaskTypeStorageCleanup, uploadService.HandleCleanupTask)
	router.Handle(services.TaskTypeContactNotify, contactService.HandleNotifyTask)

	worker := services.NewWorker(&cfg.Redis, taskQueue, router)
	if worker != nil {
		worker.Start()
	}

	activityLog := services.NewActivityLogService(db)
	if err := activityLog.StartCleanupScheduler(cfg.ActivityLog.CleanupCron, cfg.ActivityLog.RetentionDays); err != nil {
		logger.Warn().Err(err).Msg("Failed to start activity log cleanup")
	}

	teamService := services.NewTeamService(db, taskQueue, revalidator, cfg.Storage.AvatarBucket)
	studentService := services.NewStudentService(db, revalidator)
	projectService := services.NewProjectService(db, taskQueue, revalidator, cfg.Storage.ProjectImageBucket)

	return &appServices{
		db:          db,
		cache:       cache,
		taskQueue:   taskQueue,
		worker:      worker,
		activityLog: activityLog,

		publicHandler:      handlers.NewPublicHandler(services.NewPublicService(db)),
		teamHandler:        handlers.NewTeamHandler(teamService),
		studentHandler:     handlers.NewStudentHandler(studentService),
		projectHandler:     handlers.NewProjectHandler(projectService),
		dashboardHandler:   handlers.NewDashboardHandler(services.NewDashboardService(db)),
		adminUserHandler:   handlers.NewAdminUserHandler(services.NewAdminUserService(authAdmin)),
		uploadHandler:      handlers.NewUploadHandler(uploadService),
		contactHandler:     handlers.NewContactHandler(contactService),
		activityLogHandler: handlers.NewActivityLogHandler(activityLog),
		authHandler:        handlers.NewAuthHandler(services.NewAuthService(sessionAuth), cfg.Server.Mode == "release", cfg.Server.CORSOrigins),
		healthHandler:      handlers.NewHealthHandler(db, taskQueue, cache, objectStore != nil, authAdmin != nil),
	}
}

func cacheTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Cache.TTLSeconds) * time.Second
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.activityLog.Stop()
	logger.Info().Msg("All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
