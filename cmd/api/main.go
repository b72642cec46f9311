package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/asistapp/asistencia-api/api/swagger"
	"github.com/asistapp/asistencia-api/internal/handler"
	"github.com/asistapp/asistencia-api/internal/repository"
	"github.com/asistapp/asistencia-api/internal/service"
	"github.com/asistapp/asistencia-api/pkg/cache"
	"github.com/asistapp/asistencia-api/pkg/config"
	"github.com/asistapp/asistencia-api/pkg/database"
	"github.com/asistapp/asistencia-api/pkg/logger"
)

// @title Asistencia API
// @version 1.0.0
// @description Registro de asistencia por escaneo de codigos QR
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	subjectRepo := repository.NewSubjectRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	attendanceSvc := service.NewAttendanceService(attendanceRepo, sessionRepo, cacheSvc, validate, logr)

	svcs := handler.Services{
		Subjects:   service.NewSubjectService(subjectRepo, cacheSvc, validate, logr),
		Sessions:   service.NewSessionService(sessionRepo, validate, logr),
		Attendance: attendanceSvc,
		Accounts:   service.NewAccountService(accountRepo, validate, logr),
		Exports:    service.NewExportService(attendanceSvc, logr),
		Metrics:    metrics,
	}

	r := handler.NewRouter(cfg, logr, svcs)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
