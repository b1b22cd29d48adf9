// @title Retail Ops API
// @version 1.0
// @description Retail chain operations: stores, staff, tasks, inspections and activity scheduling.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/chainworks/retail-ops-api/api/swagger"
	"github.com/chainworks/retail-ops-api/internal/handler"
	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/repository"
	"github.com/chainworks/retail-ops-api/internal/service"
	"github.com/chainworks/retail-ops-api/pkg/cache"
	"github.com/chainworks/retail-ops-api/pkg/config"
	"github.com/chainworks/retail-ops-api/pkg/database"
	"github.com/chainworks/retail-ops-api/pkg/jobs"
	"github.com/chainworks/retail-ops-api/pkg/logger"
	"github.com/chainworks/retail-ops-api/pkg/middleware/cors"
	"github.com/chainworks/retail-ops-api/pkg/middleware/requestid"
	"github.com/chainworks/retail-ops-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal("connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	reportStorage, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		log.Fatal("init report storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	// repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	staffStatusRepo := repository.NewStaffStatusRepository(db)
	inspectionRepo := repository.NewInspectionRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// services
	metrics := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, cfg.JWT, log)
	storeService := service.NewStoreService(storeRepo, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)
	taskService := service.NewTaskService(taskRepo, log)
	staffStatusService := service.NewStaffStatusService(staffStatusRepo, employeeRepo, log)
	inspectionService := service.NewInspectionService(inspectionRepo, log)
	campaignService := service.NewCampaignService(campaignRepo, log)
	scheduleService := service.NewScheduleService(campaignRepo, storeRepo, metrics, cfg.Scheduler, log)
	reportService := service.NewReportService(
		inspectionRepo,
		campaignRepo,
		reportStorage,
		signer,
		jobs.QueueConfig{
			Workers:    cfg.Reports.WorkerConcurrency,
			MaxRetries: cfg.Reports.WorkerRetries,
		},
		cfg.Reports.SignedURLTTL,
		log,
	)
	dashboardService := service.NewDashboardService(
		cacheRepo, storeRepo, employeeRepo, taskRepo, staffStatusRepo,
		metrics, cfg.Dashboard.CacheTTL, log,
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reportService.Start(rootCtx)
	defer reportService.Stop()
	reportService.CleanupExpired()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(log))
	router.Use(cors.New(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Metrics(metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Stores:      handler.NewStoreHandler(storeService),
		Employees:   handler.NewEmployeeHandler(employeeService),
		Tasks:       handler.NewTaskHandler(taskService),
		StaffStatus: handler.NewStaffStatusHandler(staffStatusService),
		Inspections: handler.NewInspectionHandler(inspectionService, reportService),
		Campaigns:   handler.NewCampaignHandler(campaignService),
		Schedule:    handler.NewScheduleHandler(scheduleService, reportService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Reports:     handler.NewReportHandler(reportService),
	}
	handler.RegisterRoutes(router, cfg.APIPrefix, handlers, authService, userRepo, cfg.Dashboard.Enabled, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
