package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"mltrack/internal/adapters/primary/http/handlers"
	"mltrack/internal/adapters/primary/http/middleware"
	"mltrack/internal/adapters/secondary/artifact"
	"mltrack/internal/adapters/secondary/postgres"
	"mltrack/internal/config"
	ports "mltrack/internal/core/ports/output"
	"mltrack/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// Secondary adapters
	expRepo := postgres.NewExperimentRepository(pool)
	runRepo := postgres.NewRunRepository(pool)
	modelRepo := postgres.NewRegisteredModelRepository(pool)
	versionRepo := postgres.NewModelVersionRepository(pool)

	var store ports.ArtifactStore
	switch cfg.Artifact.Backend {
	case "s3":
		store, err = artifact.NewMinioStore(&cfg.Artifact)
		if err != nil {
			log.Fatalf("init s3 artifact store: %v", err)
		}
		log.WithField("bucket", cfg.Artifact.Bucket).Info("artifact store: s3")
	default:
		store, err = artifact.NewLocalStore(cfg.Artifact.Dir)
		if err != nil {
			log.Fatalf("init local artifact store: %v", err)
		}
		log.WithField("dir", cfg.Artifact.Dir).Info("artifact store: local")
	}

	// Core services
	expSvc := services.NewExperimentService(expRepo)
	runSvc := services.NewRunService(runRepo, expRepo, store)
	registrySvc := services.NewRegistryService(modelRepo, versionRepo, runRepo)
	predictorSvc := services.NewPredictorService(registrySvc, store)

	// Primary adapter
	h := handlers.New(expSvc, runSvc, registrySvc, predictorSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
