package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/api"
	"digimun_backend/internal/middleware"
	"digimun_backend/internal/models"
	"digimun_backend/internal/repository"
	"digimun_backend/internal/service"
	"digimun_backend/internal/storage"
	"digimun_backend/pkg/config"
	"digimun_backend/pkg/logger"
)

func main() {
	// 本機開發時可用 .env 提供 DATABASE_URL 等變數
	if err := config.LoadEnvFile(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	// 載入應用程式配置
	// 從 pkg/config/config.yaml 與環境變數讀取數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	// 初始化資料庫連接
	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Error("failed to initialize database", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 會議、代表、聊天、紙條四張表
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Error("failed to auto migrate database", "error", err)
		os.Exit(1)
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, service.Options{
		DefaultConfig: models.SessionConfig{
			"gslTime": cfg.Session.GSLTime,
			"modTime": cfg.Session.ModTime,
		},
		AllowUnlistedChoices: cfg.Vote.AllowUnlistedChoices,
		Logger:               log,
	})

	// 設置 Gin 路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)
	api.SetupRoutes(r, services)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	// 啟動伺服器
	log.Info("listening", "address", cfg.Server.Address, "db_driver", cfg.DB.Driver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to run server", "error", err)
		os.Exit(1)
	}
	log.Info("server closed")
}
