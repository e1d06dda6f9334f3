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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-invoice-admin/internal/core/cache"
	"go-invoice-admin/internal/core/config"
	"go-invoice-admin/internal/core/database"
	"go-invoice-admin/internal/core/logger"
	"go-invoice-admin/internal/core/server"
	"go-invoice-admin/internal/domain"
	"go-invoice-admin/internal/repo"
	"go-invoice-admin/internal/service"
	"go-invoice-admin/internal/transport/http/router"
	"go-invoice-admin/internal/upload"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.Customer{}, &domain.Invoice{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 列表缓存
	rdb := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// 头像落盘目录
	images, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.Prefix)
	if err != nil {
		log.Fatal("upload dir", zap.Error(err))
	}

	// 依赖装配
	invoiceSvc := service.NewInvoiceService(repo.NewInvoiceRepo(db), rdb, log)
	customerSvc := service.NewCustomerService(repo.NewCustomerRepo(db), images, rdb, log)

	r := router.NewEngine(log, router.Deps{
		Invoices:  invoiceSvc,
		Customers: customerSvc,
		Cache:     rdb,
		ListTTL:   time.Duration(cfg.Redis.ListTTLSec) * time.Second,
		UploadDir: cfg.Upload.Dir,
		Prefix:    cfg.Upload.Prefix,
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("dashboard api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("invoices", baseURL+service.InvoicesPath),
		zap.String("customers", baseURL+service.CustomersPath),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("dashboard api start FAILED", zap.Error(err))
		}
	}()
	log.Info("dashboard api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("dashboard api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
