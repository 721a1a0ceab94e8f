package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/configs"
	database "github.com/x1nx3r/iniwebkelurahan-admin/internals/databases"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
	middlewares "github.com/x1nx3r/iniwebkelurahan-admin/internals/middlewares"
	routes "github.com/x1nx3r/iniwebkelurahan-admin/internals/route"
)

func main() {
	cfg := configs.LoadEnv()

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	fcfg := fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		// multipart upload 5MB + overhead form
		BodyLimit: int(cdn.MaxFileSize) + 1024*1024,
	}
	// c.IP() hanya membaca X-Forwarded-For dari proxy yang terdaftar
	if cfg.BehindProxy() {
		fcfg.ProxyHeader = fiber.HeaderXForwardedFor
		fcfg.EnableTrustedProxyCheck = true
		fcfg.TrustedProxies = cfg.TrustedProxies
	}
	app := fiber.New(fcfg)

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	middlewares.SetupMiddlewares(app, cfg, logger)

	// 🔌 store connect + warm-up
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.OpenStore(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("store connection failed", zap.Error(err))
	}
	database.WarmUp(store, logger)

	uploader := cdn.New(cdn.Config{
		UploadURL: cfg.CDNUploadURL,
		Token:     cfg.CDNToken,
		MaxWidth:  cfg.ImageMaxWidth,
	}, logger)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		Store:     store,
		Log:       logger,
		Uploader:  uploader,
		Env:       cfg.AppEnv,
		RateLimit: true,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		logger.Info(fmt.Sprintf("✅ Listening on :%s", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = app.ShutdownWithContext(shutdownCtx)

	if err := store.Close(); err != nil {
		logger.Warn("store close", zap.Error(err))
	}
	logger.Info("server stopped")
}
