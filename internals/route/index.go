package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	beritaService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	dashboardService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/service"
	umkmService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
	rateLimiter "github.com/x1nx3r/iniwebkelurahan-admin/internals/middlewares"
	routeDetails "github.com/x1nx3r/iniwebkelurahan-admin/internals/route/details"
)

// Deps adalah semua yang dibutuhkan route; dibuat sekali di main.
type Deps struct {
	Store    docstore.Store
	Log      *zap.Logger
	Uploader *cdn.Uploader
	Env      string
	// RateLimit=false untuk test (limiter menyimpan state per IP).
	RateLimit bool
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime := time.Now()
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	public := docstore.ReadOnly(d.Store)
	berita := beritaService.NewBeritaService(d.Store, log)
	umkm := umkmService.NewUMKMService(d.Store, log)
	svcs := routeDetails.Services{
		Berita:       berita,
		BeritaPublic: beritaService.NewBeritaService(public, log),
		UMKM:         umkm,
		UMKMPublic:   umkmService.NewUMKMService(public, log),
		Dashboard:    dashboardService.NewDashboardService(berita, umkm),
	}

	BaseRoutes(app, d.Store, d.Env, startTime)

	// ===================== GROUPS =====================
	var api fiber.Router = app.Group("/api")
	if d.RateLimit {
		api = app.Group("/api", rateLimiter.GlobalRateLimiter())
	}

	log.Info("mounting public routes", zap.String("prefix", "/api/public"))
	routeDetails.ContentPublicRoutes(api.Group("/public"), svcs)

	log.Info("mounting admin routes", zap.String("prefix", "/api"))
	routeDetails.ContentAdminRoutes(api, svcs)

	if d.Uploader != nil {
		log.Info("mounting upload route", zap.String("path", "/api/upload"))
		routeDetails.UploadRoutes(api, d.Uploader, log)
	}
}
