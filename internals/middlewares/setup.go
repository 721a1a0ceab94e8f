package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/configs"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global. Urutan penting: request id
// harus ada sebelum recover dan access log memakainya.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, log *zap.Logger) {
	app.Use(RequestContext(cfg.RequestTimeout, log.Named("http")))
	app.Use(RecoveryMiddleware(log.Named("panic")))
	app.Use(CorsMiddleware(cfg.CORSAllowOrigins))
	if !cfg.IsProduction() {
		app.Use(logger.LoggerMiddleware())
	}
}
