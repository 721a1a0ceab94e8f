package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	uploadRoutes "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/upload/route"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
	rateLimiter "github.com/x1nx3r/iniwebkelurahan-admin/internals/middlewares"
)

// 🖼️ POST /api/upload dengan limiter khusus upload
func UploadRoutes(api fiber.Router, u *cdn.Uploader, log *zap.Logger) {
	uploadRoutes.UploadRoutes(api, u, log, rateLimiter.UploadRateLimiter())
}
