package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/upload/controller"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
)

// UploadRoutes memasang POST /upload; limiter khusus upload dipasang pemanggil.
func UploadRoutes(api fiber.Router, u *cdn.Uploader, log *zap.Logger, extra ...fiber.Handler) {
	ctrl := controller.NewUploadController(u, log)

	handlers := append(extra, ctrl.UploadImage)
	api.Post("/upload", handlers...)
}
