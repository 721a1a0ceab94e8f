package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/controller"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
)

func UMKMAdminRoutes(api fiber.Router, svc *service.UMKMService) {
	ctrl := controller.NewUMKMController(svc)

	umkm := api.Group("/umkm")
	umkm.Get("/", ctrl.GetAllUMKM) // 📄 list / ?action=stats
	umkm.Post("/", ctrl.CreateUMKM)
	umkm.Post("/migrate-keys", ctrl.MigrateKeys)
	umkm.Get("/:key", ctrl.GetUMKMBySlug)
	umkm.Put("/:key", ctrl.UpdateUMKM)
	umkm.Delete("/:key", ctrl.DeleteUMKM)
}

// UMKMPublicRoutes: svc harus dibangun di atas docstore.ReadOnly.
func UMKMPublicRoutes(public fiber.Router, svc *service.UMKMService) {
	ctrl := controller.NewUMKMPublicController(svc)

	umkm := public.Group("/umkm")
	umkm.Get("/", ctrl.GetActiveUMKM)
	umkm.Get("/:slug", ctrl.GetActiveUMKMBySlug)
}
