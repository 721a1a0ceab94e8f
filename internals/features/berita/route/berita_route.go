package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/controller"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
)

func BeritaAdminRoutes(api fiber.Router, svc *service.BeritaService) {
	ctrl := controller.NewBeritaController(svc)

	berita := api.Group("/berita")
	berita.Get("/", ctrl.GetAllBerita)       // 📄 list / ?action=stats
	berita.Post("/", ctrl.CreateBerita)      // ➕ buat berita
	berita.Get("/:id", ctrl.GetBeritaByID)   // 🔍 detail
	berita.Put("/:id", ctrl.UpdateBerita)    // 🔄 patch
	berita.Delete("/:id", ctrl.DeleteBerita) // 🗑️ hapus
}

// BeritaPublicRoutes: svc harus dibangun di atas docstore.ReadOnly.
func BeritaPublicRoutes(public fiber.Router, svc *service.BeritaService) {
	ctrl := controller.NewBeritaPublicController(svc)

	berita := public.Group("/berita")
	berita.Get("/", ctrl.GetPublishedBerita)
	berita.Get("/latest", ctrl.GetLatestBerita)
	berita.Get("/featured", ctrl.GetFeaturedBerita)
	berita.Get("/:id", ctrl.GetPublishedBeritaByID)
}
