package details

import (
	"github.com/gofiber/fiber/v2"

	beritaRoutes "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/route"
	beritaService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	dashboardRoutes "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/route"
	dashboardService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/service"
	umkmRoutes "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/route"
	umkmService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
)

// Services dibangun sekali di SetupRoutes. Varian *Public memakai store read-only.
type Services struct {
	Berita       *beritaService.BeritaService
	BeritaPublic *beritaService.BeritaService
	UMKM         *umkmService.UMKMService
	UMKMPublic   *umkmService.UMKMService
	Dashboard    *dashboardService.DashboardService
}

// ✅ Admin: /api/berita, /api/umkm, /api/dashboard
func ContentAdminRoutes(api fiber.Router, s Services) {
	beritaRoutes.BeritaAdminRoutes(api, s.Berita)
	umkmRoutes.UMKMAdminRoutes(api, s.UMKM)
	dashboardRoutes.DashboardRoutes(api, s.Dashboard)
}

// ✅ Publik (read-only): /api/public/berita, /api/public/umkm
func ContentPublicRoutes(public fiber.Router, s Services) {
	beritaRoutes.BeritaPublicRoutes(public, s.BeritaPublic)
	umkmRoutes.UMKMPublicRoutes(public, s.UMKMPublic)
}
