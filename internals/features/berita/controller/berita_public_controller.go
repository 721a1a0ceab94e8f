package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

// BeritaPublicController hanya membaca; service-nya dibangun di atas store read-only.
type BeritaPublicController struct {
	Service *service.BeritaService
}

func NewBeritaPublicController(svc *service.BeritaService) *BeritaPublicController {
	return &BeritaPublicController{Service: svc}
}

// GET /api/public/berita?kategori=&limit=&after=
func (ctrl *BeritaPublicController) GetPublishedBerita(c *fiber.Ctx) error {
	limit, err := helper.ParseLimit(c, "limit", constants.PublicBeritaLimit, 100)
	if err != nil {
		return helper.ValidationError(c, err)
	}
	items, err := ctrl.Service.ListPublished(c.UserContext(), c.Query("kategori"), limit, c.Query("after"))
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch berita")
	}
	return helper.JsonOK(c, items)
}

// GET /api/public/berita/latest?count=
func (ctrl *BeritaPublicController) GetLatestBerita(c *fiber.Ctx) error {
	count, err := helper.ParseLimit(c, "count", constants.LatestBeritaCount, 50)
	if err != nil {
		return helper.ValidationError(c, err)
	}
	items, err := ctrl.Service.Latest(c.UserContext(), count)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch berita")
	}
	return helper.JsonOK(c, items)
}

// GET /api/public/berita/featured?count=
func (ctrl *BeritaPublicController) GetFeaturedBerita(c *fiber.Ctx) error {
	count, err := helper.ParseLimit(c, "count", constants.FeaturedBeritaCount, 50)
	if err != nil {
		return helper.ValidationError(c, err)
	}
	items, err := ctrl.Service.Featured(c.UserContext(), count)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch berita")
	}
	return helper.JsonOK(c, items)
}

// GET /api/public/berita/:id (draft → 404)
func (ctrl *BeritaPublicController) GetPublishedBeritaByID(c *fiber.Ctx) error {
	b, err := ctrl.Service.GetPublished(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch berita")
	}
	return helper.JsonOK(c, b)
}
