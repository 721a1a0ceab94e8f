package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

type UMKMPublicController struct {
	Service *service.UMKMService
}

func NewUMKMPublicController(svc *service.UMKMService) *UMKMPublicController {
	return &UMKMPublicController{Service: svc}
}

// GET /api/public/umkm?kategori=&limit=&after= (hanya active)
func (ctrl *UMKMPublicController) GetActiveUMKM(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return helper.ValidationError(c, err)
	}
	items, err := ctrl.Service.ListActive(c.UserContext(), filter)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch UMKM")
	}
	return helper.JsonOK(c, items)
}

// GET /api/public/umkm/:slug
func (ctrl *UMKMPublicController) GetActiveUMKMBySlug(c *fiber.Ctx) error {
	m, err := ctrl.Service.GetActiveBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch UMKM")
	}
	return helper.JsonOK(c, m)
}
