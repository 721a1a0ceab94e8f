package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

const msgNotFound = "Berita not found"

type BeritaController struct {
	Service *service.BeritaService
}

func NewBeritaController(svc *service.BeritaService) *BeritaController {
	return &BeritaController{Service: svc}
}

// =============================
// 📄 Get All Berita (atau stats)
// =============================
func (ctrl *BeritaController) GetAllBerita(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if c.Query("action") == "stats" {
		stats, err := ctrl.Service.Stats(ctx)
		if err != nil {
			return helper.FromError(c, err, msgNotFound, "Failed to fetch berita stats")
		}
		return helper.JsonOK(c, stats)
	}

	filter := dto.BeritaFilter{
		Q:        c.Query("q"),
		Kategori: helper.QueryFilter(c, "kategori"),
		Status:   helper.QueryFilter(c, "status"),
	}
	items, err := ctrl.Service.ListFiltered(ctx, filter)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch berita")
	}
	return helper.JsonOK(c, items)
}

// =============================
// 🔍 Get Berita By ID
// =============================
func (ctrl *BeritaController) GetBeritaByID(c *fiber.Ctx) error {
	b, err := ctrl.Service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch berita")
	}
	return helper.JsonOK(c, b)
}

// =============================
// ➕ Create Berita
// =============================
func (ctrl *BeritaController) CreateBerita(c *fiber.Ctx) error {
	var body dto.CreateBeritaRequest
	if err := helper.DecodeStrict(c.Body(), &body); err != nil {
		return helper.ValidationError(c, err)
	}

	id, err := ctrl.Service.Create(c.UserContext(), body)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to create berita")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, fiber.Map{"id": id})
}

// =============================
// 🔄 Update Berita
// =============================
func (ctrl *BeritaController) UpdateBerita(c *fiber.Ctx) error {
	var body dto.UpdateBeritaRequest
	if err := helper.DecodeStrict(c.Body(), &body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.Update(c.UserContext(), c.Params("id"), body); err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to update berita")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, nil)
}

// =============================
// 🗑️ Delete Berita
// =============================
func (ctrl *BeritaController) DeleteBerita(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to delete berita")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, nil)
}
