package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

const (
	msgNotFound = "UMKM not found"
	maxLimit    = 1000
)

type UMKMController struct {
	Service *service.UMKMService
}

func NewUMKMController(svc *service.UMKMService) *UMKMController {
	return &UMKMController{Service: svc}
}

func parseFilter(c *fiber.Ctx) (dto.UMKMFilter, error) {
	limit, err := helper.ParseLimit(c, "limit", 0, maxLimit)
	if err != nil {
		return dto.UMKMFilter{}, err
	}
	return dto.UMKMFilter{
		Status:   helper.QueryFilter(c, "status"),
		Kategori: helper.QueryFilter(c, "kategori"),
		Limit:    limit,
		After:    c.Query("after"),
	}, nil
}

// =============================
// 📄 Get All UMKM (atau stats)
// =============================
func (ctrl *UMKMController) GetAllUMKM(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if c.Query("action") == "stats" {
		stats, err := ctrl.Service.Stats(ctx)
		if err != nil {
			return helper.FromError(c, err, msgNotFound, "Failed to fetch UMKM stats")
		}
		return helper.JsonOK(c, stats)
	}

	filter, err := parseFilter(c)
	if err != nil {
		return helper.ValidationError(c, err)
	}
	items, err := ctrl.Service.ListAll(ctx, filter)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch UMKM")
	}
	return helper.JsonOK(c, items)
}

// =============================
// 🔍 Get UMKM By Slug
// =============================
func (ctrl *UMKMController) GetUMKMBySlug(c *fiber.Ctx) error {
	m, err := ctrl.Service.GetBySlug(c.UserContext(), c.Params("key"))
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to fetch UMKM")
	}
	return helper.JsonOK(c, m)
}

// =============================
// ➕ Create UMKM
// =============================
func (ctrl *UMKMController) CreateUMKM(c *fiber.Ctx) error {
	var body dto.CreateUMKMRequest
	if err := helper.DecodeStrict(c.Body(), &body); err != nil {
		return helper.ValidationError(c, err)
	}

	slug, err := ctrl.Service.Create(c.UserContext(), body)
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to create UMKM")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, fiber.Map{"slug": slug})
}

// =============================
// 🔄 Update UMKM (key sudah di-resolve client)
// =============================
func (ctrl *UMKMController) UpdateUMKM(c *fiber.Ctx) error {
	var body dto.UpdateUMKMRequest
	if err := helper.DecodeStrict(c.Body(), &body); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.Update(c.UserContext(), c.Params("key"), body); err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to update UMKM")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, nil)
}

// =============================
// 🗑️ Delete UMKM
// =============================
func (ctrl *UMKMController) DeleteUMKM(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("key")); err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to delete UMKM")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, nil)
}

// =============================
// 🔀 Migrasi key kanonik (?dryRun=true)
// =============================
func (ctrl *UMKMController) MigrateKeys(c *fiber.Ctx) error {
	report, err := ctrl.Service.MigrateCanonicalKeys(c.UserContext(), c.QueryBool("dryRun", false))
	if err != nil {
		return helper.FromError(c, err, msgNotFound, "Failed to migrate UMKM keys")
	}
	return helper.JsonOK(c, report)
}
