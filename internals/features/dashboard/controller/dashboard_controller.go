package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/service"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Service: svc}
}

// GET /api/dashboard
func (ctrl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	res, err := ctrl.Service.Summary(c.UserContext())
	if err != nil {
		return helper.FromError(c, err, "Data not found", "Failed to fetch dashboard")
	}
	return helper.JsonOK(c, res)
}
