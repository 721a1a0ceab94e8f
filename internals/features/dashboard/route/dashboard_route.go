package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/controller"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/service"
)

func DashboardRoutes(api fiber.Router, svc *service.DashboardService) {
	ctrl := controller.NewDashboardController(svc)
	api.Get("/dashboard", ctrl.GetDashboard)
}
