// Package router đăng ký các route thuộc domain thanh tra OSHA.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	insphdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/inspection/handler"
	apirouter "github.com/ShieldSphere/osha-tracker-sub001/internal/api/router"
)

// Register đăng ký tất cả route thanh tra dưới /api/inspections.
func Register(api fiber.Router, r *apirouter.Router) error {
	inspectionHandler, err := insphdl.NewInspectionHandler()
	if err != nil {
		return fmt.Errorf("tạo InspectionHandler: %w", err)
	}

	// Middleware dùng chung (request logger) đã gắn một lần trên group /api
	var middlewares []fiber.Handler

	// Route tĩnh phải đăng ký trước route :id
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/stats", middlewares, inspectionHandler.HandleStats)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/recent", middlewares, inspectionHandler.HandleRecent)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/states", middlewares, inspectionHandler.HandleStates)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/types", middlewares, inspectionHandler.HandleTypes)

	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/", middlewares, inspectionHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/:id", middlewares, inspectionHandler.HandleGetDetail)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/:id/company", middlewares, inspectionHandler.HandleGetCompany)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "DELETE", "/:id", middlewares, inspectionHandler.HandleDelete)

	return nil
}
