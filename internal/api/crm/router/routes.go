// Package router đăng ký các route thuộc domain CRM: prospects, activities, callbacks, stats.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crmhdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/handler"
	apirouter "github.com/ShieldSphere/osha-tracker-sub001/internal/api/router"
)

// Register đăng ký tất cả route CRM dưới /api/crm.
func Register(api fiber.Router, r *apirouter.Router) error {
	prospectHandler, err := crmhdl.NewCrmProspectHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmProspectHandler: %w", err)
	}
	activityHandler, err := crmhdl.NewCrmActivityHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmActivityHandler: %w", err)
	}
	callbackHandler, err := crmhdl.NewCrmCallbackHandler()
	if err != nil {
		return fmt.Errorf("tạo CrmCallbackHandler: %w", err)
	}

	// Middleware dùng chung (request logger) đã gắn một lần trên group /api
	var middlewares []fiber.Handler

	// Prospects
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/prospects", middlewares, prospectHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "POST", "/prospects", middlewares, prospectHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/prospects/:id", middlewares, prospectHandler.HandleGetDetail)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "PATCH", "/prospects/:id", middlewares, prospectHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "DELETE", "/prospects/:id", middlewares, prospectHandler.HandleDelete)

	// Lookup prospect theo inspection (frontend kiểm tra trước khi hiện nút tạo)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/inspection/:inspectionId/prospect", middlewares, prospectHandler.HandleFindByInspection)

	// Activities
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "POST", "/prospects/:id/activities", middlewares, activityHandler.HandleLog)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/prospects/:id/activities", middlewares, activityHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "PATCH", "/activities/:id", middlewares, activityHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "DELETE", "/activities/:id", middlewares, activityHandler.HandleDelete)

	// Callbacks - route tĩnh (upcoming, month) phải đăng ký trước route :id
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/callbacks/upcoming", middlewares, callbackHandler.HandleUpcoming)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/callbacks/month/:year/:month", middlewares, callbackHandler.HandleMonth)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/callbacks", middlewares, callbackHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "POST", "/prospects/:id/callbacks", middlewares, callbackHandler.HandleSchedule)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "PATCH", "/callbacks/:id", middlewares, callbackHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "PUT", "/callbacks/:id/complete", middlewares, callbackHandler.HandleComplete)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "PUT", "/callbacks/:id/cancel", middlewares, callbackHandler.HandleCancel)
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "DELETE", "/callbacks/:id", middlewares, callbackHandler.HandleDelete)

	// Stats dashboard
	apirouter.RegisterRouteWithMiddleware(api, "/crm", "GET", "/stats", middlewares, prospectHandler.HandleStats)

	return nil
}
