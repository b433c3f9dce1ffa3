// Package router đăng ký các route thuộc domain EPA.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	epahdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/epa/handler"
	apirouter "github.com/ShieldSphere/osha-tracker-sub001/internal/api/router"
)

// Register đăng ký tất cả route EPA dưới /api/epa.
func Register(api fiber.Router, r *apirouter.Router) error {
	epaCaseHandler, err := epahdl.NewEPACaseHandler()
	if err != nil {
		return fmt.Errorf("tạo EPACaseHandler: %w", err)
	}

	// Middleware dùng chung (request logger) đã gắn một lần trên group /api
	var middlewares []fiber.Handler

	// Route tĩnh phải đăng ký trước route :id
	apirouter.RegisterRouteWithMiddleware(api, "/epa", "GET", "/stats", middlewares, epaCaseHandler.HandleStats)
	apirouter.RegisterRouteWithMiddleware(api, "/epa", "GET", "/recent", middlewares, epaCaseHandler.HandleRecent)
	apirouter.RegisterRouteWithMiddleware(api, "/epa", "GET", "/states", middlewares, epaCaseHandler.HandleStates)
	apirouter.RegisterRouteWithMiddleware(api, "/epa", "GET", "/laws", middlewares, epaCaseHandler.HandleLaws)

	apirouter.RegisterRouteWithMiddleware(api, "/epa", "GET", "/list", middlewares, epaCaseHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(api, "/epa", "GET", "/:id", middlewares, epaCaseHandler.HandleGetById)

	return nil
}
