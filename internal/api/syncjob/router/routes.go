// Package router đăng ký các route sync job dưới prefix /inspections.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "github.com/ShieldSphere/osha-tracker-sub001/internal/api/router"
	synchdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/syncjob/handler"
)

// Register đăng ký route cron status, stream và sync.
// Prefix /inspections dùng chung với domain thanh tra, route ở đây là route
// tĩnh nên phải được đăng ký trước các route :id của domain đó.
func Register(api fiber.Router, r *apirouter.Router) error {
	syncHandler, err := synchdl.NewSyncHandler()
	if err != nil {
		return fmt.Errorf("tạo SyncHandler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/cron/status", nil, syncHandler.HandleCronStatus)
	// Stream nằm trong skip list của RequestLogger, handler giữ kết nối lâu
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "GET", "/cron/stream", nil, syncHandler.HandleCronStream)
	apirouter.RegisterRouteWithMiddleware(api, "/inspections", "POST", "/sync", nil, syncHandler.HandleSync)

	return nil
}
