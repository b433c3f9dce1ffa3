package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/ShieldSphere/osha-tracker-sub001/internal/logger"
)

// RequestLogger ghi log có cấu trúc cho mỗi request sau khi handler hoàn thành.
// Log ở mức warn nếu status >= 400, còn lại ở mức info.
//
// Gắn MỘT lần trên group /api; gắn lặp lại trên nhiều group cùng prefix sẽ
// nhân đôi dòng log cho mỗi request. skipPaths dành cho các path giữ kết nối
// lâu (SSE stream) mà log request hoàn thành không có ý nghĩa.
func RequestLogger(skipPaths ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		for _, p := range skipPaths {
			if c.Path() == p {
				return c.Next()
			}
		}
		start := time.Now()
		err := c.Next()

		entry := logger.WithRequest(c).WithFields(map[string]interface{}{
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		})
		if c.Response().StatusCode() >= 400 {
			entry.Warn("request hoàn thành với lỗi")
		} else {
			entry.Info("request hoàn thành")
		}
		return err
	}
}
