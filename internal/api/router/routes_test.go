package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Middleware dùng chung gắn trên group /api phải chạy đúng một lần cho mỗi
// request, bất kể domain đăng ký bao nhiêu route trên cùng prefix.
func TestSetupRoutesMiddlewareChungChayMotLan(t *testing.T) {
	app := fiber.New()

	calls := 0
	counter := func(c fiber.Ctx) error {
		calls++
		return c.Next()
	}
	okHandler := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}

	register := func(api fiber.Router, r *Router) error {
		RegisterRouteWithMiddleware(api, "/widgets", "GET", "/", nil, okHandler)
		RegisterRouteWithMiddleware(api, "/widgets", "GET", "/stats", nil, okHandler)
		RegisterRouteWithMiddleware(api, "/widgets", "GET", "/:id", nil, okHandler)
		return nil
	}
	require.NoError(t, SetupRoutes(app, []fiber.Handler{counter}, register))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/widgets/stats", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls, "middleware chung không được chạy lặp theo số route đã đăng ký")
}
