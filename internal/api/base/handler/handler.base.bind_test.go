package basehdl

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Body partial update kiểu PATCH: field con trỏ, field nil là không đổi.
type strictBindBody struct {
	Priority *string `json:"priority,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func newStrictBindApp() *fiber.App {
	app := fiber.New()
	app.Patch("/t", func(c fiber.Ctx) error {
		var body strictBindBody
		if err := BindBodyStrict(c, &body); err != nil {
			HandleResponse(c, nil, err)
			return nil
		}
		HandleResponse(c, body, nil)
		return nil
	})
	return app
}

func doStrictBind(t *testing.T, app *fiber.App, payload string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/t", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func TestBindBodyStrictChapNhanFieldHopLe(t *testing.T) {
	app := newStrictBindApp()

	status, envelope := doStrictBind(t, app, `{"priority":"high","notes":"gọi lại tuần sau"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", envelope["status"])
}

func TestBindBodyStrictTuChoiFieldLa(t *testing.T) {
	app := newStrictBindApp()

	// Field không khai báo trong struct phải bị từ chối thay vì lặng lẽ bỏ qua
	status, envelope := doStrictBind(t, app, `{"priority":"high","bogus_field":123}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "error", envelope["status"])
}

func TestBindBodyStrictTuChoiJSONHong(t *testing.T) {
	app := newStrictBindApp()

	status, envelope := doStrictBind(t, app, `{"priority":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "error", envelope["status"])
}

func TestBindBodyStrictTuChoiNhieuDocument(t *testing.T) {
	app := newStrictBindApp()

	status, envelope := doStrictBind(t, app, `{"priority":"low"}{"notes":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "error", envelope["status"])
}
