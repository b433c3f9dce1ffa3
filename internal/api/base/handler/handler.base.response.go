// Package basehdl - Helper dùng chung cho các domain handler: chuẩn hóa
// response envelope, bắt panic, parse tham số phân trang và ObjectID.
package basehdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandlerWrapper bọc handler với recover để bắt panic và xử lý lỗi an toàn.
// Đảm bảo server luôn trả về response cho client, kể cả khi có panic xảy ra.
//
// Parameters:
// - c: Fiber context
// - fn: Function xử lý chính của handler
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			debug.PrintStack()

			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Đảm bảo format response thống nhất trong toàn bộ ứng dụng.
//
// Parameters:
// - c: Fiber context
// - data: Dữ liệu trả về cho client (có thể là nil nếu chỉ trả về lỗi)
// - err: Lỗi nếu có (nil nếu không có lỗi)
func HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		// Nếu không phải custom error, trả về internal server error
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeDatabase.Code,
			"message": err.Error(),
			"status":  "error",
		})
		return
	}

	// Trường hợp thành công
	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// HandleCreated trả về response 201 cho thao tác tạo mới thành công.
func HandleCreated(c fiber.Ctx, data interface{}) {
	JSONResponse(c, common.StatusCreated, fiber.Map{
		"code":    common.StatusCreated,
		"message": common.MsgCreated,
		"data":    data,
		"status":  "success",
	})
}

// BindBodyStrict decode JSON body vào out và TỪ CHỐI các field lạ.
//
// c.Bind().Body dùng json.Unmarshal mặc định nên lặng lẽ bỏ qua key không
// khai báo trong struct. Với các endpoint partial update thì đó là lỗi người
// dùng cần báo ngay (gõ sai tên field sẽ tưởng update thành công), nên các
// handler PATCH phải dùng helper này thay vì c.Bind().
func BindBodyStrict(c fiber.Ctx, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return common.NewError(common.ErrCodeValidationInput,
			"Dữ liệu gửi lên không hợp lệ: "+err.Error(), common.StatusBadRequest, nil)
	}
	// JSON hợp lệ chỉ được chứa đúng một giá trị
	if dec.More() {
		return common.NewError(common.ErrCodeValidationFormat,
			"Body chứa nhiều hơn một JSON document", common.StatusBadRequest, nil)
	}
	return nil
}

// ParsePagination đọc page/page_size từ query string.
// Mặc định page=1, page_size=50; page_size bị chặn trên bởi maxPageSize.
func ParsePagination(c fiber.Ctx, maxPageSize int64) (page int64, pageSize int64) {
	page = 1
	pageSize = 50
	if s := c.Query("page"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			page = n
		}
	}
	if s := c.Query("page_size"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			pageSize = n
		}
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParseObjectIDParam đọc và validate path param dạng ObjectID.
// Trả về lỗi ValidationError nếu param rỗng hoặc không phải 24 ký tự hex.
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if raw == "" {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Thiếu tham số %s", name), common.StatusBadRequest, nil)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("Tham số %s không hợp lệ (cần ObjectID 24 ký tự hex)", name), common.StatusBadRequest, nil)
	}
	return id, nil
}
