// Package crmhdl - Handler callback CRM.
package crmhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/handler"
	crmdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/dto"
	crmvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/service"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
)

// CrmCallbackHandler xử lý các route callback.
type CrmCallbackHandler struct {
	CallbackService *crmvc.CrmCallbackService
}

// NewCrmCallbackHandler tạo CrmCallbackHandler mới.
func NewCrmCallbackHandler() (*CrmCallbackHandler, error) {
	callbackSvc, err := crmvc.NewCrmCallbackService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmCallbackService: %w", err)
	}
	return &CrmCallbackHandler{CallbackService: callbackSvc}, nil
}

// HandleSchedule xử lý POST /crm/prospects/:id/callbacks.
func (h *CrmCallbackHandler) HandleSchedule(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		prospectID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CrmCallbackCreateInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Dữ liệu gửi lên không đúng định dạng JSON", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.CallbackService.Schedule(c.Context(), prospectID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreated(c, result)
		return nil
	})
}

// HandleList xử lý GET /crm/callbacks. Query: status, start_date, end_date (Unix ms).
func (h *CrmCallbackHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		query := crmvc.CrmCallbackListQuery{
			Status:    c.Query("status"),
			StartDate: parseMillisQuery(c, "start_date"),
			EndDate:   parseMillisQuery(c, "end_date"),
		}
		result, err := h.CallbackService.List(c.Context(), query)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpcoming xử lý GET /crm/callbacks/upcoming. Query: days (mặc định 7).
func (h *CrmCallbackHandler) HandleUpcoming(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		days := 7
		if s := c.Query("days"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				days = n
			}
		}
		result, err := h.CallbackService.Upcoming(c.Context(), days)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleMonth xử lý GET /crm/callbacks/month/:year/:month, cho view lịch.
func (h *CrmCallbackHandler) HandleMonth(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		year, err := strconv.Atoi(c.Params("year"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Tham số year không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		month, err := strconv.Atoi(c.Params("month"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Tham số month không hợp lệ", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.CallbackService.ListInMonth(c.Context(), year, month)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdate xử lý PATCH /crm/callbacks/:id.
func (h *CrmCallbackHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CrmCallbackUpdateInput
		if err := basehdl.BindBodyStrict(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CallbackService.Update(c.Context(), id, &input)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleComplete xử lý PUT /crm/callbacks/:id/complete.
func (h *CrmCallbackHandler) HandleComplete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CallbackService.Complete(c.Context(), id)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleCancel xử lý PUT /crm/callbacks/:id/cancel.
func (h *CrmCallbackHandler) HandleCancel(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CallbackService.Cancel(c.Context(), id)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /crm/callbacks/:id.
func (h *CrmCallbackHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.CallbackService.Delete(c.Context(), id); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}

// parseMillisQuery đọc query param dạng Unix ms; nil nếu thiếu hoặc sai định dạng.
func parseMillisQuery(c fiber.Ctx, name string) *int64 {
	if s := c.Query(name); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}
