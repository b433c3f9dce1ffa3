// Package crmhdl - Handler activity CRM.
package crmhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/handler"
	crmdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/dto"
	crmvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/service"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
)

// CrmActivityHandler xử lý các route activity.
type CrmActivityHandler struct {
	ActivityService *crmvc.CrmActivityService
}

// NewCrmActivityHandler tạo CrmActivityHandler mới.
func NewCrmActivityHandler() (*CrmActivityHandler, error) {
	activitySvc, err := crmvc.NewCrmActivityService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmActivityService: %w", err)
	}
	return &CrmActivityHandler{ActivityService: activitySvc}, nil
}

// HandleLog xử lý POST /crm/prospects/:id/activities.
func (h *CrmActivityHandler) HandleLog(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		prospectID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CrmActivityCreateInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Dữ liệu gửi lên không đúng định dạng JSON", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.ActivityService.Log(c.Context(), prospectID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreated(c, result)
		return nil
	})
}

// HandleList xử lý GET /crm/prospects/:id/activities. Query: activity_type.
func (h *CrmActivityHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		prospectID, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ActivityService.ListForProspect(c.Context(), prospectID, c.Query("activity_type"))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdate xử lý PATCH /crm/activities/:id.
func (h *CrmActivityHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CrmActivityUpdateInput
		if err := basehdl.BindBodyStrict(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ActivityService.Update(c.Context(), id, &input)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /crm/activities/:id.
func (h *CrmActivityHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ActivityService.Delete(c.Context(), id); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}
