// Package crmhdl - Handler prospect CRM.
package crmhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/handler"
	crmdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/dto"
	crmvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/service"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
)

// CrmProspectHandler xử lý các route prospect.
type CrmProspectHandler struct {
	ProspectService *crmvc.CrmProspectService
}

// NewCrmProspectHandler tạo CrmProspectHandler mới.
func NewCrmProspectHandler() (*CrmProspectHandler, error) {
	prospectSvc, err := crmvc.NewCrmProspectService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmProspectService: %w", err)
	}
	return &CrmProspectHandler{ProspectService: prospectSvc}, nil
}

// HandleList xử lý GET /crm/prospects.
// Query: page, page_size, status, priority, search, state, has_upcoming_callback,
// sort_by, sort_desc.
func (h *CrmProspectHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		page, pageSize := basehdl.ParsePagination(c, 200)
		query := crmvc.CrmProspectListQuery{
			Page:     page,
			PageSize: pageSize,
			Status:   c.Query("status"),
			Priority: c.Query("priority"),
			Search:   c.Query("search"),
			State:    c.Query("state"),
			SortBy:   c.Query("sort_by", "updated_at"),
			SortDesc: c.Query("sort_desc", "true") != "false",
		}
		switch c.Query("has_upcoming_callback") {
		case "true":
			v := true
			query.HasUpcomingCallback = &v
		case "false":
			v := false
			query.HasUpcomingCallback = &v
		}
		result, err := h.ProspectService.List(c.Context(), query)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleCreate xử lý POST /crm/prospects.
func (h *CrmProspectHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input crmdto.CrmProspectCreateInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Dữ liệu gửi lên không đúng định dạng JSON", common.StatusBadRequest, nil))
			return nil
		}
		result, err := h.ProspectService.Create(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleCreated(c, result)
		return nil
	})
}

// HandleGetDetail xử lý GET /crm/prospects/:id.
func (h *CrmProspectHandler) HandleGetDetail(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ProspectService.GetDetail(c.Context(), id)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdate xử lý PATCH /crm/prospects/:id.
func (h *CrmProspectHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input crmdto.CrmProspectUpdateInput
		if err := basehdl.BindBodyStrict(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ProspectService.UpdatePartial(c.Context(), id, &input)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /crm/prospects/:id.
// Xóa prospect kéo theo toàn bộ activities và callbacks trong một transaction.
func (h *CrmProspectHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ProspectService.DeleteCascade(c.Context(), id); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}

// HandleFindByInspection xử lý GET /crm/inspection/:inspectionId/prospect.
// Frontend dùng để kiểm tra inspection đã có prospect chưa.
func (h *CrmProspectHandler) HandleFindByInspection(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		inspectionID, err := basehdl.ParseObjectIDParam(c, "inspectionId")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.ProspectService.FindByInspection(c.Context(), inspectionID)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStats xử lý GET /crm/stats.
func (h *CrmProspectHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.ProspectService.Stats(c.Context())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}
