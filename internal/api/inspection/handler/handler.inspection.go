// Package insphdl - Handler hồ sơ thanh tra OSHA.
package insphdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/handler"
	inspsvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/inspection/service"
)

// InspectionHandler xử lý các route hồ sơ thanh tra.
type InspectionHandler struct {
	InspectionService *inspsvc.InspectionService
}

// NewInspectionHandler tạo InspectionHandler mới.
func NewInspectionHandler() (*InspectionHandler, error) {
	inspectionSvc, err := inspsvc.NewInspectionService()
	if err != nil {
		return nil, fmt.Errorf("tạo InspectionService: %w", err)
	}
	return &InspectionHandler{InspectionService: inspectionSvc}, nil
}

// parseListQuery đọc các tham số lọc chung của danh sách và stats.
func parseListQuery(c fiber.Ctx) inspsvc.InspectionListQuery {
	page, pageSize := basehdl.ParsePagination(c, 200)
	q := inspsvc.InspectionListQuery{
		Page:       page,
		PageSize:   pageSize,
		State:      c.Query("state"),
		City:       c.Query("city"),
		Search:     c.Query("search"),
		ActivityNr: c.Query("activity_nr"),
		InspType:   c.Query("insp_type"),
		SortBy:     c.Query("sort_by", "open_date"),
		SortDesc:   c.Query("sort_desc", "true") != "false",
	}
	if s := c.Query("min_penalty"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			q.MinPenalty = &v
		}
	}
	if s := c.Query("max_penalty"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			q.MaxPenalty = &v
		}
	}
	if s := c.Query("start_date"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			q.StartDate = &v
		}
	}
	if s := c.Query("end_date"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			q.EndDate = &v
		}
	}
	if s := c.Query("has_violations"); s != "" {
		hasViolations := s == "true"
		q.HasViolations = &hasViolations
	}
	return q
}

// HandleList xử lý GET /inspections.
func (h *InspectionHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.InspectionService.List(c.Context(), parseListQuery(c))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStats xử lý GET /inspections/stats theo filter hiện tại.
func (h *InspectionHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.InspectionService.Stats(c.Context(), parseListQuery(c))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleRecent xử lý GET /inspections/recent. Query: days (1-90, mặc định 7).
func (h *InspectionHandler) HandleRecent(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		days := 7
		if s := c.Query("days"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 90 {
				days = n
			}
		}
		result, err := h.InspectionService.Recent(c.Context(), days, parseListQuery(c))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStates xử lý GET /inspections/states.
func (h *InspectionHandler) HandleStates(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.InspectionService.States(c.Context())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleTypes xử lý GET /inspections/types.
func (h *InspectionHandler) HandleTypes(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.InspectionService.Types(c.Context())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetDetail xử lý GET /inspections/:id.
func (h *InspectionHandler) HandleGetDetail(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.InspectionService.GetDetail(c.Context(), id)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetCompany xử lý GET /inspections/:id/company. Data null nếu chưa enrich.
func (h *InspectionHandler) HandleGetCompany(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.InspectionService.GetCompany(c.Context(), id)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /inspections/:id.
// Xóa hồ sơ kéo theo violations, company và cây prospect trong một transaction.
func (h *InspectionHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.InspectionService.DeleteCascade(c.Context(), id); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}
