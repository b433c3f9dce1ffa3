// Package epahdl - Handler vụ việc cưỡng chế EPA.
package epahdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/handler"
	epasvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/epa/service"
)

// EPACaseHandler xử lý các route vụ việc EPA.
type EPACaseHandler struct {
	EPACaseService *epasvc.EPACaseService
}

// NewEPACaseHandler tạo EPACaseHandler mới.
func NewEPACaseHandler() (*EPACaseHandler, error) {
	epaCaseSvc, err := epasvc.NewEPACaseService()
	if err != nil {
		return nil, fmt.Errorf("tạo EPACaseService: %w", err)
	}
	return &EPACaseHandler{EPACaseService: epaCaseSvc}, nil
}

func parseListQuery(c fiber.Ctx) epasvc.EPACaseListQuery {
	page, pageSize := basehdl.ParsePagination(c, 200)
	q := epasvc.EPACaseListQuery{
		Page:       page,
		PageSize:   pageSize,
		State:      c.Query("state"),
		Search:     c.Query("search"),
		CaseNumber: c.Query("case_number"),
		Status:     c.Query("status"),
		Law:        c.Query("law"),
		SortBy:     c.Query("sort_by", "settlement_date"),
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
	return q
}

// HandleList xử lý GET /epa/cases.
func (h *EPACaseHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.EPACaseService.List(c.Context(), parseListQuery(c))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStats xử lý GET /epa/stats theo filter hiện tại.
func (h *EPACaseHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.EPACaseService.Stats(c.Context(), parseListQuery(c))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleRecent xử lý GET /epa/recent. Query: days (1-90, mặc định 7).
func (h *EPACaseHandler) HandleRecent(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		days := 7
		if s := c.Query("days"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 90 {
				days = n
			}
		}
		result, err := h.EPACaseService.Recent(c.Context(), days, parseListQuery(c))
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStates xử lý GET /epa/states.
func (h *EPACaseHandler) HandleStates(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.EPACaseService.States(c.Context())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleLaws xử lý GET /epa/laws.
func (h *EPACaseHandler) HandleLaws(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.EPACaseService.Laws(c.Context())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetById xử lý GET /epa/cases/:id.
func (h *EPACaseHandler) HandleGetById(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := basehdl.ParseObjectIDParam(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.EPACaseService.GetById(c.Context(), id)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}
