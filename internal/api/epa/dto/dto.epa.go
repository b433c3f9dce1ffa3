// Package epadto chứa các DTO của domain EPA.
package epadto

import epamodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/epa/models"

// EPACaseListResponse là trang kết quả danh sách vụ việc EPA.
type EPACaseListResponse struct {
	Items      []epamodels.EPACase `json:"items"`
	Total      int64               `json:"total"`
	Page       int64               `json:"page"`
	PageSize   int64               `json:"page_size"`
	TotalPages int64               `json:"total_pages"`
}

// EPAStatsResponse là số liệu tổng hợp vụ việc EPA theo filter hiện tại.
type EPAStatsResponse struct {
	TotalCases     int64            `json:"total_cases"`
	TotalPenalties float64          `json:"total_penalties"`
	StatesCount    int64            `json:"states_count"`
	AvgPenalty     float64          `json:"avg_penalty"`
	CasesByState   map[string]int64 `json:"cases_by_state"`
	CasesByStatus  map[string]int64 `json:"cases_by_status"`
	CasesByLaw     map[string]int64 `json:"cases_by_law"`
}

// RecentEPACasesResponse là kết quả vụ việc mới phát sinh trong N ngày.
type RecentEPACasesResponse struct {
	Count int64               `json:"count"`
	Items []epamodels.EPACase `json:"items"`
}

// EPAStateCount là số vụ việc theo bang.
type EPAStateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// EPALawCount là số vụ việc theo luật môi trường.
type EPALawCount struct {
	Law   string `json:"law"`
	Count int64  `json:"count"`
}
