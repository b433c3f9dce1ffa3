// Package dto - Input/response cho domain thanh tra (tầng transport).
package dto

// ViolationResponse là một vi phạm trả về cho client.
type ViolationResponse struct {
	Id             string  `json:"id"`
	ActivityNr     string  `json:"activityNr"`
	CitationId     string  `json:"citationId"`
	Standard       string  `json:"standard,omitempty"`
	ViolType       string  `json:"violType,omitempty"`
	IssuanceDate   *int64  `json:"issuanceDate,omitempty"`
	AbateDate      *int64  `json:"abateDate,omitempty"`
	CurrentPenalty float64 `json:"currentPenalty"`
	InitialPenalty float64 `json:"initialPenalty"`
	NrInstances    int     `json:"nrInstances,omitempty"`
	NrExposed      int     `json:"nrExposed,omitempty"`
	Gravity        string  `json:"gravity,omitempty"`
}

// InspectionResponse là một hồ sơ thanh tra trả về cho client.
type InspectionResponse struct {
	Id                  string  `json:"id"`
	ActivityNr          string  `json:"activityNr"`
	EstabName           string  `json:"estabName"`
	SiteAddress         string  `json:"siteAddress,omitempty"`
	SiteCity            string  `json:"siteCity,omitempty"`
	SiteState           string  `json:"siteState,omitempty"`
	SiteZip             string  `json:"siteZip,omitempty"`
	OpenDate            *int64  `json:"openDate,omitempty"`
	CloseConfDate       *int64  `json:"closeConfDate,omitempty"`
	CloseCaseDate       *int64  `json:"closeCaseDate,omitempty"`
	SicCode             string  `json:"sicCode,omitempty"`
	NaicsCode           string  `json:"naicsCode,omitempty"`
	InspType            string  `json:"inspType,omitempty"`
	InspScope           string  `json:"inspScope,omitempty"`
	OwnerType           string  `json:"ownerType,omitempty"`
	NrInEstab           int     `json:"nrInEstab,omitempty"`
	TotalCurrentPenalty float64 `json:"totalCurrentPenalty"`
	TotalInitialPenalty float64 `json:"totalInitialPenalty"`
	ViolationCount      int64   `json:"violationCount"` // Chỉ tính ở detail view
}

// InspectionDetailResponse là hồ sơ thanh tra kèm danh sách vi phạm.
type InspectionDetailResponse struct {
	InspectionResponse
	Violations []ViolationResponse `json:"violations"`
}

// InspectionListResponse là kết quả phân trang danh sách hồ sơ thanh tra.
type InspectionListResponse struct {
	Items      []InspectionResponse `json:"items"`
	Total      int64                `json:"total"`
	Page       int64                `json:"page"`
	PageSize   int64                `json:"pageSize"`
	TotalPages int64                `json:"totalPages"`
}

// InspectionStatsResponse là thống kê theo filter hiện tại.
type InspectionStatsResponse struct {
	TotalInspections    int64            `json:"totalInspections"`
	TotalPenalties      float64          `json:"totalPenalties"`
	StatesCount         int64            `json:"statesCount"`
	AvgPenalty          float64          `json:"avgPenalty"` // Trung bình trên inspection có phạt
	InspectionsByState  map[string]int64 `json:"inspectionsByState"` // Top 10 bang
	InspectionsByType   map[string]int64 `json:"inspectionsByType"`
}

// RecentInspectionItem là một dòng trong danh sách thanh tra mới.
type RecentInspectionItem struct {
	InspectionId        string  `json:"inspectionId"`
	ActivityNr          string  `json:"activityNr"`
	EstabName           string  `json:"estabName"`
	SiteCity            string  `json:"siteCity,omitempty"`
	SiteState           string  `json:"siteState,omitempty"`
	InspType            string  `json:"inspType,omitempty"`
	OpenDate            *int64  `json:"openDate,omitempty"`
	TotalCurrentPenalty float64 `json:"totalCurrentPenalty"`
}

// RecentInspectionsResponse là danh sách thanh tra mở trong N ngày gần nhất.
type RecentInspectionsResponse struct {
	Count           int64                  `json:"count"`
	UniqueCompanies int64                  `json:"uniqueCompanies"`
	Items           []RecentInspectionItem `json:"items"`
}

// StateCount là số lượng hồ sơ theo bang.
type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// TypeCount là số lượng hồ sơ theo loại thanh tra.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}
