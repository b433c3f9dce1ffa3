// Package dto - Input/response cho prospect (tầng transport).
package dto

import (
	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
)

// CrmProspectCreateInput dùng cho tạo prospect từ một hồ sơ thanh tra.
type CrmProspectCreateInput struct {
	InspectionId   string  `json:"inspectionId" validate:"required,len=24,hexadecimal"` // ObjectID của inspection - BẮT BUỘC
	Status         string  `json:"status,omitempty" validate:"omitempty,oneof=new_lead contacted qualified won lost"`
	Priority       string  `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	EstimatedValue float64 `json:"estimatedValue,omitempty" validate:"omitempty,gte=0"`
	Notes          string  `json:"notes,omitempty" validate:"omitempty,no_xss"`
	NextAction     string  `json:"nextAction,omitempty" validate:"omitempty,no_xss"`
	NextActionDate *int64  `json:"nextActionDate,omitempty"` // Unix ms
}

// CrmProspectUpdateInput dùng cho cập nhật một phần prospect.
// Field nil nghĩa là không đổi; field gửi lên (kể cả giá trị zero) sẽ được ghi đè.
type CrmProspectUpdateInput struct {
	Status         *string  `json:"status,omitempty" validate:"omitempty,oneof=new_lead contacted qualified won lost"`
	Priority       *string  `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty" validate:"omitempty,gte=0"`
	Notes          *string  `json:"notes,omitempty" validate:"omitempty,no_xss"`
	NextAction     *string  `json:"nextAction,omitempty" validate:"omitempty,no_xss"`
	NextActionDate *int64   `json:"nextActionDate,omitempty"`
	LostReason     *string  `json:"lostReason,omitempty" validate:"omitempty,no_xss"`
	WonDate        *int64   `json:"wonDate,omitempty"`
	WonValue       *float64 `json:"wonValue,omitempty" validate:"omitempty,gte=0"`
}

// CrmProspectResponse là prospect kèm thông tin hồ sơ thanh tra denormalize
// và số lượng activity/callback, dùng cho danh sách và các thao tác ghi.
type CrmProspectResponse struct {
	Id           string `json:"id"`
	InspectionId string `json:"inspectionId"`

	Status         crmmodels.ProspectStatus `json:"status"`
	Priority       string                   `json:"priority,omitempty"`
	EstimatedValue float64                  `json:"estimatedValue,omitempty"`
	Notes          string                   `json:"notes,omitempty"`
	NextAction     string                   `json:"nextAction,omitempty"`
	NextActionDate *int64                   `json:"nextActionDate,omitempty"`
	LostReason     string                   `json:"lostReason,omitempty"`
	WonDate        *int64                   `json:"wonDate,omitempty"`
	WonValue       float64                  `json:"wonValue,omitempty"`
	CreatedAt      int64                    `json:"createdAt"`
	UpdatedAt      int64                    `json:"updatedAt"`

	// Denormalize từ inspection gắn với prospect
	ActivityNr          string  `json:"activityNr,omitempty"`
	EstabName           string  `json:"estabName,omitempty"`
	SiteAddress         string  `json:"siteAddress,omitempty"`
	SiteCity            string  `json:"siteCity,omitempty"`
	SiteState           string  `json:"siteState,omitempty"`
	SiteZip             string  `json:"siteZip,omitempty"`
	TotalCurrentPenalty float64 `json:"totalCurrentPenalty,omitempty"`
	OpenDate            *int64  `json:"openDate,omitempty"`

	ActivityCount int64 `json:"activityCount"` // Tổng số activity của prospect
	CallbackCount int64 `json:"callbackCount"` // Số callback còn pending
}

// CrmProspectDetailResponse là prospect kèm toàn bộ activities (mới nhất trước)
// và callbacks (theo callbackDate tăng dần).
type CrmProspectDetailResponse struct {
	CrmProspectResponse
	Activities []CrmActivityResponse `json:"activities"`
	Callbacks  []CrmCallbackResponse `json:"callbacks"`
}

// CrmProspectListResponse là kết quả phân trang danh sách prospect.
type CrmProspectListResponse struct {
	Items      []CrmProspectResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int64                 `json:"page"`
	PageSize   int64                 `json:"pageSize"`
	TotalPages int64                 `json:"totalPages"`
}

// CrmProspectExistsResponse dùng cho lookup prospect theo inspection:
// frontend kiểm tra trước khi hiện nút "Tạo prospect".
type CrmProspectExistsResponse struct {
	Exists   bool   `json:"exists"`
	Id       string `json:"id,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// CrmStatsResponse là số liệu dashboard CRM.
type CrmStatsResponse struct {
	TotalProspects     int64            `json:"totalProspects"`
	ByStatus           map[string]int64 `json:"byStatus"`
	UpcomingCallbacks  int64            `json:"upcomingCallbacks"`  // Pending trong 7 ngày tới
	OverdueCallbacks   int64            `json:"overdueCallbacks"`   // Pending đã quá hạn
	TasksDueToday      int64            `json:"tasksDueToday"`      // Task chưa hoàn thành đến hạn hôm nay
	TotalPipelineValue float64          `json:"totalPipelineValue"` // Tổng estimatedValue của prospect còn mở
	WonThisMonth       int64            `json:"wonThisMonth"`
	WonValueThisMonth  float64          `json:"wonValueThisMonth"`
}
