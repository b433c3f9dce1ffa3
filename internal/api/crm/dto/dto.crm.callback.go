// Package dto - Input/response cho callback (tầng transport).
package dto

import (
	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
)

// CrmCallbackCreateInput dùng cho đặt lịch gọi lại với prospect.
type CrmCallbackCreateInput struct {
	CallbackDate int64  `json:"callbackDate" validate:"required,gt=0"` // Unix ms - BẮT BUỘC
	CallbackType string `json:"callbackType,omitempty" validate:"omitempty,oneof=call email meeting"`
	Notes        string `json:"notes,omitempty" validate:"omitempty,no_xss"`
}

// CrmCallbackUpdateInput dùng cho cập nhật lịch gọi lại.
// Đổi status sang completed sẽ tự set completedAt = thời điểm cập nhật.
type CrmCallbackUpdateInput struct {
	CallbackDate *int64  `json:"callbackDate,omitempty" validate:"omitempty,gt=0"`
	CallbackType *string `json:"callbackType,omitempty" validate:"omitempty,oneof=call email meeting"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,no_xss"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
}

// CrmCallbackResponse là callback kèm tên cơ sở denormalize và cờ overdue
// tính tại thời điểm đọc.
type CrmCallbackResponse struct {
	Id           string                   `json:"id"`
	ProspectId   string                   `json:"prospectId"`
	CallbackDate int64                    `json:"callbackDate"`
	CallbackType string                   `json:"callbackType,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	Status       crmmodels.CallbackStatus `json:"status"`
	CompletedAt  *int64                   `json:"completedAt,omitempty"`
	CreatedAt    int64                    `json:"createdAt"`

	// Denormalize từ prospect -> inspection
	EstabName string `json:"estabName,omitempty"`
	SiteState string `json:"siteState,omitempty"`

	Overdue bool `json:"overdue"` // pending và callbackDate đã qua, tính lúc đọc
}
