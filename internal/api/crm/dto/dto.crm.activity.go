// Package dto - Input/response cho activity (tầng transport).
package dto

import (
	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
)

// CrmActivityCreateInput dùng cho ghi một hoạt động mới với prospect.
type CrmActivityCreateInput struct {
	ActivityType    string `json:"activityType" validate:"required,oneof=call email meeting note task"` // BẮT BUỘC
	Subject         string `json:"subject,omitempty" validate:"omitempty,no_xss"`
	Description     string `json:"description,omitempty" validate:"omitempty,no_xss"`
	Outcome         string `json:"outcome,omitempty" validate:"omitempty,no_xss"`
	ActivityDate    *int64 `json:"activityDate,omitempty"` // Unix ms, mặc định thời điểm tạo
	DurationMinutes int    `json:"durationMinutes,omitempty" validate:"omitempty,gte=0"`
	TaskDueDate     *int64 `json:"taskDueDate,omitempty"` // Chỉ có nghĩa khi type = task
}

// CrmActivityUpdateInput dùng cho sửa activity đã ghi.
// Chỉ cho sửa subject, description, outcome và trạng thái hoàn thành task;
// type và activityDate là bất biến.
type CrmActivityUpdateInput struct {
	Subject       *string `json:"subject,omitempty" validate:"omitempty,no_xss"`
	Description   *string `json:"description,omitempty" validate:"omitempty,no_xss"`
	Outcome       *string `json:"outcome,omitempty" validate:"omitempty,no_xss"`
	TaskCompleted *bool   `json:"taskCompleted,omitempty"`
}

// CrmActivityResponse là activity trả về cho client.
type CrmActivityResponse struct {
	Id                string                 `json:"id"`
	ProspectId        string                 `json:"prospectId"`
	ActivityType      crmmodels.ActivityType `json:"activityType"`
	Subject           string                 `json:"subject,omitempty"`
	Description       string                 `json:"description,omitempty"`
	Outcome           string                 `json:"outcome,omitempty"`
	ActivityDate      int64                  `json:"activityDate"`
	DurationMinutes   int                    `json:"durationMinutes,omitempty"`
	TaskDueDate       *int64                 `json:"taskDueDate,omitempty"`
	TaskCompleted     bool                   `json:"taskCompleted"`
	TaskCompletedDate *int64                 `json:"taskCompletedDate,omitempty"`
	CreatedAt         int64                  `json:"createdAt"`
}
