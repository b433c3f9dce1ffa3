// Package models - CrmActivity thuộc domain CRM (crm_activities).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmActivity lưu một hoạt động với prospect (crm_activities).
// Activity là log bất biến về mặt nghiệp vụ: chỉ sửa được subject, description,
// outcome và trạng thái hoàn thành task; type và activityDate không đổi sau khi tạo.
type CrmActivity struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProspectId primitive.ObjectID `json:"prospectId" bson:"prospectId"`

	Type        ActivityType `json:"activityType" bson:"activityType"`
	Subject     string       `json:"subject,omitempty" bson:"subject,omitempty"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Outcome     string       `json:"outcome,omitempty" bson:"outcome,omitempty"` // Vd: "Left voicemail", "Scheduled meeting"

	ActivityDate    int64 `json:"activityDate" bson:"activityDate"` // Unix ms, mặc định thời điểm tạo
	DurationMinutes int   `json:"durationMinutes,omitempty" bson:"durationMinutes,omitempty"`

	// Chỉ dùng khi type = task
	TaskDueDate       *int64 `json:"taskDueDate,omitempty" bson:"taskDueDate,omitempty"`
	TaskCompleted     bool   `json:"taskCompleted" bson:"taskCompleted"`
	TaskCompletedDate *int64 `json:"taskCompletedDate,omitempty" bson:"taskCompletedDate,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
