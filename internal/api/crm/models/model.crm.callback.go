// Package models - CrmCallback thuộc domain CRM (crm_callbacks).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmCallback lưu lịch hẹn gọi lại với prospect (crm_callbacks).
// Trạng thái overdue KHÔNG lưu trong document mà tính tại thời điểm đọc:
// pending và callbackDate đã qua. Xem IsOverdue.
type CrmCallback struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProspectId primitive.ObjectID `json:"prospectId" bson:"prospectId"`

	CallbackDate int64  `json:"callbackDate" bson:"callbackDate"` // Unix ms
	CallbackType string `json:"callbackType,omitempty" bson:"callbackType,omitempty"` // call | email | meeting
	Notes        string `json:"notes,omitempty" bson:"notes,omitempty"`

	Status      CallbackStatus `json:"status" bson:"status"`
	CompletedAt *int64         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// IsOverdue trả về true nếu callback còn pending và đã quá hạn so với nowMs.
func (c *CrmCallback) IsOverdue(nowMs int64) bool {
	return c.Status == CallbackStatusPending && c.CallbackDate < nowMs
}
