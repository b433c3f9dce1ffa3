// Package models - CrmProspect thuộc domain CRM (crm_prospects).
// Mỗi prospect gắn 1:1 với một hồ sơ thanh tra OSHA; ràng buộc duy nhất trên
// inspectionId được enforce bằng unique index ở storage, không kiểm tra trước
// khi insert nên hai request tạo đồng thời chỉ có đúng một request thành công.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrmProspect lưu cơ hội bán hàng gắn với hồ sơ thanh tra (crm_prospects).
type CrmProspect struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	InspectionId primitive.ObjectID `json:"inspectionId" bson:"inspectionId"` // Unique index: prospect_inspection_unique

	// Pipeline
	Status   ProspectStatus `json:"status" bson:"status"`
	Priority string         `json:"priority,omitempty" bson:"priority,omitempty"` // high | medium | low

	// Thông tin thương vụ
	EstimatedValue float64 `json:"estimatedValue,omitempty" bson:"estimatedValue,omitempty"`
	Notes          string  `json:"notes,omitempty" bson:"notes,omitempty"`

	// Hành động tiếp theo
	NextAction     string `json:"nextAction,omitempty" bson:"nextAction,omitempty"`
	NextActionDate *int64 `json:"nextActionDate,omitempty" bson:"nextActionDate,omitempty"` // Unix ms

	// Kết quả
	LostReason string  `json:"lostReason,omitempty" bson:"lostReason,omitempty"` // Khi status = lost
	WonDate    *int64  `json:"wonDate,omitempty" bson:"wonDate,omitempty"`       // Client tự set, không auto khi status = won
	WonValue   float64 `json:"wonValue,omitempty" bson:"wonValue,omitempty"`     // Giá trị thực tế khi won

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
