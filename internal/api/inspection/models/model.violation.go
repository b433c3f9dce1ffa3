// Package models - Violation thuộc domain thanh tra OSHA (violations).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Violation lưu một trích dẫn vi phạm thuộc hồ sơ thanh tra (violations).
// Định danh duy nhất bởi cặp (activityNr, citationId).
type Violation struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ActivityNr string `json:"activityNr" bson:"activityNr"`
	CitationId string `json:"citationId" bson:"citationId"`

	// Chi tiết vi phạm
	Standard     string `json:"standard,omitempty" bson:"standard,omitempty"`     // Điều khoản OSHA bị vi phạm
	ViolType     string `json:"violType,omitempty" bson:"violType,omitempty"`     // S=Serious, W=Willful, R=Repeat, O=Other
	IssuanceDate *int64 `json:"issuanceDate,omitempty" bson:"issuanceDate,omitempty"`
	AbateDate    *int64 `json:"abateDate,omitempty" bson:"abateDate,omitempty"`

	// Tiền phạt
	CurrentPenalty float64 `json:"currentPenalty" bson:"currentPenalty"`
	InitialPenalty float64 `json:"initialPenalty" bson:"initialPenalty"`

	// Khiếu nại / phán quyết
	ContestDate    *int64 `json:"contestDate,omitempty" bson:"contestDate,omitempty"`
	FinalOrderDate *int64 `json:"finalOrderDate,omitempty" bson:"finalOrderDate,omitempty"`

	// Mức độ và phạm vi
	NrInstances int    `json:"nrInstances,omitempty" bson:"nrInstances,omitempty"`
	NrExposed   int    `json:"nrExposed,omitempty" bson:"nrExposed,omitempty"` // Số lao động bị phơi nhiễm
	Gravity     string `json:"gravity,omitempty" bson:"gravity,omitempty"`
	HazCat      string `json:"hazcat,omitempty" bson:"hazcat,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
