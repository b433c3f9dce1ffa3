// Package models - Inspection thuộc domain thanh tra OSHA (inspections).
// Mỗi document là một hồ sơ thanh tra tải từ nguồn dữ liệu công khai của OSHA,
// định danh duy nhất bởi activityNr.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inspection lưu hồ sơ thanh tra OSHA (inspections).
type Inspection struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Định danh
	ActivityNr  string `json:"activityNr" bson:"activityNr"` // Số hồ sơ OSHA, duy nhất
	ReportingId string `json:"reportingId,omitempty" bson:"reportingId,omitempty"`
	StateFlag   string `json:"stateFlag,omitempty" bson:"stateFlag,omitempty"`

	// Cơ sở bị thanh tra
	EstabName   string `json:"estabName" bson:"estabName"`
	SiteAddress string `json:"siteAddress,omitempty" bson:"siteAddress,omitempty"`
	SiteCity    string `json:"siteCity,omitempty" bson:"siteCity,omitempty"`
	SiteState   string `json:"siteState,omitempty" bson:"siteState,omitempty"`
	SiteZip     string `json:"siteZip,omitempty" bson:"siteZip,omitempty"`

	// Địa chỉ thư tín
	MailStreet string `json:"mailStreet,omitempty" bson:"mailStreet,omitempty"`
	MailCity   string `json:"mailCity,omitempty" bson:"mailCity,omitempty"`
	MailState  string `json:"mailState,omitempty" bson:"mailState,omitempty"`
	MailZip    string `json:"mailZip,omitempty" bson:"mailZip,omitempty"`

	// Chi tiết thanh tra (mốc thời gian là Unix ms, nil nếu chưa có)
	OpenDate      *int64 `json:"openDate,omitempty" bson:"openDate,omitempty"`
	CaseModDate   *int64 `json:"caseModDate,omitempty" bson:"caseModDate,omitempty"`
	CloseConfDate *int64 `json:"closeConfDate,omitempty" bson:"closeConfDate,omitempty"`
	CloseCaseDate *int64 `json:"closeCaseDate,omitempty" bson:"closeCaseDate,omitempty"`
	SicCode       string `json:"sicCode,omitempty" bson:"sicCode,omitempty"`
	NaicsCode     string `json:"naicsCode,omitempty" bson:"naicsCode,omitempty"`
	InspType      string `json:"inspType,omitempty" bson:"inspType,omitempty"`
	InspScope     string `json:"inspScope,omitempty" bson:"inspScope,omitempty"`

	// Chủ sở hữu / công đoàn
	OwnerType   string `json:"ownerType,omitempty" bson:"ownerType,omitempty"`
	OwnerCode   string `json:"ownerCode,omitempty" bson:"ownerCode,omitempty"`
	UnionStatus string `json:"unionStatus,omitempty" bson:"unionStatus,omitempty"`

	// Quy mô cơ sở
	NrInEstab int `json:"nrInEstab,omitempty" bson:"nrInEstab,omitempty"`

	// Tiền phạt (tính lại từ violations khi ingest)
	TotalCurrentPenalty float64 `json:"totalCurrentPenalty" bson:"totalCurrentPenalty"`
	TotalInitialPenalty float64 `json:"totalInitialPenalty" bson:"totalInitialPenalty"`

	// Ngày OSHA công bố hồ sơ lên nguồn dữ liệu công khai
	LoadDt *int64 `json:"loadDt,omitempty" bson:"loadDt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
