// Package models - Company thuộc domain thanh tra OSHA (companies).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompanyContact là một đầu mối liên hệ của công ty, nhúng trong document company.
type CompanyContact struct {
	FullName    string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string `json:"phone,omitempty" bson:"phone,omitempty"`
	LinkedinUrl string `json:"linkedinUrl,omitempty" bson:"linkedinUrl,omitempty"`
	Seniority   string `json:"seniority,omitempty" bson:"seniority,omitempty"` // c_suite, vp, director, manager...
	ContactType string `json:"contactType,omitempty" bson:"contactType,omitempty"`
}

// Company lưu thông tin công ty đã enrich, gắn với một hồ sơ thanh tra (companies).
type Company struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	InspectionId primitive.ObjectID `json:"inspectionId" bson:"inspectionId"`

	Name          string `json:"name" bson:"name"`
	Domain        string `json:"domain,omitempty" bson:"domain,omitempty"`
	Website       string `json:"website,omitempty" bson:"website,omitempty"`
	LegalName     string `json:"legalName,omitempty" bson:"legalName,omitempty"`
	OperatingName string `json:"operatingName,omitempty" bson:"operatingName,omitempty"`

	Industry      string  `json:"industry,omitempty" bson:"industry,omitempty"`
	EmployeeCount int     `json:"employeeCount,omitempty" bson:"employeeCount,omitempty"`
	AnnualRevenue float64 `json:"annualRevenue,omitempty" bson:"annualRevenue,omitempty"`

	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`

	// Địa chỉ trụ sở (có thể khác địa chỉ site bị thanh tra)
	Address    string `json:"address,omitempty" bson:"address,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`

	Contacts []CompanyContact `json:"contacts,omitempty" bson:"contacts,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
