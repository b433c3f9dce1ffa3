// Package epamodels chứa model vụ việc cưỡng chế EPA (ECHO).
package epamodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// EPACase là một vụ cưỡng chế môi trường lấy từ EPA ECHO.
// CaseNumber là khóa nghiệp vụ duy nhất (unique index trong migration).
type EPACase struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CaseNumber string             `json:"case_number" bson:"caseNumber"`
	CaseName   string             `json:"case_name" bson:"caseName"`
	CaseType   string             `json:"case_type" bson:"caseType"`
	Status     string             `json:"status" bson:"status"` // open | settlement | closed | unknown

	FacilityName  string `json:"facility_name" bson:"facilityName"`
	FacilityCity  string `json:"facility_city" bson:"facilityCity"`
	FacilityState string `json:"facility_state" bson:"facilityState"`
	FacilityZip   string `json:"facility_zip" bson:"facilityZip"`

	// Cờ luật liên quan, mỗi vụ có thể dính nhiều luật
	CAA    bool `json:"caa" bson:"caa"`       // Clean Air Act
	CWA    bool `json:"cwa" bson:"cwa"`       // Clean Water Act
	RCRA   bool `json:"rcra" bson:"rcra"`     // Resource Conservation and Recovery Act
	SDWA   bool `json:"sdwa" bson:"sdwa"`     // Safe Drinking Water Act
	TSCA   bool `json:"tsca" bson:"tsca"`     // Toxic Substances Control Act
	FIFRA  bool `json:"fifra" bson:"fifra"`   // Federal Insecticide, Fungicide, and Rodenticide Act
	EPCRA  bool `json:"epcra" bson:"epcra"`   // Emergency Planning and Community Right-to-Know Act
	CERCLA bool `json:"cercla" bson:"cercla"` // Superfund

	FedPenalty        float64 `json:"fed_penalty" bson:"fedPenalty"`
	StateLocalPenalty float64 `json:"state_local_penalty" bson:"stateLocalPenalty"`
	TotalPenalty      float64 `json:"total_penalty" bson:"totalPenalty"`
	CompliActionCost  float64 `json:"compli_action_cost" bson:"compliActionCost"`

	FiledDate      *int64 `json:"filed_date,omitempty" bson:"filedDate,omitempty"`           // Unix ms
	SettlementDate *int64 `json:"settlement_date,omitempty" bson:"settlementDate,omitempty"` // Unix ms

	CreatedAt int64 `json:"created_at" bson:"createdAt"`
	UpdatedAt int64 `json:"updated_at" bson:"updatedAt"`
}

// LawFlags liệt kê tên query param của từng cờ luật, dùng cho filter và stats.
var LawFlags = []string{"caa", "cwa", "rcra", "sdwa", "tsca", "fifra", "epcra", "cercla"}

// EPACaseStatuses là các trạng thái hợp lệ của vụ việc.
var EPACaseStatuses = []string{"open", "settlement", "closed", "unknown"}
