// Package dto - Test các rule validate trên input prospect.
package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
)

func init() {
	global.InitValidator()
}

func TestCrmProspectCreateInputValidation(t *testing.T) {
	input := CrmProspectCreateInput{
		InspectionId: "672a1b2c3d4e5f6a7b8c9d0e",
		Status:       "new_lead",
		Priority:     "high",
		Notes:        "Gọi lại sau 2 tuần",
	}
	require.NoError(t, global.Validate.Struct(input))
}

func TestCrmProspectCreateInputRequiresInspectionId(t *testing.T) {
	err := global.Validate.Struct(CrmProspectCreateInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InspectionId")
}

func TestCrmProspectCreateInputRejectsBadObjectID(t *testing.T) {
	// Sai độ dài
	err := global.Validate.Struct(CrmProspectCreateInput{InspectionId: "abc123"})
	assert.Error(t, err)

	// Đủ 24 ký tự nhưng không phải hex
	err = global.Validate.Struct(CrmProspectCreateInput{InspectionId: "zzzzzzzzzzzzzzzzzzzzzzzz"})
	assert.Error(t, err)
}

func TestCrmProspectCreateInputRejectsUnknownStatus(t *testing.T) {
	input := CrmProspectCreateInput{
		InspectionId: "672a1b2c3d4e5f6a7b8c9d0e",
		Status:       "archived",
	}
	assert.Error(t, global.Validate.Struct(input))
}

func TestCrmProspectInputRejectsXSS(t *testing.T) {
	input := CrmProspectCreateInput{
		InspectionId: "672a1b2c3d4e5f6a7b8c9d0e",
		Notes:        "<script>alert(1)</script>",
	}
	assert.Error(t, global.Validate.Struct(input))

	bad := "javascript:void(0)"
	update := CrmProspectUpdateInput{NextAction: &bad}
	assert.Error(t, global.Validate.Struct(update))
}

func TestCrmProspectUpdateInputAllNilIsValid(t *testing.T) {
	// Input toàn nil hợp lệ ở tầng validate; service mới là nơi từ chối update rỗng
	assert.NoError(t, global.Validate.Struct(CrmProspectUpdateInput{}))
}
