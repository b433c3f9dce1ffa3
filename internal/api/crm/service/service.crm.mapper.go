// Package crmvc - Mapper model -> response dùng chung trong domain CRM.
package crmvc

import (
	"regexp"
	"time"

	crmdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/dto"
	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/utility"
)

// toActivityResponse map activity model sang response.
func toActivityResponse(a *crmmodels.CrmActivity) crmdto.CrmActivityResponse {
	return crmdto.CrmActivityResponse{
		Id:                utility.ObjectID2String(a.ID),
		ProspectId:        utility.ObjectID2String(a.ProspectId),
		ActivityType:      a.Type,
		Subject:           a.Subject,
		Description:       a.Description,
		Outcome:           a.Outcome,
		ActivityDate:      a.ActivityDate,
		DurationMinutes:   a.DurationMinutes,
		TaskDueDate:       a.TaskDueDate,
		TaskCompleted:     a.TaskCompleted,
		TaskCompletedDate: a.TaskCompletedDate,
		CreatedAt:         a.CreatedAt,
	}
}

// toCallbackResponse map callback model sang response; overdue tính theo nowMs.
func toCallbackResponse(c *crmmodels.CrmCallback, nowMs int64) crmdto.CrmCallbackResponse {
	return crmdto.CrmCallbackResponse{
		Id:           utility.ObjectID2String(c.ID),
		ProspectId:   utility.ObjectID2String(c.ProspectId),
		CallbackDate: c.CallbackDate,
		CallbackType: c.CallbackType,
		Notes:        c.Notes,
		Status:       c.Status,
		CompletedAt:  c.CompletedAt,
		CreatedAt:    c.CreatedAt,
		Overdue:      c.IsOverdue(nowMs),
	}
}

// nowMillis tách riêng để test có thể so mốc thời gian nhất quán.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// regexQuoteMeta escape ký tự đặc biệt regex trong chuỗi tìm kiếm của user.
func regexQuoteMeta(s string) string {
	return regexp.QuoteMeta(s)
}
