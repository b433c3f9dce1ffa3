// Package crmvc - Test mapper callback, overdue tính tại thời điểm đọc.
package crmvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
)

func TestToCallbackResponseOverdue(t *testing.T) {
	now := int64(1_700_000_000_000)
	cb := &crmmodels.CrmCallback{
		ID:           primitive.NewObjectID(),
		ProspectId:   primitive.NewObjectID(),
		CallbackDate: now - 1000,
		CallbackType: "call",
		Status:       crmmodels.CallbackStatusPending,
	}

	resp := toCallbackResponse(cb, now)
	if !resp.Overdue {
		t.Error("callback pending quá hạn phải có Overdue = true")
	}
	if resp.Id != cb.ID.Hex() {
		t.Errorf("Id = %q, muốn %q", resp.Id, cb.ID.Hex())
	}

	cb.Status = crmmodels.CallbackStatusCompleted
	resp = toCallbackResponse(cb, now)
	if resp.Overdue {
		t.Error("callback completed không được đánh dấu Overdue")
	}
}

func TestRegexQuoteMeta(t *testing.T) {
	got := regexQuoteMeta("a.b(c)")
	if got != `a\.b\(c\)` {
		t.Errorf("regexQuoteMeta = %q, ký tự đặc biệt phải được escape", got)
	}
}

func TestApplyUpcomingCallbackFilter(t *testing.T) {
	ids := []interface{}{primitive.NewObjectID(), primitive.NewObjectID()}

	filter := bson.M{}
	if empty := applyUpcomingCallbackFilter(filter, ids, true); empty {
		t.Fatal("có prospect khớp thì kết quả không được coi là rỗng")
	}
	cond, ok := filter["_id"].(bson.M)
	if !ok || cond["$in"] == nil {
		t.Errorf("muốn lọc $in theo _id, nhận %v", filter)
	}

	filter = bson.M{}
	if empty := applyUpcomingCallbackFilter(filter, ids, false); empty {
		t.Fatal("lọc loại trừ không bao giờ làm kết quả rỗng")
	}
	cond, ok = filter["_id"].(bson.M)
	if !ok || cond["$nin"] == nil {
		t.Errorf("muốn lọc $nin theo _id, nhận %v", filter)
	}

	// Muốn có upcoming callback nhưng không prospect nào có
	filter = bson.M{}
	if empty := applyUpcomingCallbackFilter(filter, nil, true); !empty {
		t.Error("không có prospect nào khớp thì kết quả phải rỗng")
	}

	// Không prospect nào có callback và client muốn loại trừ: giữ nguyên filter
	filter = bson.M{}
	if empty := applyUpcomingCallbackFilter(filter, nil, false); empty || len(filter) != 0 {
		t.Errorf("không có gì để loại trừ thì filter phải giữ nguyên, nhận %v", filter)
	}
}

func TestTasksDueTodayFilterBienNgay(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	filter := tasksDueTodayFilter(now)

	due, ok := filter["taskDueDate"].(bson.M)
	if !ok {
		t.Fatalf("thiếu điều kiện taskDueDate, nhận %v", filter)
	}
	start := due["$gte"].(int64)
	end, ok := due["$lt"].(int64)
	if !ok {
		t.Fatal("cận trên phải là $lt, nửa đêm ngày mai không thuộc hôm nay")
	}
	if end-start != int64(24*time.Hour/time.Millisecond) {
		t.Errorf("cửa sổ phải đúng 24h, nhận %d ms", end-start)
	}
}
