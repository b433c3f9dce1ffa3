// Package models - Test các string type đóng của domain CRM.
package models

import "testing"

func TestProspectStatusIsValid(t *testing.T) {
	for _, s := range AllProspectStatuses {
		if !s.IsValid() {
			t.Errorf("trạng thái %q phải hợp lệ", s)
		}
	}
	for _, s := range []ProspectStatus{"", "WON", "pending", "new lead"} {
		if s.IsValid() {
			t.Errorf("trạng thái %q không được coi là hợp lệ", s)
		}
	}
}

func TestProspectStatusIsOpen(t *testing.T) {
	open := []ProspectStatus{ProspectStatusNewLead, ProspectStatusContacted, ProspectStatusQualified}
	for _, s := range open {
		if !s.IsOpen() {
			t.Errorf("trạng thái %q phải là open", s)
		}
	}
	closed := []ProspectStatus{ProspectStatusWon, ProspectStatusLost, ""}
	for _, s := range closed {
		if s.IsOpen() {
			t.Errorf("trạng thái %q không được là open", s)
		}
	}
}

func TestActivityTypeIsValid(t *testing.T) {
	for _, a := range AllActivityTypes {
		if !a.IsValid() {
			t.Errorf("loại hoạt động %q phải hợp lệ", a)
		}
	}
	if ActivityType("sms").IsValid() {
		t.Error("loại hoạt động sms không được coi là hợp lệ")
	}
	if ActivityType("").IsValid() {
		t.Error("loại hoạt động rỗng không được coi là hợp lệ")
	}
}

func TestActivityTypeIsContact(t *testing.T) {
	contact := []ActivityType{ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting}
	for _, a := range contact {
		if !a.IsContact() {
			t.Errorf("loại hoạt động %q phải là tiếp xúc", a)
		}
	}
	// note và task là ghi chú nội bộ, không chuyển trạng thái prospect
	if ActivityTypeNote.IsContact() {
		t.Error("note không được coi là tiếp xúc")
	}
	if ActivityTypeTask.IsContact() {
		t.Error("task không được coi là tiếp xúc")
	}
}

func TestCallbackStatusIsValid(t *testing.T) {
	for _, s := range AllCallbackStatuses {
		if !s.IsValid() {
			t.Errorf("trạng thái callback %q phải hợp lệ", s)
		}
	}
	if CallbackStatus("done").IsValid() {
		t.Error("trạng thái callback done không được coi là hợp lệ")
	}
}

func TestCallbackIsOverdue(t *testing.T) {
	now := int64(1_700_000_000_000)

	cb := CrmCallback{Status: CallbackStatusPending, CallbackDate: now - 1}
	if !cb.IsOverdue(now) {
		t.Error("callback pending với callbackDate trong quá khứ phải là overdue")
	}

	cb = CrmCallback{Status: CallbackStatusPending, CallbackDate: now + 60_000}
	if cb.IsOverdue(now) {
		t.Error("callback pending trong tương lai không được là overdue")
	}

	// Overdue chỉ áp dụng cho pending, completed/cancelled giữ nguyên false
	cb = CrmCallback{Status: CallbackStatusCompleted, CallbackDate: now - 1}
	if cb.IsOverdue(now) {
		t.Error("callback completed không được là overdue")
	}
	cb = CrmCallback{Status: CallbackStatusCancelled, CallbackDate: now - 1}
	if cb.IsOverdue(now) {
		t.Error("callback cancelled không được là overdue")
	}

	// Đúng mốc thời gian thì chưa quá hạn
	cb = CrmCallback{Status: CallbackStatusPending, CallbackDate: now}
	if cb.IsOverdue(now) {
		t.Error("callback đúng mốc nowMs chưa được tính là overdue")
	}
}
