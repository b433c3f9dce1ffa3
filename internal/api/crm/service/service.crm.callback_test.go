// Package crmvc - Test dựng nextAction từ lịch hẹn.
package crmvc

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildNextAction(t *testing.T) {
	got := buildNextAction("call", "Hỏi lại về báo giá")
	if got != "call: Hỏi lại về báo giá" {
		t.Errorf("buildNextAction = %q", got)
	}
}

func TestBuildNextActionDefaults(t *testing.T) {
	got := buildNextAction("", "")
	if got != "Follow-up: Scheduled callback" {
		t.Errorf("type và notes rỗng phải dùng mặc định, got %q", got)
	}

	got = buildNextAction("email", "")
	if got != "email: Scheduled callback" {
		t.Errorf("notes rỗng phải dùng 'Scheduled callback', got %q", got)
	}
}

func TestBuildNextActionTruncatesLongNotes(t *testing.T) {
	notes := strings.Repeat("x", 120)
	got := buildNextAction("meeting", notes)
	want := "meeting: " + strings.Repeat("x", 50)
	if got != want {
		t.Errorf("notes dài phải cắt còn 50 ký tự, got %d ký tự sau prefix", len(got)-len("meeting: "))
	}
}

func TestBuildNextActionTruncatesOnRuneBoundary(t *testing.T) {
	// Tiếng Việt có dấu nhiều byte một ký tự, cắt theo byte sẽ chém đôi ký tự
	notes := strings.Repeat("ế", 60)
	got := buildNextAction("call", notes)
	want := "call: " + strings.Repeat("ế", 50)
	if got != want {
		t.Errorf("phải cắt theo rune, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Error("kết quả sau khi cắt phải là UTF-8 hợp lệ")
	}
}
