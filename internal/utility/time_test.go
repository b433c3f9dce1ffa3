package utility

import (
	"testing"
	"time"
)

func TestStartOfDayEndOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 15, 13, 45, 52, 123_000_000, time.UTC)

	start := StartOfDay(ts)
	wantStart := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	if start != wantStart {
		t.Errorf("StartOfDay = %d, muốn %d", start, wantStart)
	}

	end := EndOfDay(ts)
	wantEnd := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).UnixMilli()
	if end != wantEnd {
		t.Errorf("EndOfDay = %d, muốn %d", end, wantEnd)
	}

	// [start, end) phải phủ đúng 24 giờ
	if end-start != 24*int64(time.Hour/time.Millisecond) {
		t.Errorf("khoảng ngày dài %d ms, muốn 24 giờ", end-start)
	}
}

func TestStartOfMonth(t *testing.T) {
	ts := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)
	got := StartOfMonth(ts)
	want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got != want {
		t.Errorf("StartOfMonth = %d, muốn %d", got, want)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2025, 4, time.UTC)
	wantStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if start != wantStart || end != wantEnd {
		t.Errorf("MonthRange(2025, 4) = (%d, %d), muốn (%d, %d)", start, end, wantStart, wantEnd)
	}
}

func TestMonthRangeDecemberRollsToJanuary(t *testing.T) {
	start, end := MonthRange(2025, 12, time.UTC)
	wantStart := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if start != wantStart {
		t.Errorf("start = %d, muốn %d", start, wantStart)
	}
	if end != wantEnd {
		t.Errorf("end tháng 12 phải là đầu tháng 1 năm sau: %d, muốn %d", end, wantEnd)
	}
}

func TestMonthRangeNilLocationDefaultsUTC(t *testing.T) {
	start, _ := MonthRange(2025, 6, nil)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if start != want {
		t.Errorf("loc nil phải fallback UTC: start = %d, muốn %d", start, want)
	}
}
