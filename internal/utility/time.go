package utility

import (
	"time"
)

// StartOfDay trả về 00:00:00 của ngày chứa t (Unix ms).
func StartOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).UnixMilli()
}

// EndOfDay trả về 00:00:00 của ngày kế tiếp (Unix ms). Dùng làm cận trên exclusive.
func EndOfDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).UnixMilli()
}

// StartOfMonth trả về 00:00:00 ngày đầu tháng chứa t (Unix ms).
func StartOfMonth(t time.Time) int64 {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).UnixMilli()
}

// MonthRange trả về [start, end) của một tháng cụ thể tính theo Unix ms.
// month theo quy ước 1-12.
func MonthRange(year int, month int, loc *time.Location) (int64, int64) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)
	return start.UnixMilli(), end.UnixMilli()
}
