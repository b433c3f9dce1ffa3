// Package inspsvc - Test dựng filter Mongo cho danh sách hồ sơ thanh tra.
package inspsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterEmpty(t *testing.T) {
	filter := buildFilter(InspectionListQuery{})
	if len(filter) != 0 {
		t.Errorf("query rỗng phải tạo filter rỗng, got %v", filter)
	}
}

func TestBuildFilterStateExactCitySearchRegex(t *testing.T) {
	filter := buildFilter(InspectionListQuery{State: "TX", City: "Houston", Search: "Acme (Inc)"})

	if filter["siteState"] != "TX" {
		t.Errorf("siteState phải so khớp chính xác, got %v", filter["siteState"])
	}

	search, ok := filter["estabName"].(bson.M)
	if !ok {
		t.Fatalf("estabName phải là filter $regex, got %T", filter["estabName"])
	}
	re, ok := search["$regex"].(primitive.Regex)
	if !ok {
		t.Fatalf("estabName phải dùng primitive.Regex, got %T", search["$regex"])
	}
	if re.Options != "i" {
		t.Errorf("search phải case-insensitive, options = %q", re.Options)
	}
	if re.Pattern != `Acme \(Inc\)` {
		t.Errorf("ký tự đặc biệt regex phải được escape, pattern = %q", re.Pattern)
	}
}

func TestBuildFilterPenaltyRangeMergesHasViolations(t *testing.T) {
	minP := 1000.0
	maxP := 50000.0
	hasV := true
	filter := buildFilter(InspectionListQuery{MinPenalty: &minP, MaxPenalty: &maxP, HasViolations: &hasV})

	penalty, ok := filter["totalCurrentPenalty"].(bson.M)
	if !ok {
		t.Fatalf("totalCurrentPenalty phải là bson.M, got %T", filter["totalCurrentPenalty"])
	}
	// has_violations=true phải merge vào cùng filter penalty, không ghi đè min/max
	if penalty["$gte"] != minP || penalty["$lte"] != maxP {
		t.Errorf("min/max penalty bị mất khi kết hợp has_violations: %v", penalty)
	}
	if penalty["$gt"] != float64(0) {
		t.Errorf("has_violations=true phải thêm $gt 0, got %v", penalty)
	}
}

func TestBuildFilterHasViolationsFalse(t *testing.T) {
	hasV := false
	filter := buildFilter(InspectionListQuery{HasViolations: &hasV})

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("has_violations=false phải dùng $or cho field thiếu hoặc bằng 0, got %v", filter)
	}
	if _, exists := filter["totalCurrentPenalty"]; exists {
		t.Error("has_violations=false không được ghi thêm filter totalCurrentPenalty")
	}
}

func TestBuildFilterDateRange(t *testing.T) {
	start := int64(1_600_000_000_000)
	end := int64(1_700_000_000_000)
	filter := buildFilter(InspectionListQuery{StartDate: &start, EndDate: &end})

	dates, ok := filter["openDate"].(bson.M)
	if !ok {
		t.Fatalf("openDate phải là bson.M, got %T", filter["openDate"])
	}
	if dates["$gte"] != start || dates["$lte"] != end {
		t.Errorf("khoảng openDate sai: %v", dates)
	}
}

func TestInspectionSortFieldsWhitelist(t *testing.T) {
	if _, ok := inspectionSortFields["open_date"]; !ok {
		t.Error("whitelist sort thiếu open_date")
	}
	// violation_count sort theo tiền phạt làm proxy
	if inspectionSortFields["violation_count"] != "totalCurrentPenalty" {
		t.Errorf("violation_count phải map sang totalCurrentPenalty, got %q", inspectionSortFields["violation_count"])
	}
	if _, ok := inspectionSortFields["activityNr"]; ok {
		t.Error("field ngoài whitelist không được xuất hiện")
	}
}
