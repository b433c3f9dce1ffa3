// Package epasvc - Test dựng filter Mongo cho danh sách vụ việc EPA.
package epasvc

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
)

func TestBuildFilterLawFlag(t *testing.T) {
	s := &EPACaseService{}

	filter, err := s.buildFilter(EPACaseListQuery{Law: "rcra"})
	if err != nil {
		t.Fatalf("law hợp lệ không được trả lỗi: %v", err)
	}
	if filter["rcra"] != true {
		t.Errorf("law=rcra phải tạo filter rcra=true, got %v", filter)
	}
}

func TestBuildFilterInvalidLawRejected(t *testing.T) {
	s := &EPACaseService{}

	_, err := s.buildFilter(EPACaseListQuery{Law: "osha"})
	if err == nil {
		t.Fatal("law ngoài danh sách cờ luật phải bị từ chối")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi phải là *common.Error, got %T", err)
	}
	if appErr.StatusCode != common.StatusBadRequest {
		t.Errorf("status = %d, muốn 400", appErr.StatusCode)
	}
}

func TestBuildFilterInvalidStatusRejected(t *testing.T) {
	s := &EPACaseService{}

	if _, err := s.buildFilter(EPACaseListQuery{Status: "archived"}); err == nil {
		t.Fatal("status ngoài tập đóng phải bị từ chối")
	}
	for _, status := range []string{"open", "settlement", "closed", "unknown"} {
		filter, err := s.buildFilter(EPACaseListQuery{Status: status})
		if err != nil {
			t.Fatalf("status %q hợp lệ không được trả lỗi: %v", status, err)
		}
		if filter["status"] != status {
			t.Errorf("filter status = %v, muốn %q", filter["status"], status)
		}
	}
}

func TestBuildFilterSearchCoversCaseAndFacilityName(t *testing.T) {
	s := &EPACaseService{}

	filter, err := s.buildFilter(EPACaseListQuery{Search: "Chemical"})
	if err != nil {
		t.Fatal(err)
	}
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("search phải tìm trên caseName và facilityName, got %v", filter)
	}
}

func TestBuildFilterPenaltyAndDateRange(t *testing.T) {
	s := &EPACaseService{}
	minP := 500.0
	start := int64(1_600_000_000_000)

	filter, err := s.buildFilter(EPACaseListQuery{MinPenalty: &minP, StartDate: &start})
	if err != nil {
		t.Fatal(err)
	}
	penalty := filter["totalPenalty"].(bson.M)
	if penalty["$gte"] != minP {
		t.Errorf("min penalty sai: %v", penalty)
	}
	dates := filter["settlementDate"].(bson.M)
	if dates["$gte"] != start {
		t.Errorf("start date sai: %v", dates)
	}
}
