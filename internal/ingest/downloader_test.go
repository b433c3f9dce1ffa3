package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResultSuccess(t *testing.T) {
	r := &Result{}
	if r.Success() {
		t.Error("kết quả rỗng không được coi là thành công")
	}

	r.InspectionCSV = "/data/osha_inspection.csv"
	if r.Success() {
		t.Error("thiếu violation CSV thì chưa thành công")
	}

	r.ViolationCSV = "/data/osha_violation.csv"
	if !r.Success() {
		t.Error("đủ hai file phải là thành công")
	}

	// Có lỗi lẻ tẻ nhưng đủ file vẫn tính là thành công (best effort)
	r.Errors = append(r.Errors, "click link: timeout")
	if !r.Success() {
		t.Error("lỗi từng bước không làm hỏng kết quả khi đủ file")
	}
}

func TestResultSummary(t *testing.T) {
	r := &Result{InspectionCSV: "/tmp/data/osha_inspection.csv"}
	s := r.Summary()
	if !strings.Contains(s, "inspection=osha_inspection.csv") {
		t.Errorf("summary thiếu tên file inspection: %q", s)
	}
	if !strings.Contains(s, "violation=missing") {
		t.Errorf("summary phải báo violation thiếu: %q", s)
	}

	r.Errors = []string{"a", "b"}
	if !strings.Contains(r.Summary(), "errors=2") {
		t.Errorf("summary phải đếm số lỗi: %q", r.Summary())
	}
}

func TestFindDownloadedFile(t *testing.T) {
	dir := t.TempDir()

	if got := findDownloadedFile(dir, "inspection"); got != "" {
		t.Errorf("thư mục rỗng phải trả về chuỗi rỗng, got %q", got)
	}

	older := filepath.Join(dir, "osha_inspection_2024.csv")
	newer := filepath.Join(dir, "osha_inspection_2025.csv")
	other := filepath.Join(dir, "osha_violation.csv")
	for _, f := range []string{older, other} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// mtime của file mới phải lớn hơn hẳn
	if err := os.WriteFile(newer, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	if got := findDownloadedFile(dir, "inspection"); got != newer {
		t.Errorf("phải chọn file mới nhất khớp loại: got %q, muốn %q", got, newer)
	}
	if got := findDownloadedFile(dir, "violation"); got != other {
		t.Errorf("file violation sai: got %q", got)
	}
}
