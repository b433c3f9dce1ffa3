// Package ingest tải CSV enforcement data của OSHA bằng browser automation.
//
// Chạy theo kiểu best-effort: từng bước ghi log và gom lỗi vào Result.Errors
// thay vì dừng sớm, vì layout trang data catalog của DOL thay đổi thường xuyên.
// Một lần chạy chỉ được coi là thành công khi tìm thấy đủ cả hai file CSV
// trong thư mục tải về.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/ShieldSphere/osha-tracker-sub001/config"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/logger"
)

// URL tải trực tiếp khi không tìm thấy link trên trang catalog.
const (
	directInspectionURL = "https://enforcedata.dol.gov/views/data_summary.php?agency=osha&form=osha_inspection&type=csv"
	directViolationURL  = "https://enforcedata.dol.gov/views/data_summary.php?agency=osha&form=osha_violation&type=csv"
)

const downloadTimeout = 120 * time.Second

// Result là kết quả một lần chạy downloader.
type Result struct {
	InspectionCSV string   // Đường dẫn file inspection tìm thấy, rỗng nếu không có
	ViolationCSV  string   // Đường dẫn file violation tìm thấy, rỗng nếu không có
	Errors        []string // Lỗi gom lại theo từng bước
}

// Success báo cả hai file đã được tải về.
func (r *Result) Success() bool {
	return r.InspectionCSV != "" && r.ViolationCSV != ""
}

// Summary trả về chuỗi mô tả ngắn để lưu vào sync run.
func (r *Result) Summary() string {
	parts := make([]string, 0, 3)
	if r.InspectionCSV != "" {
		parts = append(parts, fmt.Sprintf("inspection=%s", filepath.Base(r.InspectionCSV)))
	} else {
		parts = append(parts, "inspection=missing")
	}
	if r.ViolationCSV != "" {
		parts = append(parts, fmt.Sprintf("violation=%s", filepath.Base(r.ViolationCSV)))
	} else {
		parts = append(parts, "violation=missing")
	}
	if len(r.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("errors=%d", len(r.Errors)))
	}
	return strings.Join(parts, ", ")
}

// Downloader tải hai file CSV của OSHA về thư mục cấu hình.
type Downloader struct {
	cfg *config.Configuration
}

// NewDownloader tạo Downloader mới.
func NewDownloader(cfg *config.Configuration) *Downloader {
	return &Downloader{cfg: cfg}
}

// Run thực hiện một lần tải. Không trả error, mọi lỗi nằm trong Result.
func (d *Downloader) Run(ctx context.Context) *Result {
	log := logger.GetAppLogger()
	result := &Result{}

	downloadDir, err := filepath.Abs(d.cfg.IngestDownloadDir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("resolve download dir: %v", err))
		return result
	}
	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("create download dir: %v", err))
		return result
	}

	l := launcher.New().Headless(d.cfg.IngestHeadless)
	controlURL, err := l.Launch()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("launch browser: %v", err))
		return result
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("connect browser: %v", err))
		return result
	}
	defer browser.Close()

	// Chrome mặc định hỏi nơi lưu, ép tải thẳng vào downloadDir
	_ = proto.BrowserSetDownloadBehavior{
		Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
		DownloadPath: downloadDir,
	}.Call(browser)

	log.WithField("url", d.cfg.IngestCatalogURL).Info("Bắt đầu tải CSV OSHA")

	d.downloadOne(browser, downloadDir, "inspection", directInspectionURL, result)
	d.downloadOne(browser, downloadDir, "violation", directViolationURL, result)

	result.InspectionCSV = findDownloadedFile(downloadDir, "inspection")
	result.ViolationCSV = findDownloadedFile(downloadDir, "violation")

	log.WithFields(logrus.Fields{
		"inspection": result.InspectionCSV,
		"violation":  result.ViolationCSV,
		"errors":     len(result.Errors),
	}).Info("Kết thúc tải CSV OSHA")

	return result
}

// downloadOne mở trang catalog, tìm link theo fileType và click.
// Không thấy link thì thử URL tải trực tiếp.
func (d *Downloader) downloadOne(browser *rod.Browser, downloadDir, fileType, directURL string, result *Result) {
	log := logger.GetAppLogger()

	page, err := browser.Page(proto.TargetCreateTarget{URL: d.cfg.IngestCatalogURL})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: open catalog: %v", fileType, err))
		return
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: wait load: %v", fileType, err))
	}
	time.Sleep(3 * time.Second)

	// Mở mục OSHA trong menu trái, bỏ qua nếu không thấy
	if osha, err := page.ElementR("a", "OSHA"); err == nil {
		if err := osha.Click(proto.InputMouseButtonLeft, 1); err == nil {
			time.Sleep(2 * time.Second)
		}
	} else {
		log.WithField("type", fileType).Warn("Không thấy menu OSHA trên trang catalog")
	}

	clicked := false
	selectors := []string{
		fmt.Sprintf(`a[href*="%s"][href*="csv"]`, fileType),
		fmt.Sprintf(`a[href*="%s"]`, fileType),
	}
	for _, selector := range selectors {
		link, err := page.Element(selector)
		if err != nil {
			continue
		}
		if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: click link: %v", fileType, err))
			continue
		}
		clicked = true
		break
	}

	if !clicked {
		log.WithField("type", fileType).Info("Không thấy link trên catalog, thử URL trực tiếp")
		if err := page.Navigate(directURL); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: direct url: %v", fileType, err))
			return
		}
	}

	if !waitForDownload(downloadDir, fileType, downloadTimeout) {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: download không hoàn tất sau %s", fileType, downloadTimeout))
	}
}

// waitForDownload chờ đến khi hết file tải dở và file khớp fileType xuất hiện.
func waitForDownload(downloadDir, fileType string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		partials, _ := filepath.Glob(filepath.Join(downloadDir, "*.crdownload"))
		tmps, _ := filepath.Glob(filepath.Join(downloadDir, "*.tmp"))
		if len(partials) == 0 && len(tmps) == 0 {
			if findDownloadedFile(downloadDir, fileType) != "" {
				return true
			}
		}
		time.Sleep(2 * time.Second)
	}
	return false
}

// findDownloadedFile trả về file mới nhất khớp fileType, rỗng nếu không có.
func findDownloadedFile(downloadDir, fileType string) string {
	patterns := []string{
		fmt.Sprintf("*%s*.csv", fileType),
		fmt.Sprintf("*%s*.zip", fileType),
		fmt.Sprintf("osha_%s*.csv", fileType),
	}

	var latestFile string
	var latestTime time.Time
	for _, pattern := range patterns {
		matches, _ := filepath.Glob(filepath.Join(downloadDir, pattern))
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = match
			}
		}
	}
	return latestFile
}
