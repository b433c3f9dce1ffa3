// Package synchdl - Handler trạng thái sync và kích hoạt tải dữ liệu.
package synchdl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/handler"
	syncsvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/syncjob/service"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/ingest"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/logger"
)

// Chu kỳ poll store khi stream SSE.
const streamPollInterval = 2 * time.Second

// SyncHandler xử lý các route cron status, stream và sync.
type SyncHandler struct {
	SyncRunService *syncsvc.SyncRunService

	// download chạy downloader thật; tách ra thành field để test thay được
	download func(ctx context.Context) *ingest.Result
}

// NewSyncHandler tạo SyncHandler mới.
func NewSyncHandler() (*SyncHandler, error) {
	syncRunSvc, err := syncsvc.NewSyncRunService()
	if err != nil {
		return nil, fmt.Errorf("tạo SyncRunService: %w", err)
	}
	return &SyncHandler{
		SyncRunService: syncRunSvc,
		download: func(ctx context.Context) *ingest.Result {
			return ingest.NewDownloader(global.ServerConfig).Run(ctx)
		},
	}, nil
}

// HandleCronStatus xử lý GET /inspections/cron/status. Query: limit (mặc định 20).
func (h *SyncHandler) HandleCronStatus(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		limit := int64(20)
		if s := c.Query("limit"); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				limit = n
			}
		}
		runs, err := h.SyncRunService.History(c.Context(), limit)
		basehdl.HandleResponse(c, runs, err)
		return nil
	})
}

// HandleCronStream xử lý GET /inspections/cron/stream.
//
// Đẩy event cron_update qua SSE mỗi khi xuất hiện run mới hơn run client
// đã thấy. Client gửi lại query last_id để nối tiếp sau khi reconnect.
// Store được poll định kỳ, không có cơ chế push từ DB.
func (h *SyncHandler) HandleCronStream(c fiber.Ctx) error {
	lastID := c.Query("last_id")

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Response().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		log := logger.GetAppLogger()
		for {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			latest, err := h.SyncRunService.Latest(ctx)
			cancel()
			if err != nil {
				log.WithError(err).Warn("Poll sync run cho SSE stream thất bại")
			} else if latest != nil && latest.ID.Hex() != lastID {
				payload, err := json.Marshal(latest)
				if err != nil {
					log.WithError(err).Warn("Marshal sync run cho SSE stream thất bại")
				} else {
					fmt.Fprintf(w, "id: %s\n", latest.ID.Hex())
					fmt.Fprintf(w, "event: cron_update\n")
					fmt.Fprintf(w, "data: %s\n\n", payload)
					if err := w.Flush(); err != nil {
						// Client đã ngắt kết nối
						return
					}
					lastID = latest.ID.Hex()
				}
			} else {
				// Heartbeat giữ kết nối qua proxy
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
			time.Sleep(streamPollInterval)
		}
	}))
	return nil
}

// HandleSync xử lý POST /inspections/sync.
//
// Ghi một sync_run rồi chạy downloader best-effort trong goroutine riêng.
// CRON_SECRET được cấu hình thì request phải gửi header X-Cron-Secret khớp.
func (h *SyncHandler) HandleSync(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		cfg := global.ServerConfig
		if cfg.CronSecret != "" && c.Get("X-Cron-Secret") != cfg.CronSecret {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessOperation,
				"Sai cron secret", common.StatusUnauthorized, nil))
			return nil
		}

		running, err := h.SyncRunService.IsRunning(c.Context())
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if running {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessState,
				"Đang có một lần sync chạy dở", common.StatusConflict, nil))
			return nil
		}

		run, err := h.SyncRunService.Start(c.Context(), "osha_csv_download")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		go h.runDownload(run.ID)

		basehdl.HandleResponse(c, run, nil)
		return nil
	})
}

// runDownload chạy downloader và đóng sync run, độc lập với request gốc.
//
// Run LUÔN phải được đóng, kể cả khi downloader panic (rod panic khi Chrome
// chết giữa chừng). Run bỏ dở ở trạng thái running sẽ chặn mọi lần sync sau
// qua check IsRunning.
func (h *SyncHandler) runDownload(runID primitive.ObjectID) {
	log := logger.GetAppLogger()

	details := "panic"
	var runErr error
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Downloader panic")
			runErr = fmt.Errorf("downloader panic: %v", r)
		}
		finishCtx, finishCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer finishCancel()
		if err := h.SyncRunService.Finish(finishCtx, runID, details, runErr); err != nil {
			log.WithError(err).Error("Đóng sync run thất bại")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	result := h.download(ctx)

	details = result.Summary()
	if !result.Success() {
		runErr = fmt.Errorf("thiếu file CSV: %s", result.Summary())
	}
}
