// Package syncsvc quản lý vòng đời các lần chạy đồng bộ dữ liệu.
package syncsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/service"
	syncmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/syncjob/models"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
)

// SyncRunService xử lý nghiệp vụ sync run.
type SyncRunService struct {
	*basesvc.BaseServiceMongoImpl[syncmodels.SyncRun]
}

// NewSyncRunService tạo SyncRunService mới.
func NewSyncRunService() (*SyncRunService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SyncRuns)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.SyncRuns, common.ErrNotFound)
	}
	return &SyncRunService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[syncmodels.SyncRun](coll),
	}, nil
}

// Start ghi một lần chạy mới ở trạng thái running.
func (s *SyncRunService) Start(ctx context.Context, jobName string) (*syncmodels.SyncRun, error) {
	run := syncmodels.SyncRun{
		JobName:   jobName,
		Status:    syncmodels.SyncStatusRunning,
		StartedAt: time.Now().UnixMilli(),
	}
	created, err := s.InsertOne(ctx, run)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Finish đóng một lần chạy với trạng thái success hoặc failed.
// runErr khác nil thì trạng thái là failed và message được lưu lại.
func (s *SyncRunService) Finish(ctx context.Context, id primitive.ObjectID, details string, runErr error) error {
	now := time.Now().UnixMilli()
	set := bson.M{
		"finishedAt": now,
		"details":    details,
	}
	if runErr != nil {
		set["status"] = syncmodels.SyncStatusFailed
		set["error"] = runErr.Error()
	} else {
		set["status"] = syncmodels.SyncStatusSuccess
	}
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
	return err
}

// Latest trả về lần chạy gần nhất, nil nếu chưa có lần nào.
func (s *SyncRunService) Latest(ctx context.Context) (*syncmodels.SyncRun, error) {
	run, err := s.FindOne(ctx, bson.M{}, options.FindOne().
		SetSort(bson.D{{Key: "startedAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		if common.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// History trả về các lần chạy gần nhất, mới trước.
func (s *SyncRunService) History(ctx context.Context, limit int64) ([]syncmodels.SyncRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "startedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit))
}

// IsRunning báo có lần chạy nào đang ở trạng thái running hay không.
func (s *SyncRunService) IsRunning(ctx context.Context) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"status": syncmodels.SyncStatusRunning})
}
