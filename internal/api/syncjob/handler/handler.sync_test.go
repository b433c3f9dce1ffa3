package synchdl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	basesvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/service"
	syncmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/syncjob/models"
	syncsvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/syncjob/service"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/ingest"
)

func TestRunDownloadDongRunKhiPanic(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("panic của downloader vẫn đóng run thành failed", func(mt *mtest.T) {
		runID := primitive.NewObjectID()
		svc := &syncsvc.SyncRunService{
			BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[syncmodels.SyncRun](
				mt.DB.Collection(global.MongoDB_ColNames.SyncRuns)),
		}
		h := &SyncHandler{
			SyncRunService: svc,
			download: func(ctx context.Context) *ingest.Result {
				panic("chrome chết giữa chừng")
			},
		}

		// findAndModify của Finish trả về run đã đóng
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: runID},
			{Key: "jobName", Value: "osha_csv_download"},
			{Key: "status", Value: string(syncmodels.SyncStatusFailed)},
		}}))

		// Run bỏ dở ở trạng thái running sẽ chặn mọi lần sync sau,
		// nên runDownload không được phép thoát mà chưa gọi Finish
		require.NotPanics(mt, func() { h.runDownload(runID) })

		finished := false
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "findAndModify" {
				continue
			}
			finished = true
			status := evt.Command.Lookup("update", "$set", "status")
			assert.Equal(mt, string(syncmodels.SyncStatusFailed), status.StringValue(),
				"run phải được đóng với trạng thái failed")
		}
		assert.True(mt, finished, "Finish phải được gọi dù downloader panic")
	})
}
