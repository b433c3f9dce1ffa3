package crmvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	basesvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/service"
	crmdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/dto"
	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
)

func init() {
	global.InitValidator()
}

// newMockProspectService dựng service trên các collection của mock deployment,
// bỏ qua registry để test không cần kết nối MongoDB thật.
func newMockProspectService(mt *mtest.T) *CrmProspectService {
	return &CrmProspectService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmProspect](
			mt.DB.Collection(global.MongoDB_ColNames.CrmProspects)),
		inspectionColl: mt.DB.Collection(global.MongoDB_ColNames.Inspections),
		activityColl:   mt.DB.Collection(global.MongoDB_ColNames.CrmActivities),
		callbackColl:   mt.DB.Collection(global.MongoDB_ColNames.CrmCallbacks),
	}
}

func TestCrmProspectServiceCreateTrungInspection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key trả về conflict", func(mt *mtest.T) {
		svc := newMockProspectService(mt)
		inspID := primitive.NewObjectID()

		// Inspection tồn tại, insert đập vào unique index inspectionId
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "osha_tracker.inspections", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: inspID},
				{Key: "estabName", Value: "Acme Fabrication LLC"},
				{Key: "siteState", Value: "TX"},
			}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: crm_prospects index: prospect_inspection_unique",
			}),
		)

		_, err := svc.Create(context.Background(), &crmdto.CrmProspectCreateInput{InspectionId: inspID.Hex()})
		require.Error(mt, err, "insert trùng inspection phải lỗi")

		var appErr *common.Error
		require.True(mt, errors.As(err, &appErr), "lỗi phải là *common.Error, nhận %v", err)
		assert.Equal(mt, common.StatusConflict, appErr.StatusCode)
	})

	mt.Run("inspection không tồn tại trả về 404", func(mt *mtest.T) {
		svc := newMockProspectService(mt)

		// Cursor rỗng: không có inspection nào khớp
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "osha_tracker.inspections", mtest.FirstBatch))

		_, err := svc.Create(context.Background(), &crmdto.CrmProspectCreateInput{
			InspectionId: primitive.NewObjectID().Hex(),
		})
		require.Error(mt, err)

		var appErr *common.Error
		require.True(mt, errors.As(err, &appErr), "lỗi phải là *common.Error, nhận %v", err)
		assert.Equal(mt, common.StatusNotFound, appErr.StatusCode)
	})
}

func TestCrmProspectServiceUpdatePartialChiGhiFieldGui(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("chỉ $set field được gửi lên", func(mt *mtest.T) {
		svc := newMockProspectService(mt)
		id := primitive.NewObjectID()
		inspID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "inspectionId", Value: inspID},
				{Key: "status", Value: "new_lead"},
				{Key: "priority", Value: "high"},
			}}),
			mtest.CreateCursorResponse(0, "osha_tracker.inspections", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: inspID},
				{Key: "estabName", Value: "Acme Fabrication LLC"},
			}),
			mtest.CreateCursorResponse(0, "osha_tracker.crm_activities", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, "osha_tracker.crm_callbacks", mtest.FirstBatch),
		)

		priority := "high"
		_, err := svc.UpdatePartial(context.Background(), id, &crmdto.CrmProspectUpdateInput{Priority: &priority})
		require.NoError(mt, err)

		// $set chỉ được chứa field client gửi cộng updatedAt,
		// các field nil phải giữ nguyên giá trị trong DB
		var setKeys []string
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "findAndModify" {
				continue
			}
			elements, err := evt.Command.Lookup("update", "$set").Document().Elements()
			require.NoError(mt, err)
			for _, el := range elements {
				setKeys = append(setKeys, el.Key())
			}
		}
		assert.ElementsMatch(mt, []string{"priority", "updatedAt"}, setKeys)
	})
}

func TestCrmProspectServiceDeleteCascade(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("xóa cả cây trong một transaction", func(mt *mtest.T) {
		svc := newMockProspectService(mt)
		savedClient := global.MongoDB_Session
		global.MongoDB_Session = mt.Client
		defer func() { global.MongoDB_Session = savedClient }()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}), // activities
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}), // callbacks
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}), // prospect
			mtest.CreateSuccessResponse(),                           // commitTransaction
		)

		require.NoError(mt, svc.DeleteCascade(context.Background(), primitive.NewObjectID()))

		// Phải xóa ở cả ba collection, không để sót orphan, và commit transaction
		var deleteTargets []string
		committed := false
		for _, evt := range mt.GetAllStartedEvents() {
			switch evt.CommandName {
			case "delete":
				deleteTargets = append(deleteTargets, evt.Command.Lookup("delete").StringValue())
			case "commitTransaction":
				committed = true
			}
		}
		assert.Equal(mt, []string{
			global.MongoDB_ColNames.CrmActivities,
			global.MongoDB_ColNames.CrmCallbacks,
			global.MongoDB_ColNames.CrmProspects,
		}, deleteTargets)
		assert.True(mt, committed, "transaction phải được commit")
	})

	mt.Run("prospect không tồn tại thì abort và trả về not found", func(mt *mtest.T) {
		svc := newMockProspectService(mt)
		savedClient := global.MongoDB_Session
		global.MongoDB_Session = mt.Client
		defer func() { global.MongoDB_Session = savedClient }()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}), // activities
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}), // callbacks
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}), // prospect: không có gì để xóa
			mtest.CreateSuccessResponse(),                           // abortTransaction
		)

		err := svc.DeleteCascade(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.True(mt, common.IsNotFound(err), "phải là lỗi not found, nhận %v", err)

		aborted := false
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "abortTransaction" {
				aborted = true
			}
		}
		assert.True(mt, aborted, "transaction phải bị abort khi prospect không tồn tại")
	})
}
