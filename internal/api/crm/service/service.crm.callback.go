// Package crmvc - Service callback CRM (crm_callbacks).
package crmvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/service"
	crmdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/dto"
	crmmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/models"
	inspmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/inspection/models"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/utility"
)

// CrmCallbackListQuery là tham số lọc danh sách callback.
type CrmCallbackListQuery struct {
	Status    string // Lọc theo trạng thái
	StartDate *int64 // Unix ms, lọc callbackDate >= StartDate
	EndDate   *int64 // Unix ms, lọc callbackDate <= EndDate
}

// CrmCallbackService xử lý nghiệp vụ lịch hẹn gọi lại.
type CrmCallbackService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmCallback]
	prospectColl   *mongo.Collection
	inspectionColl *mongo.Collection
}

// NewCrmCallbackService tạo CrmCallbackService mới.
func NewCrmCallbackService() (*CrmCallbackService, error) {
	callbackColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmCallbacks)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmCallbacks, common.ErrNotFound)
	}
	prospectColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmProspects)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmProspects, common.ErrNotFound)
	}
	inspectionColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Inspections)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Inspections, common.ErrNotFound)
	}
	return &CrmCallbackService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmCallback](callbackColl),
		prospectColl:         prospectColl,
		inspectionColl:       inspectionColl,
	}, nil
}

// Schedule đặt lịch gọi lại cho prospect, trạng thái khởi tạo là pending.
//
// Nếu lịch mới sớm hơn nextActionDate hiện tại của prospect (hoặc prospect chưa
// có nextActionDate) thì nextAction/nextActionDate của prospect được kéo về lịch này.
func (s *CrmCallbackService) Schedule(ctx context.Context, prospectID primitive.ObjectID, input *crmdto.CrmCallbackCreateInput) (*crmdto.CrmCallbackResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	var prospect crmmodels.CrmProspect
	if err := s.prospectColl.FindOne(ctx, bson.M{"_id": prospectID}).Decode(&prospect); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewError(common.ErrCodeBusinessNotFound, "Không tìm thấy prospect", common.StatusNotFound, nil)
		}
		return nil, common.ConvertMongoError(err)
	}

	callback := crmmodels.CrmCallback{
		ProspectId:   prospectID,
		CallbackDate: input.CallbackDate,
		CallbackType: input.CallbackType,
		Notes:        input.Notes,
		Status:       crmmodels.CallbackStatusPending,
	}
	created, err := s.InsertOne(ctx, callback)
	if err != nil {
		return nil, err
	}

	if prospect.NextActionDate == nil || input.CallbackDate < *prospect.NextActionDate {
		nextAction := buildNextAction(input.CallbackType, input.Notes)
		_, err := s.prospectColl.UpdateOne(ctx, bson.M{"_id": prospectID}, bson.M{"$set": bson.M{
			"nextAction":     nextAction,
			"nextActionDate": input.CallbackDate,
			"updatedAt":      time.Now().UnixMilli(),
		}})
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
	}

	resp := toCallbackResponse(&created, nowMillis())
	s.attachEstabInfo(ctx, []*crmdto.CrmCallbackResponse{&resp})
	return &resp, nil
}

// Update cập nhật lịch gọi lại. Đổi status sang completed sẽ set
// completedAt = thời điểm cập nhật; các status khác giữ nguyên completedAt.
func (s *CrmCallbackService) Update(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmCallbackUpdateInput) (*crmdto.CrmCallbackResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	set := bson.M{}
	if input.CallbackDate != nil {
		set["callbackDate"] = *input.CallbackDate
	}
	if input.CallbackType != nil {
		set["callbackType"] = *input.CallbackType
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
	}
	if input.Status != nil {
		set["status"] = *input.Status
		if crmmodels.CallbackStatus(*input.Status) == crmmodels.CallbackStatusCompleted {
			set["completedAt"] = time.Now().UnixMilli()
		}
	}
	if len(set) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có field nào để cập nhật", common.StatusBadRequest, nil)
	}

	updated, err := s.UpdateById(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	resp := toCallbackResponse(&updated, nowMillis())
	s.attachEstabInfo(ctx, []*crmdto.CrmCallbackResponse{&resp})
	return &resp, nil
}

// Complete đánh dấu callback đã thực hiện.
func (s *CrmCallbackService) Complete(ctx context.Context, id primitive.ObjectID) (*crmdto.CrmCallbackResponse, error) {
	status := string(crmmodels.CallbackStatusCompleted)
	return s.Update(ctx, id, &crmdto.CrmCallbackUpdateInput{Status: &status})
}

// Cancel hủy callback.
func (s *CrmCallbackService) Cancel(ctx context.Context, id primitive.ObjectID) (*crmdto.CrmCallbackResponse, error) {
	status := string(crmmodels.CallbackStatusCancelled)
	return s.Update(ctx, id, &crmdto.CrmCallbackUpdateInput{Status: &status})
}

// Delete xóa một callback theo id.
func (s *CrmCallbackService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// List trả về callbacks theo filter, tăng dần theo ngày hẹn.
func (s *CrmCallbackService) List(ctx context.Context, q CrmCallbackListQuery) ([]crmdto.CrmCallbackResponse, error) {
	filter := bson.M{}
	if q.Status != "" {
		if !crmmodels.CallbackStatus(q.Status).IsValid() {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Trạng thái callback không hợp lệ: %s", q.Status), common.StatusBadRequest, nil)
		}
		filter["status"] = q.Status
	}
	dateFilter := bson.M{}
	if q.StartDate != nil {
		dateFilter["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		dateFilter["$lte"] = *q.EndDate
	}
	if len(dateFilter) > 0 {
		filter["callbackDate"] = dateFilter
	}
	return s.listWithEstab(ctx, filter)
}

// Upcoming trả về callbacks pending trong days ngày tới, cho widget dashboard.
func (s *CrmCallbackService) Upcoming(ctx context.Context, days int) ([]crmdto.CrmCallbackResponse, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	filter := bson.M{
		"status": crmmodels.CallbackStatusPending,
		"callbackDate": bson.M{
			"$gte": now.UnixMilli(),
			"$lte": now.Add(time.Duration(days) * 24 * time.Hour).UnixMilli(),
		},
	}
	return s.listWithEstab(ctx, filter)
}

// ListInMonth trả về toàn bộ callbacks trong một tháng, cho view lịch.
func (s *CrmCallbackService) ListInMonth(ctx context.Context, year int, month int) ([]crmdto.CrmCallbackResponse, error) {
	if month < 1 || month > 12 {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Tháng không hợp lệ: %d", month), common.StatusBadRequest, nil)
	}
	start, end := utility.MonthRange(year, month, time.UTC)
	filter := bson.M{"callbackDate": bson.M{"$gte": start, "$lt": end}}
	return s.listWithEstab(ctx, filter)
}

// listWithEstab query callbacks theo filter rồi gắn tên cơ sở qua prospect -> inspection.
func (s *CrmCallbackService) listWithEstab(ctx context.Context, filter bson.M) ([]crmdto.CrmCallbackResponse, error) {
	callbacks, err := s.Find(ctx, filter,
		mongoopts.Find().SetSort(bson.D{{Key: "callbackDate", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	nowMs := nowMillis()
	responses := make([]crmdto.CrmCallbackResponse, 0, len(callbacks))
	refs := make([]*crmdto.CrmCallbackResponse, 0, len(callbacks))
	for i := range callbacks {
		responses = append(responses, toCallbackResponse(&callbacks[i], nowMs))
	}
	for i := range responses {
		refs = append(refs, &responses[i])
	}
	s.attachEstabInfo(ctx, refs)
	return responses, nil
}

// attachEstabInfo gắn estabName/siteState cho responses theo batch.
// Best-effort: lỗi lookup không chặn response chính.
func (s *CrmCallbackService) attachEstabInfo(ctx context.Context, responses []*crmdto.CrmCallbackResponse) {
	if len(responses) == 0 {
		return
	}

	prospectIDs := make([]primitive.ObjectID, 0, len(responses))
	for _, r := range responses {
		prospectIDs = append(prospectIDs, utility.String2ObjectID(r.ProspectId))
	}

	cursor, err := s.prospectColl.Find(ctx, bson.M{"_id": bson.M{"$in": prospectIDs}})
	if err != nil {
		return
	}
	var prospects []crmmodels.CrmProspect
	if err := cursor.All(ctx, &prospects); err != nil {
		return
	}

	inspByProspect := map[primitive.ObjectID]primitive.ObjectID{}
	inspectionIDs := make([]primitive.ObjectID, 0, len(prospects))
	for i := range prospects {
		inspByProspect[prospects[i].ID] = prospects[i].InspectionId
		inspectionIDs = append(inspectionIDs, prospects[i].InspectionId)
	}

	inspCursor, err := s.inspectionColl.Find(ctx, bson.M{"_id": bson.M{"$in": inspectionIDs}})
	if err != nil {
		return
	}
	var inspections []inspmodels.Inspection
	if err := inspCursor.All(ctx, &inspections); err != nil {
		return
	}
	inspByID := map[primitive.ObjectID]*inspmodels.Inspection{}
	for i := range inspections {
		inspByID[inspections[i].ID] = &inspections[i]
	}

	for _, r := range responses {
		pid := utility.String2ObjectID(r.ProspectId)
		if inspID, ok := inspByProspect[pid]; ok {
			if insp, ok := inspByID[inspID]; ok {
				r.EstabName = insp.EstabName
				r.SiteState = insp.SiteState
			}
		}
	}
}

// buildNextAction dựng text nextAction của prospect từ lịch hẹn.
func buildNextAction(callbackType string, notes string) string {
	label := callbackType
	if label == "" {
		label = "Follow-up"
	}
	// Cắt theo rune, cắt theo byte có thể chém đôi ký tự UTF-8
	summary := notes
	if runes := []rune(summary); len(runes) > 50 {
		summary = string(runes[:50])
	}
	if summary == "" {
		summary = "Scheduled callback"
	}
	return fmt.Sprintf("%s: %s", label, summary)
}
