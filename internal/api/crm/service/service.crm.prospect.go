// Package crmvc - Service prospect CRM (crm_prospects).
//
// Ràng buộc 1:1 prospect-inspection được enforce bằng unique index
// prospect_inspection_unique ở storage: Create KHÔNG kiểm tra tồn tại trước khi
// insert, hai request tạo đồng thời cho cùng inspection thì driver trả
// duplicate key cho một request và ConvertMongoError dịch thành 409.
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

// prospectSortFields là whitelist field cho sort_by; key là tên client gửi lên.
var prospectSortFields = map[string]string{
	"created_at":       "createdAt",
	"updated_at":       "updatedAt",
	"status":           "status",
	"priority":         "priority",
	"estimated_value":  "estimatedValue",
	"next_action_date": "nextActionDate",
}

// CrmProspectListQuery là tham số lọc danh sách prospect.
type CrmProspectListQuery struct {
	Page     int64
	PageSize int64
	Status   string // Lọc theo trạng thái pipeline
	Priority string // Lọc theo độ ưu tiên
	Search   string // Tìm theo tên cơ sở (substring, không phân biệt hoa thường)
	State    string // Lọc theo bang của site
	SortBy   string // Field sort, whitelist trong prospectSortFields
	SortDesc bool

	// Lọc theo việc có callback pending trong tương lai hay không (nil = bỏ qua)
	HasUpcomingCallback *bool
}

// CrmProspectService xử lý nghiệp vụ prospect.
type CrmProspectService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmProspect]
	inspectionColl *mongo.Collection
	activityColl   *mongo.Collection
	callbackColl   *mongo.Collection
}

// NewCrmProspectService tạo CrmProspectService mới.
func NewCrmProspectService() (*CrmProspectService, error) {
	prospectColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmProspects)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmProspects, common.ErrNotFound)
	}
	inspectionColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Inspections)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Inspections, common.ErrNotFound)
	}
	activityColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmActivities)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmActivities, common.ErrNotFound)
	}
	callbackColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmCallbacks)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmCallbacks, common.ErrNotFound)
	}
	return &CrmProspectService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmProspect](prospectColl),
		inspectionColl:       inspectionColl,
		activityColl:         activityColl,
		callbackColl:         callbackColl,
	}, nil
}

// Create tạo prospect mới từ một hồ sơ thanh tra.
//
// Inspection phải tồn tại (404 nếu không). Không kiểm tra prospect trùng trước
// khi insert: unique index trên inspectionId quyết định, trùng thì trả 409.
func (s *CrmProspectService) Create(ctx context.Context, input *crmdto.CrmProspectCreateInput) (*crmdto.CrmProspectResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	inspectionID := utility.String2ObjectID(input.InspectionId)
	var inspection inspmodels.Inspection
	if err := s.inspectionColl.FindOne(ctx, bson.M{"_id": inspectionID}).Decode(&inspection); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewError(common.ErrCodeBusinessNotFound, "Không tìm thấy hồ sơ thanh tra", common.StatusNotFound, nil)
		}
		return nil, common.ConvertMongoError(err)
	}

	status := crmmodels.ProspectStatusNewLead
	if input.Status != "" {
		status = crmmodels.ProspectStatus(input.Status)
	}

	prospect := crmmodels.CrmProspect{
		InspectionId:   inspectionID,
		Status:         status,
		Priority:       input.Priority,
		EstimatedValue: input.EstimatedValue,
		Notes:          input.Notes,
		NextAction:     input.NextAction,
		NextActionDate: input.NextActionDate,
	}

	created, err := s.InsertOne(ctx, prospect)
	if err != nil {
		// Duplicate key trên prospect_inspection_unique đã thành 409 ở đây
		return nil, err
	}

	resp := s.toResponse(&created, &inspection, 0, 0)
	return &resp, nil
}

// GetDetail trả về prospect kèm toàn bộ activities (mới nhất trước)
// và callbacks (theo ngày hẹn tăng dần).
func (s *CrmProspectService) GetDetail(ctx context.Context, id primitive.ObjectID) (*crmdto.CrmProspectDetailResponse, error) {
	prospect, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	inspection := s.loadInspection(ctx, prospect.InspectionId)

	activities, err := s.loadActivities(ctx, id)
	if err != nil {
		return nil, err
	}
	callbacks, err := s.loadCallbacks(ctx, id)
	if err != nil {
		return nil, err
	}

	pendingCallbacks := int64(0)
	nowMs := time.Now().UnixMilli()
	callbackResponses := make([]crmdto.CrmCallbackResponse, 0, len(callbacks))
	for i := range callbacks {
		if callbacks[i].Status == crmmodels.CallbackStatusPending {
			pendingCallbacks++
		}
		resp := toCallbackResponse(&callbacks[i], nowMs)
		if inspection != nil {
			resp.EstabName = inspection.EstabName
			resp.SiteState = inspection.SiteState
		}
		callbackResponses = append(callbackResponses, resp)
	}

	activityResponses := make([]crmdto.CrmActivityResponse, 0, len(activities))
	for i := range activities {
		activityResponses = append(activityResponses, toActivityResponse(&activities[i]))
	}

	detail := crmdto.CrmProspectDetailResponse{
		CrmProspectResponse: s.toResponse(&prospect, inspection, int64(len(activities)), pendingCallbacks),
		Activities:          activityResponses,
		Callbacks:           callbackResponses,
	}
	return &detail, nil
}

// List trả về danh sách prospect có lọc, tìm kiếm và phân trang.
func (s *CrmProspectService) List(ctx context.Context, q CrmProspectListQuery) (*crmdto.CrmProspectListResponse, error) {
	filter := bson.M{}
	if q.Status != "" {
		if !crmmodels.ProspectStatus(q.Status).IsValid() {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Trạng thái không hợp lệ: %s", q.Status), common.StatusBadRequest, nil)
		}
		filter["status"] = q.Status
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}

	// Search và lọc theo bang nằm trên inspection: tìm id inspection khớp trước
	// rồi lọc prospect theo inspectionId.
	if q.Search != "" || q.State != "" {
		inspFilter := bson.M{}
		if q.Search != "" {
			inspFilter["estabName"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuoteMeta(q.Search), Options: "i"}}
		}
		if q.State != "" {
			inspFilter["siteState"] = q.State
		}
		ids, err := s.inspectionColl.Distinct(ctx, "_id", inspFilter)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if len(ids) == 0 {
			return &crmdto.CrmProspectListResponse{Items: []crmdto.CrmProspectResponse{}, Page: q.Page, PageSize: q.PageSize}, nil
		}
		filter["inspectionId"] = bson.M{"$in": ids}
	}

	// Upcoming callback = callback pending có ngày hẹn >= bây giờ. Gom id
	// prospect có callback như vậy rồi lọc bằng $in / $nin.
	if q.HasUpcomingCallback != nil {
		cbFilter := bson.M{
			"status":       crmmodels.CallbackStatusPending,
			"callbackDate": bson.M{"$gte": time.Now().UnixMilli()},
		}
		prospectIDs, err := s.callbackColl.Distinct(ctx, "prospectId", cbFilter)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if empty := applyUpcomingCallbackFilter(filter, prospectIDs, *q.HasUpcomingCallback); empty {
			return &crmdto.CrmProspectListResponse{Items: []crmdto.CrmProspectResponse{}, Page: q.Page, PageSize: q.PageSize}, nil
		}
	}

	sortField, ok := prospectSortFields[q.SortBy]
	if !ok {
		sortField = "updatedAt"
	}
	sortDir := 1
	if q.SortDesc {
		sortDir = -1
	}
	// _id làm tie-break để thứ tự phân trang ổn định
	opts := mongoopts.Find().SetSort(bson.D{{Key: sortField, Value: sortDir}, {Key: "_id", Value: 1}})

	page, err := s.FindWithPagination(ctx, filter, q.Page, q.PageSize, opts)
	if err != nil {
		return nil, err
	}

	items, err := s.buildResponses(ctx, page.Items)
	if err != nil {
		return nil, err
	}

	return &crmdto.CrmProspectListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.Limit,
		TotalPages: page.TotalPage,
	}, nil
}

// applyUpcomingCallbackFilter thêm điều kiện _id theo danh sách prospect có
// upcoming callback. Trả về true khi kết quả chắc chắn rỗng (muốn có upcoming
// callback nhưng không prospect nào có).
func applyUpcomingCallbackFilter(filter bson.M, prospectIDs []interface{}, want bool) bool {
	if want {
		if len(prospectIDs) == 0 {
			return true
		}
		filter["_id"] = bson.M{"$in": prospectIDs}
		return false
	}
	if len(prospectIDs) > 0 {
		filter["_id"] = bson.M{"$nin": prospectIDs}
	}
	return false
}

// UpdatePartial cập nhật các field được gửi lên; field nil giữ nguyên.
// WonDate KHÔNG tự set khi status chuyển sang won, client chủ động gửi nếu muốn.
func (s *CrmProspectService) UpdatePartial(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmProspectUpdateInput) (*crmdto.CrmProspectResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	set := bson.M{}
	if input.Status != nil {
		set["status"] = *input.Status
	}
	if input.Priority != nil {
		set["priority"] = *input.Priority
	}
	if input.EstimatedValue != nil {
		set["estimatedValue"] = *input.EstimatedValue
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
	}
	if input.NextAction != nil {
		set["nextAction"] = *input.NextAction
	}
	if input.NextActionDate != nil {
		set["nextActionDate"] = *input.NextActionDate
	}
	if input.LostReason != nil {
		set["lostReason"] = *input.LostReason
	}
	if input.WonDate != nil {
		set["wonDate"] = *input.WonDate
	}
	if input.WonValue != nil {
		set["wonValue"] = *input.WonValue
	}
	if len(set) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có field nào để cập nhật", common.StatusBadRequest, nil)
	}

	updated, err := s.UpdateById(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}

	inspection := s.loadInspection(ctx, updated.InspectionId)
	activityCount, callbackCount, err := s.countRelated(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(&updated, inspection, activityCount, callbackCount)
	return &resp, nil
}

// DeleteCascade xóa prospect cùng toàn bộ activities và callbacks trong một
// transaction: hoặc cả cây biến mất, hoặc không gì thay đổi.
func (s *CrmProspectService) DeleteCascade(ctx context.Context, id primitive.ObjectID) error {
	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, s.deleteTreeTx(sc, id)
	})
	return err
}

// DeleteTreeByInspectionTx xóa cây prospect gắn với một inspection, chạy trong
// session context của caller (inspection service dùng khi xóa inspection).
// Không có prospect thì không làm gì, không phải lỗi.
func (s *CrmProspectService) DeleteTreeByInspectionTx(sc mongo.SessionContext, inspectionID primitive.ObjectID) error {
	var prospect crmmodels.CrmProspect
	err := s.Collection().FindOne(sc, bson.M{"inspectionId": inspectionID}).Decode(&prospect)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		return common.ConvertMongoError(err)
	}
	return s.deleteTreeTx(sc, prospect.ID)
}

// deleteTreeTx xóa activities, callbacks rồi prospect; phải gọi trong transaction.
func (s *CrmProspectService) deleteTreeTx(sc mongo.SessionContext, id primitive.ObjectID) error {
	if _, err := s.activityColl.DeleteMany(sc, bson.M{"prospectId": id}); err != nil {
		return common.ConvertMongoError(err)
	}
	if _, err := s.callbackColl.DeleteMany(sc, bson.M{"prospectId": id}); err != nil {
		return common.ConvertMongoError(err)
	}
	result, err := s.Collection().DeleteOne(sc, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// FindByInspection kiểm tra prospect đã tồn tại cho một inspection chưa.
func (s *CrmProspectService) FindByInspection(ctx context.Context, inspectionID primitive.ObjectID) (*crmdto.CrmProspectExistsResponse, error) {
	prospect, err := s.FindOne(ctx, bson.M{"inspectionId": inspectionID}, nil)
	if err != nil {
		if common.IsNotFound(err) {
			return &crmdto.CrmProspectExistsResponse{Exists: false}, nil
		}
		return nil, err
	}
	return &crmdto.CrmProspectExistsResponse{
		Exists:   true,
		Id:       utility.ObjectID2String(prospect.ID),
		Status:   string(prospect.Status),
		Priority: prospect.Priority,
	}, nil
}

// Stats trả về số liệu dashboard CRM.
func (s *CrmProspectService) Stats(ctx context.Context) (*crmdto.CrmStatsResponse, error) {
	now := time.Now()
	nowMs := now.UnixMilli()

	total, err := s.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	// Đếm theo trạng thái
	byStatus := map[string]int64{}
	cursor, err := s.Collection().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var statusRows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &statusRows); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	for _, row := range statusRows {
		byStatus[row.ID] = row.Count
	}

	// Callback pending trong 7 ngày tới
	upcoming, err := s.countColl(ctx, s.callbackColl, bson.M{
		"status":       crmmodels.CallbackStatusPending,
		"callbackDate": bson.M{"$gte": nowMs, "$lte": now.Add(7 * 24 * time.Hour).UnixMilli()},
	})
	if err != nil {
		return nil, err
	}

	// Callback pending đã quá hạn
	overdue, err := s.countColl(ctx, s.callbackColl, bson.M{
		"status":       crmmodels.CallbackStatusPending,
		"callbackDate": bson.M{"$lt": nowMs},
	})
	if err != nil {
		return nil, err
	}

	// Task chưa hoàn thành đến hạn hôm nay
	tasksDueToday, err := s.countColl(ctx, s.activityColl, tasksDueTodayFilter(now))
	if err != nil {
		return nil, err
	}

	// Tổng giá trị pipeline của prospect còn mở
	pipelineValue, err := s.sumField(ctx, "estimatedValue", bson.M{
		"status": bson.M{"$in": []crmmodels.ProspectStatus{
			crmmodels.ProspectStatusNewLead, crmmodels.ProspectStatusContacted, crmmodels.ProspectStatusQualified,
		}},
	})
	if err != nil {
		return nil, err
	}

	// Won trong tháng này (theo wonDate)
	monthStart := utility.StartOfMonth(now)
	wonFilter := bson.M{
		"status":  crmmodels.ProspectStatusWon,
		"wonDate": bson.M{"$gte": monthStart},
	}
	wonThisMonth, err := s.CountDocuments(ctx, wonFilter)
	if err != nil {
		return nil, err
	}
	wonValueThisMonth, err := s.sumField(ctx, "wonValue", wonFilter)
	if err != nil {
		return nil, err
	}

	return &crmdto.CrmStatsResponse{
		TotalProspects:     total,
		ByStatus:           byStatus,
		UpcomingCallbacks:  upcoming,
		OverdueCallbacks:   overdue,
		TasksDueToday:      tasksDueToday,
		TotalPipelineValue: pipelineValue,
		WonThisMonth:       wonThisMonth,
		WonValueThisMonth:  wonValueThisMonth,
	}, nil
}

// ============================================
// HELPERS
// ============================================

// toResponse map model sang response kèm denormalize từ inspection.
func (s *CrmProspectService) toResponse(p *crmmodels.CrmProspect, insp *inspmodels.Inspection, activityCount, callbackCount int64) crmdto.CrmProspectResponse {
	resp := crmdto.CrmProspectResponse{
		Id:             utility.ObjectID2String(p.ID),
		InspectionId:   utility.ObjectID2String(p.InspectionId),
		Status:         p.Status,
		Priority:       p.Priority,
		EstimatedValue: p.EstimatedValue,
		Notes:          p.Notes,
		NextAction:     p.NextAction,
		NextActionDate: p.NextActionDate,
		LostReason:     p.LostReason,
		WonDate:        p.WonDate,
		WonValue:       p.WonValue,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		ActivityCount:  activityCount,
		CallbackCount:  callbackCount,
	}
	if insp != nil {
		resp.ActivityNr = insp.ActivityNr
		resp.EstabName = insp.EstabName
		resp.SiteAddress = insp.SiteAddress
		resp.SiteCity = insp.SiteCity
		resp.SiteState = insp.SiteState
		resp.SiteZip = insp.SiteZip
		resp.TotalCurrentPenalty = insp.TotalCurrentPenalty
		resp.OpenDate = insp.OpenDate
	}
	return resp
}

// buildResponses map một trang prospect sang responses: load inspections theo
// batch và đếm activity/callback bằng 2 aggregation thay vì N+1 query.
func (s *CrmProspectService) buildResponses(ctx context.Context, prospects []crmmodels.CrmProspect) ([]crmdto.CrmProspectResponse, error) {
	if len(prospects) == 0 {
		return []crmdto.CrmProspectResponse{}, nil
	}

	inspectionIDs := make([]primitive.ObjectID, 0, len(prospects))
	prospectIDs := make([]primitive.ObjectID, 0, len(prospects))
	for i := range prospects {
		inspectionIDs = append(inspectionIDs, prospects[i].InspectionId)
		prospectIDs = append(prospectIDs, prospects[i].ID)
	}

	inspByID := map[primitive.ObjectID]*inspmodels.Inspection{}
	cursor, err := s.inspectionColl.Find(ctx, bson.M{"_id": bson.M{"$in": inspectionIDs}})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var inspections []inspmodels.Inspection
	if err := cursor.All(ctx, &inspections); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	for i := range inspections {
		inspByID[inspections[i].ID] = &inspections[i]
	}

	activityCounts, err := countByProspect(ctx, s.activityColl, bson.M{"prospectId": bson.M{"$in": prospectIDs}})
	if err != nil {
		return nil, err
	}
	callbackCounts, err := countByProspect(ctx, s.callbackColl, bson.M{
		"prospectId": bson.M{"$in": prospectIDs},
		"status":     crmmodels.CallbackStatusPending,
	})
	if err != nil {
		return nil, err
	}

	items := make([]crmdto.CrmProspectResponse, 0, len(prospects))
	for i := range prospects {
		p := &prospects[i]
		items = append(items, s.toResponse(p, inspByID[p.InspectionId], activityCounts[p.ID], callbackCounts[p.ID]))
	}
	return items, nil
}

// tasksDueTodayFilter lọc task chưa hoàn thành đến hạn trong ngày của now.
// Cận trên exclusive: 00:00 ngày mai thuộc về ngày mai, không được đếm hai lần.
func tasksDueTodayFilter(now time.Time) bson.M {
	return bson.M{
		"activityType":  crmmodels.ActivityTypeTask,
		"taskCompleted": false,
		"taskDueDate":   bson.M{"$gte": utility.StartOfDay(now), "$lt": utility.EndOfDay(now)},
	}
}

// loadInspection đọc inspection của prospect; trả nil nếu không còn (không chặn response).
func (s *CrmProspectService) loadInspection(ctx context.Context, id primitive.ObjectID) *inspmodels.Inspection {
	var inspection inspmodels.Inspection
	if err := s.inspectionColl.FindOne(ctx, bson.M{"_id": id}).Decode(&inspection); err != nil {
		return nil
	}
	return &inspection
}

func (s *CrmProspectService) loadActivities(ctx context.Context, prospectID primitive.ObjectID) ([]crmmodels.CrmActivity, error) {
	cursor, err := s.activityColl.Find(ctx, bson.M{"prospectId": prospectID},
		mongoopts.Find().SetSort(bson.D{{Key: "activityDate", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	activities := []crmmodels.CrmActivity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return activities, nil
}

func (s *CrmProspectService) loadCallbacks(ctx context.Context, prospectID primitive.ObjectID) ([]crmmodels.CrmCallback, error) {
	cursor, err := s.callbackColl.Find(ctx, bson.M{"prospectId": prospectID},
		mongoopts.Find().SetSort(bson.D{{Key: "callbackDate", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	callbacks := []crmmodels.CrmCallback{}
	if err := cursor.All(ctx, &callbacks); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return callbacks, nil
}

func (s *CrmProspectService) countRelated(ctx context.Context, prospectID primitive.ObjectID) (int64, int64, error) {
	activityCount, err := s.countColl(ctx, s.activityColl, bson.M{"prospectId": prospectID})
	if err != nil {
		return 0, 0, err
	}
	callbackCount, err := s.countColl(ctx, s.callbackColl, bson.M{
		"prospectId": prospectID,
		"status":     crmmodels.CallbackStatusPending,
	})
	if err != nil {
		return 0, 0, err
	}
	return activityCount, callbackCount, nil
}

func (s *CrmProspectService) countColl(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// sumField tính tổng một field số trên các document khớp filter.
func (s *CrmProspectService) sumField(ctx context.Context, field string, filter bson.M) (float64, error) {
	cursor, err := s.Collection().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$" + field}}}},
	})
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, common.ConvertMongoError(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// countByProspect group-count document theo prospectId.
func countByProspect(ctx context.Context, coll *mongo.Collection, filter bson.M) (map[primitive.ObjectID]int64, error) {
	cursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{"_id": "$prospectId", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	counts := make(map[primitive.ObjectID]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}
