// Package inspsvc - Service hồ sơ thanh tra OSHA (inspections, violations, companies).
package inspsvc

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/service"
	crmvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/crm/service"
	inspdto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/inspection/dto"
	inspmodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/inspection/models"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/utility"
)

// inspectionSortFields là whitelist field cho sort_by.
var inspectionSortFields = map[string]string{
	"open_date":             "openDate",
	"estab_name":            "estabName",
	"site_state":            "siteState",
	"total_current_penalty": "totalCurrentPenalty",
	// violation_count dùng tiền phạt làm proxy, tránh join đắt khi sort
	"violation_count": "totalCurrentPenalty",
	"created_at":      "createdAt",
}

// InspectionListQuery là tham số lọc danh sách hồ sơ thanh tra.
type InspectionListQuery struct {
	Page          int64
	PageSize      int64
	State         string
	City          string
	Search        string // Tìm theo tên cơ sở
	ActivityNr    string
	MinPenalty    *float64
	MaxPenalty    *float64
	StartDate     *int64 // Unix ms, lọc openDate >= StartDate
	EndDate       *int64 // Unix ms, lọc openDate <= EndDate
	InspType      string
	HasViolations *bool
	SortBy        string
	SortDesc      bool
}

// InspectionService xử lý nghiệp vụ hồ sơ thanh tra.
type InspectionService struct {
	*basesvc.BaseServiceMongoImpl[inspmodels.Inspection]
	violationColl *mongo.Collection
	companyColl   *mongo.Collection
	prospectSvc   *crmvc.CrmProspectService
}

// NewInspectionService tạo InspectionService mới.
func NewInspectionService() (*InspectionService, error) {
	inspectionColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Inspections)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Inspections, common.ErrNotFound)
	}
	violationColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Violations)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Violations, common.ErrNotFound)
	}
	companyColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Companies)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Companies, common.ErrNotFound)
	}
	prospectSvc, err := crmvc.NewCrmProspectService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrmProspectService: %w", err)
	}
	return &InspectionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[inspmodels.Inspection](inspectionColl),
		violationColl:        violationColl,
		companyColl:          companyColl,
		prospectSvc:          prospectSvc,
	}, nil
}

// buildFilter dựng filter Mongo từ query; dùng chung cho List và Stats.
func buildFilter(q InspectionListQuery) bson.M {
	filter := bson.M{}
	if q.State != "" {
		filter["siteState"] = q.State
	}
	if q.City != "" {
		filter["siteCity"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(q.City), Options: "i"}}
	}
	if q.Search != "" {
		filter["estabName"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}}
	}
	if q.ActivityNr != "" {
		filter["activityNr"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(q.ActivityNr), Options: "i"}}
	}
	penaltyFilter := bson.M{}
	if q.MinPenalty != nil {
		penaltyFilter["$gte"] = *q.MinPenalty
	}
	if q.MaxPenalty != nil {
		penaltyFilter["$lte"] = *q.MaxPenalty
	}
	// Có vi phạm hay không dùng tiền phạt làm proxy, nhất quán với sort
	if q.HasViolations != nil {
		if *q.HasViolations {
			penaltyFilter["$gt"] = float64(0)
		} else {
			filter["$or"] = []bson.M{
				{"totalCurrentPenalty": bson.M{"$exists": false}},
				{"totalCurrentPenalty": 0},
			}
		}
	}
	if len(penaltyFilter) > 0 {
		filter["totalCurrentPenalty"] = penaltyFilter
	}
	dateFilter := bson.M{}
	if q.StartDate != nil {
		dateFilter["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		dateFilter["$lte"] = *q.EndDate
	}
	if len(dateFilter) > 0 {
		filter["openDate"] = dateFilter
	}
	if q.InspType != "" {
		filter["inspType"] = q.InspType
	}
	return filter
}

// List trả về danh sách hồ sơ thanh tra có lọc và phân trang.
// ViolationCount trong list view luôn là 0, chỉ tính ở detail view.
func (s *InspectionService) List(ctx context.Context, q InspectionListQuery) (*inspdto.InspectionListResponse, error) {
	filter := buildFilter(q)

	sortField, ok := inspectionSortFields[q.SortBy]
	if !ok {
		sortField = "openDate"
	}
	sortDir := 1
	if q.SortDesc {
		sortDir = -1
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: sortField, Value: sortDir}, {Key: "_id", Value: 1}})

	page, err := s.FindWithPagination(ctx, filter, q.Page, q.PageSize, opts)
	if err != nil {
		return nil, err
	}

	items := make([]inspdto.InspectionResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toInspectionResponse(&page.Items[i], 0))
	}
	return &inspdto.InspectionListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.Limit,
		TotalPages: page.TotalPage,
	}, nil
}

// GetDetail trả về hồ sơ thanh tra kèm toàn bộ vi phạm.
func (s *InspectionService) GetDetail(ctx context.Context, id primitive.ObjectID) (*inspdto.InspectionDetailResponse, error) {
	inspection, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	cursor, err := s.violationColl.Find(ctx, bson.M{"activityNr": inspection.ActivityNr},
		mongoopts.Find().SetSort(bson.D{{Key: "issuanceDate", Value: -1}}))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var violations []inspmodels.Violation
	if err := cursor.All(ctx, &violations); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	violationResponses := make([]inspdto.ViolationResponse, 0, len(violations))
	for i := range violations {
		violationResponses = append(violationResponses, toViolationResponse(&violations[i]))
	}
	return &inspdto.InspectionDetailResponse{
		InspectionResponse: toInspectionResponse(&inspection, int64(len(violations))),
		Violations:         violationResponses,
	}, nil
}

// GetCompany trả về công ty đã enrich gắn với hồ sơ thanh tra, nil data nếu chưa có.
func (s *InspectionService) GetCompany(ctx context.Context, inspectionID primitive.ObjectID) (*inspmodels.Company, error) {
	var company inspmodels.Company
	err := s.companyColl.FindOne(ctx, bson.M{"inspectionId": inspectionID}).Decode(&company)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, common.ConvertMongoError(err)
	}
	return &company, nil
}

// Stats trả về thống kê theo filter hiện tại.
func (s *InspectionService) Stats(ctx context.Context, q InspectionListQuery) (*inspdto.InspectionStatsResponse, error) {
	filter := buildFilter(q)

	cursor, err := s.Collection().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total":          bson.M{"$sum": 1},
			"totalPenalties": bson.M{"$sum": "$totalCurrentPenalty"},
			"states":         bson.M{"$addToSet": "$siteState"},
			"withViolations": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$gt": bson.A{"$totalCurrentPenalty", 0}}, 1, 0}}},
		}}},
	})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var rows []struct {
		Total          int64    `bson:"total"`
		TotalPenalties float64  `bson:"totalPenalties"`
		States         []string `bson:"states"`
		WithViolations int64    `bson:"withViolations"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	stats := &inspdto.InspectionStatsResponse{
		InspectionsByState: map[string]int64{},
		InspectionsByType:  map[string]int64{},
	}
	if len(rows) > 0 {
		row := rows[0]
		stats.TotalInspections = row.Total
		stats.TotalPenalties = row.TotalPenalties
		for _, state := range row.States {
			if state != "" {
				stats.StatesCount++
			}
		}
		if row.WithViolations > 0 {
			stats.AvgPenalty = row.TotalPenalties / float64(row.WithViolations)
		}
	}

	// Top 10 bang theo số hồ sơ
	byState, err := s.groupCount(ctx, filter, "$siteState", 10)
	if err != nil {
		return nil, err
	}
	for k, v := range byState {
		if k != "" {
			stats.InspectionsByState[k] = v
		}
	}

	byType, err := s.groupCount(ctx, filter, "$inspType", 0)
	if err != nil {
		return nil, err
	}
	for k, v := range byType {
		if k == "" {
			k = "Unknown"
		}
		stats.InspectionsByType[k] = v
	}

	return stats, nil
}

// Recent trả về hồ sơ mở trong days ngày gần nhất, mới nhất trước.
func (s *InspectionService) Recent(ctx context.Context, days int, q InspectionListQuery) (*inspdto.RecentInspectionsResponse, error) {
	if days <= 0 {
		days = 7
	}
	filter := buildFilter(q)
	cutoff := time.Now().AddDate(0, 0, -days).UnixMilli()
	if existing, ok := filter["openDate"].(bson.M); ok {
		if cur, ok := existing["$gte"].(int64); !ok || cur < cutoff {
			existing["$gte"] = cutoff
		}
	} else {
		filter["openDate"] = bson.M{"$gte": cutoff}
	}

	inspections, err := s.Find(ctx, filter,
		mongoopts.Find().SetSort(bson.D{{Key: "openDate", Value: -1}}))
	if err != nil {
		return nil, err
	}

	companies := map[string]struct{}{}
	items := make([]inspdto.RecentInspectionItem, 0, len(inspections))
	for i := range inspections {
		insp := &inspections[i]
		companies[insp.EstabName] = struct{}{}
		items = append(items, inspdto.RecentInspectionItem{
			InspectionId:        utility.ObjectID2String(insp.ID),
			ActivityNr:          insp.ActivityNr,
			EstabName:           insp.EstabName,
			SiteCity:            insp.SiteCity,
			SiteState:           insp.SiteState,
			InspType:            insp.InspType,
			OpenDate:            insp.OpenDate,
			TotalCurrentPenalty: insp.TotalCurrentPenalty,
		})
	}
	return &inspdto.RecentInspectionsResponse{
		Count:           int64(len(items)),
		UniqueCompanies: int64(len(companies)),
		Items:           items,
	}, nil
}

// States trả về danh sách bang có hồ sơ kèm số lượng, theo thứ tự alphabet.
func (s *InspectionService) States(ctx context.Context) ([]inspdto.StateCount, error) {
	cursor, err := s.Collection().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"siteState": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$siteState", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	results := make([]inspdto.StateCount, 0, len(rows))
	for _, row := range rows {
		results = append(results, inspdto.StateCount{State: row.ID, Count: row.Count})
	}
	return results, nil
}

// Types trả về danh sách loại thanh tra kèm số lượng.
func (s *InspectionService) Types(ctx context.Context) ([]inspdto.TypeCount, error) {
	cursor, err := s.Collection().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"inspType": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$inspType", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	results := make([]inspdto.TypeCount, 0, len(rows))
	for _, row := range rows {
		results = append(results, inspdto.TypeCount{Type: row.ID, Count: row.Count})
	}
	return results, nil
}

// DeleteCascade xóa hồ sơ thanh tra cùng toàn bộ dữ liệu phụ thuộc trong một
// transaction: violations, company và cây prospect (prospect + activities +
// callbacks) nếu có.
func (s *InspectionService) DeleteCascade(ctx context.Context, id primitive.ObjectID) error {
	inspection, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}

	session, err := global.MongoDB_Session.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := s.prospectSvc.DeleteTreeByInspectionTx(sc, id); err != nil {
			return nil, err
		}
		if _, err := s.violationColl.DeleteMany(sc, bson.M{"activityNr": inspection.ActivityNr}); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if _, err := s.companyColl.DeleteMany(sc, bson.M{"inspectionId": id}); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result, err := s.Collection().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		if result.DeletedCount == 0 {
			return nil, common.ErrNotFound
		}
		return nil, nil
	})
	return err
}

// groupCount group-count theo một field, limit 0 nghĩa là không giới hạn.
func (s *InspectionService) groupCount(ctx context.Context, filter bson.M, field string, limit int) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// toInspectionResponse map model sang response.
func toInspectionResponse(insp *inspmodels.Inspection, violationCount int64) inspdto.InspectionResponse {
	return inspdto.InspectionResponse{
		Id:                  utility.ObjectID2String(insp.ID),
		ActivityNr:          insp.ActivityNr,
		EstabName:           insp.EstabName,
		SiteAddress:         insp.SiteAddress,
		SiteCity:            insp.SiteCity,
		SiteState:           insp.SiteState,
		SiteZip:             insp.SiteZip,
		OpenDate:            insp.OpenDate,
		CloseConfDate:       insp.CloseConfDate,
		CloseCaseDate:       insp.CloseCaseDate,
		SicCode:             insp.SicCode,
		NaicsCode:           insp.NaicsCode,
		InspType:            insp.InspType,
		InspScope:           insp.InspScope,
		OwnerType:           insp.OwnerType,
		NrInEstab:           insp.NrInEstab,
		TotalCurrentPenalty: insp.TotalCurrentPenalty,
		TotalInitialPenalty: insp.TotalInitialPenalty,
		ViolationCount:      violationCount,
	}
}

// toViolationResponse map model vi phạm sang response.
func toViolationResponse(v *inspmodels.Violation) inspdto.ViolationResponse {
	return inspdto.ViolationResponse{
		Id:             utility.ObjectID2String(v.ID),
		ActivityNr:     v.ActivityNr,
		CitationId:     v.CitationId,
		Standard:       v.Standard,
		ViolType:       v.ViolType,
		IssuanceDate:   v.IssuanceDate,
		AbateDate:      v.AbateDate,
		CurrentPenalty: v.CurrentPenalty,
		InitialPenalty: v.InitialPenalty,
		NrInstances:    v.NrInstances,
		NrExposed:      v.NrExposed,
		Gravity:        v.Gravity,
	}
}
