// Package epasvc xử lý nghiệp vụ vụ việc cưỡng chế EPA.
package epasvc

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/ShieldSphere/osha-tracker-sub001/internal/api/base/service"
	epadto "github.com/ShieldSphere/osha-tracker-sub001/internal/api/epa/dto"
	epamodels "github.com/ShieldSphere/osha-tracker-sub001/internal/api/epa/models"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/utility"
)

// epaSortFields là whitelist field cho sort_by.
var epaSortFields = map[string]string{
	"filed_date":      "filedDate",
	"settlement_date": "settlementDate",
	"case_name":       "caseName",
	"facility_state":  "facilityState",
	"total_penalty":   "totalPenalty",
	"created_at":      "createdAt",
}

// EPACaseListQuery là tham số lọc danh sách vụ việc EPA.
type EPACaseListQuery struct {
	Page       int64
	PageSize   int64
	State      string
	Search     string // Tìm theo tên vụ việc hoặc tên cơ sở
	CaseNumber string
	Status     string
	Law        string // Một trong models.LawFlags
	MinPenalty *float64
	MaxPenalty *float64
	StartDate  *int64 // Unix ms, lọc settlementDate >= StartDate
	EndDate    *int64 // Unix ms, lọc settlementDate <= EndDate
	SortBy     string
	SortDesc   bool
}

// EPACaseService xử lý nghiệp vụ vụ việc EPA.
type EPACaseService struct {
	*basesvc.BaseServiceMongoImpl[epamodels.EPACase]
}

// NewEPACaseService tạo EPACaseService mới.
func NewEPACaseService() (*EPACaseService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.EpaCases)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.EpaCases, common.ErrNotFound)
	}
	return &EPACaseService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[epamodels.EPACase](coll),
	}, nil
}

// buildFilter dựng filter Mongo từ query.
func (s *EPACaseService) buildFilter(q EPACaseListQuery) (bson.M, error) {
	filter := bson.M{}

	if q.State != "" {
		filter["facilityState"] = q.State
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"caseName": pattern},
			{"facilityName": pattern},
		}
	}
	if q.CaseNumber != "" {
		filter["caseNumber"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.CaseNumber), Options: "i"}
	}
	if q.Status != "" {
		if !utility.Contains(epamodels.EPACaseStatuses, q.Status) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("status không hợp lệ: %s", q.Status), common.StatusBadRequest, nil)
		}
		filter["status"] = q.Status
	}
	if q.Law != "" {
		if !utility.Contains(epamodels.LawFlags, q.Law) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("law không hợp lệ: %s", q.Law), common.StatusBadRequest, nil)
		}
		filter[q.Law] = true
	}

	penaltyFilter := bson.M{}
	if q.MinPenalty != nil {
		penaltyFilter["$gte"] = *q.MinPenalty
	}
	if q.MaxPenalty != nil {
		penaltyFilter["$lte"] = *q.MaxPenalty
	}
	if len(penaltyFilter) > 0 {
		filter["totalPenalty"] = penaltyFilter
	}

	dateFilter := bson.M{}
	if q.StartDate != nil {
		dateFilter["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		dateFilter["$lte"] = *q.EndDate
	}
	if len(dateFilter) > 0 {
		filter["settlementDate"] = dateFilter
	}

	return filter, nil
}

// List trả về trang vụ việc EPA theo filter.
func (s *EPACaseService) List(ctx context.Context, q EPACaseListQuery) (*epadto.EPACaseListResponse, error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}

	sortField, ok := epaSortFields[q.SortBy]
	if !ok {
		sortField = "settlementDate"
	}
	direction := 1
	if q.SortDesc {
		direction = -1
	}
	// _id để ổn định thứ tự khi phân trang
	sortDoc := bson.D{{Key: sortField, Value: direction}, {Key: "_id", Value: 1}}

	result, err := s.FindWithPagination(ctx, filter, q.Page, q.PageSize,
		options.Find().SetSort(sortDoc))
	if err != nil {
		return nil, err
	}

	return &epadto.EPACaseListResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.Limit,
		TotalPages: result.TotalPage,
	}, nil
}

// GetById trả về một vụ việc theo _id.
func (s *EPACaseService) GetById(ctx context.Context, id primitive.ObjectID) (*epamodels.EPACase, error) {
	epaCase, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &epaCase, nil
}

// Stats trả về số liệu tổng hợp theo filter hiện tại.
func (s *EPACaseService) Stats(ctx context.Context, q EPACaseListQuery) (*epadto.EPAStatsResponse, error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total":          bson.M{"$sum": 1},
			"totalPenalties": bson.M{"$sum": "$totalPenalty"},
			"states":         bson.M{"$addToSet": "$facilityState"},
			"withPenalty": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gt": bson.A{"$totalPenalty", 0}}, 1, 0},
			}},
		}}},
	}
	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var rows []struct {
		Total          int64    `bson:"total"`
		TotalPenalties float64  `bson:"totalPenalties"`
		States         []string `bson:"states"`
		WithPenalty    int64    `bson:"withPenalty"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	stats := &epadto.EPAStatsResponse{
		CasesByState:  map[string]int64{},
		CasesByStatus: map[string]int64{},
		CasesByLaw:    map[string]int64{},
	}
	if len(rows) > 0 {
		stats.TotalCases = rows[0].Total
		stats.TotalPenalties = rows[0].TotalPenalties
		statesCount := int64(0)
		for _, state := range rows[0].States {
			if state != "" {
				statesCount++
			}
		}
		stats.StatesCount = statesCount
		if rows[0].WithPenalty > 0 {
			stats.AvgPenalty = rows[0].TotalPenalties / float64(rows[0].WithPenalty)
		}
	}

	byState, err := s.groupCount(ctx, filter, "$facilityState", 10)
	if err != nil {
		return nil, err
	}
	stats.CasesByState = byState

	byStatus, err := s.groupCount(ctx, filter, "$status", 0)
	if err != nil {
		return nil, err
	}
	stats.CasesByStatus = byStatus

	// Mỗi cờ luật đếm riêng, một vụ có thể tính vào nhiều luật
	for _, law := range epamodels.LawFlags {
		lawFilter := bson.M{law: true}
		for k, v := range filter {
			lawFilter[k] = v
		}
		count, err := s.CountDocuments(ctx, lawFilter)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			stats.CasesByLaw[law] = count
		}
	}

	return stats, nil
}

// Recent trả về các vụ việc có settlementDate trong N ngày gần nhất.
func (s *EPACaseService) Recent(ctx context.Context, days int, q EPACaseListQuery) (*epadto.RecentEPACasesResponse, error) {
	if days <= 0 {
		days = 7
	}
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -days).UnixMilli()
	if existing, ok := filter["settlementDate"].(bson.M); ok {
		existing["$gte"] = cutoff
	} else {
		filter["settlementDate"] = bson.M{"$gte": cutoff}
	}

	items, err := s.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "settlementDate", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(500))
	if err != nil {
		return nil, err
	}

	return &epadto.RecentEPACasesResponse{
		Count: int64(len(items)),
		Items: items,
	}, nil
}

// States trả về danh sách bang kèm số vụ việc, sort theo mã bang.
func (s *EPACaseService) States(ctx context.Context) ([]epadto.EPAStateCount, error) {
	counts, err := s.groupCount(ctx, bson.M{"facilityState": bson.M{"$nin": bson.A{nil, ""}}}, "$facilityState", 0)
	if err != nil {
		return nil, err
	}
	results := make([]epadto.EPAStateCount, 0, len(counts))
	for state, count := range counts {
		results = append(results, epadto.EPAStateCount{State: state, Count: count})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].State < results[j].State })
	return results, nil
}

// Laws trả về số vụ việc theo từng luật môi trường.
func (s *EPACaseService) Laws(ctx context.Context) ([]epadto.EPALawCount, error) {
	results := make([]epadto.EPALawCount, 0, len(epamodels.LawFlags))
	for _, law := range epamodels.LawFlags {
		count, err := s.CountDocuments(ctx, bson.M{law: true})
		if err != nil {
			return nil, err
		}
		results = append(results, epadto.EPALawCount{Law: law, Count: count})
	}
	return results, nil
}

// groupCount nhóm theo field và trả map giá trị -> số lượng, bỏ giá trị rỗng.
// limit = 0 nghĩa là không giới hạn.
func (s *EPACaseService) groupCount(ctx context.Context, filter bson.M, field string, limit int) (map[string]int64, error) {
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
		if row.ID == "" {
			continue
		}
		counts[row.ID] = row.Count
	}
	return counts, nil
}
