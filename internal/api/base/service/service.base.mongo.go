// Package basesvc - Base service generic cho MongoDB.
// Các service domain embed BaseServiceMongoImpl[T] để có sẵn CRUD chuẩn,
// timestamps tự động và chuyển đổi lỗi driver sang lỗi domain.
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/utility"
)

// UpdateData chứa các toán tử update MongoDB được phép dùng qua base service.
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`         // Set giá trị mới cho field
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"` // Chỉ set khi upsert tạo mới
	Unset       map[string]interface{} `bson:"$unset,omitempty"`       // Xóa field khỏi document
}

// PaginateResult là kết quả phân trang chuẩn trả về cho client.
type PaginateResult[T any] struct {
	Items     []T   `json:"items"`     // Danh sách kết quả của trang hiện tại
	Page      int64 `json:"page"`      // Trang hiện tại (bắt đầu từ 1)
	Limit     int64 `json:"limit"`     // Số kết quả mỗi trang
	ItemCount int64 `json:"itemCount"` // Số kết quả trong trang hiện tại
	Total     int64 `json:"total"`     // Tổng số kết quả khớp filter
	TotalPage int64 `json:"totalPage"` // Tổng số trang
}

// BaseServiceMongo định nghĩa interface chứa các phương thức cơ bản cho service MongoDB
type BaseServiceMongo[Model any] interface {
	// ============================================
	// NHÓM 1: CÁC HÀM GHI DỮ LIỆU
	// ============================================
	InsertOne(ctx context.Context, data Model) (Model, error)
	InsertMany(ctx context.Context, data []Model) ([]Model, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (Model, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (Model, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error

	// ============================================
	// NHÓM 2: CÁC HÀM ĐỌC DỮ LIỆU
	// ============================================
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (PaginateResult[Model], error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)

	// Collection trả về collection gốc cho các truy vấn đặc thù (aggregation, transaction).
	Collection() *mongo.Collection
}

// BaseServiceMongoImpl là implementation của BaseServiceMongo
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo base service mới cho một collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// ============================================
// NHÓM 1: CÁC HÀM GHI DỮ LIỆU
// ============================================

// InsertOne chèn một document mới, tự động gắn createdAt/updatedAt (Unix ms)
// rồi đọc lại document vừa tạo để trả về bản đầy đủ.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}

	now := time.Now().UnixMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now
	// _id zero-value sẽ làm driver insert ObjectID null; để driver tự sinh
	if id, ok := dataMap["_id"]; ok {
		if oid, ok := id.(primitive.ObjectID); ok && oid.IsZero() {
			delete(dataMap, "_id")
		}
	}

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// InsertMany chèn nhiều documents, gắn timestamps cho từng document.
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	now := time.Now().UnixMilli()
	docs := make([]interface{}, 0, len(data))
	for _, d := range data {
		dataMap, err := utility.ToMap(d)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
		}
		dataMap["createdAt"] = now
		dataMap["updatedAt"] = now
		if id, ok := dataMap["_id"]; ok {
			if oid, ok := id.(primitive.ObjectID); ok && oid.IsZero() {
				delete(dataMap, "_id")
			}
		}
		docs = append(docs, dataMap)
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": result.InsertedIDs}})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var created []T
	if err := cursor.All(ctx, &created); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return created, nil
}

// UpdateOne cập nhật document đầu tiên khớp filter, tự động gắn updatedAt.
// Trả về ErrNotFound nếu không có document nào khớp.
// update có thể là bson.M chứa toán tử ($set, $unset...) hoặc *UpdateData.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (T, error) {
	var zero T
	if filter == nil {
		filter = bson.D{}
	}

	updateDoc, err := normalizeUpdate(update)
	if err != nil {
		return zero, err
	}

	result := s.collection.FindOneAndUpdate(ctx, filter, updateDoc,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	var updated T
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return updated, nil
}

// UpdateById cập nhật document theo _id.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, update interface{}) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, update, nil)
}

// DeleteOne xóa document đầu tiên khớp filter. ErrNotFound nếu không có gì để xóa.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	if filter == nil {
		filter = bson.D{}
	}
	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany xóa tất cả documents khớp filter, trả về số lượng đã xóa.
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// DeleteById xóa document theo _id.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// ============================================
// NHÓM 2: CÁC HÀM ĐỌC DỮ LIỆU
// ============================================

// FindOne tìm document đầu tiên khớp filter. ErrNotFound nếu không có.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var zero T
	if filter == nil {
		filter = bson.D{}
	}

	var findOpts []*options.FindOneOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	var result T
	if err := s.collection.FindOne(ctx, filter, findOpts...).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm document theo _id.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm tất cả documents khớp filter. Trả về slice rỗng (không phải nil) khi không có kết quả.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}

	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	cursor, err := s.collection.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination tìm documents theo filter với phân trang offset-based.
// page bắt đầu từ 1; limit <= 0 sẽ được đưa về 50.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (PaginateResult[T], error) {
	var result PaginateResult[T]
	if filter == nil {
		filter = bson.D{}
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return result, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return result, err
	}

	result.Items = items
	result.Page = page
	result.Limit = limit
	result.ItemCount = int64(len(items))
	result.Total = total
	result.TotalPage = (total + limit - 1) / limit
	return result, nil
}

// CountDocuments đếm số documents khớp filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct trả về các giá trị khác nhau của một field.
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	if filter == nil {
		filter = bson.D{}
	}
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// DocumentExists kiểm tra document khớp filter có tồn tại không.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// normalizeUpdate chuẩn hóa update document và gắn updatedAt vào $set.
func normalizeUpdate(update interface{}) (bson.M, error) {
	now := time.Now().UnixMilli()

	switch u := update.(type) {
	case *UpdateData:
		doc := bson.M{}
		set := bson.M{}
		for k, v := range u.Set {
			set[k] = v
		}
		set["updatedAt"] = now
		doc["$set"] = set
		if len(u.SetOnInsert) > 0 {
			doc["$setOnInsert"] = u.SetOnInsert
		}
		if len(u.Unset) > 0 {
			doc["$unset"] = u.Unset
		}
		return doc, nil
	case bson.M:
		doc := bson.M{}
		for k, v := range u {
			doc[k] = v
		}
		set, ok := doc["$set"].(bson.M)
		if !ok {
			set = bson.M{}
		}
		set["updatedAt"] = now
		doc["$set"] = set
		return doc, nil
	default:
		return nil, common.NewError(common.ErrCodeValidationFormat,
			"Update phải là bson.M hoặc *UpdateData", common.StatusBadRequest, nil)
	}
}
