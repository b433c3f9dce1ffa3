// Package crmvc - Service activity CRM (crm_activities).
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
	"github.com/ShieldSphere/osha-tracker-sub001/internal/common"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
)

// CrmActivityService xử lý nghiệp vụ activity của prospect.
type CrmActivityService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.CrmActivity]
	prospectColl *mongo.Collection
}

// NewCrmActivityService tạo CrmActivityService mới.
func NewCrmActivityService() (*CrmActivityService, error) {
	activityColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmActivities)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmActivities, common.ErrNotFound)
	}
	prospectColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrmProspects)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrmProspects, common.ErrNotFound)
	}
	return &CrmActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.CrmActivity](activityColl),
		prospectColl:         prospectColl,
	}, nil
}

// Log ghi một hoạt động mới cho prospect.
//
// Prospect phải tồn tại (404 nếu không). Hoạt động tiếp xúc (call/email/meeting)
// ghi vào prospect đang new_lead sẽ tự chuyển prospect sang contacted;
// mọi hoạt động đều bump updatedAt của prospect.
func (s *CrmActivityService) Log(ctx context.Context, prospectID primitive.ObjectID, input *crmdto.CrmActivityCreateInput) (*crmdto.CrmActivityResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	activityType := crmmodels.ActivityType(input.ActivityType)
	if !activityType.IsValid() {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Loại hoạt động không hợp lệ: %s", input.ActivityType), common.StatusBadRequest, nil)
	}

	count, err := s.prospectColl.CountDocuments(ctx, bson.M{"_id": prospectID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if count == 0 {
		return nil, common.NewError(common.ErrCodeBusinessNotFound, "Không tìm thấy prospect", common.StatusNotFound, nil)
	}

	activityDate := time.Now().UnixMilli()
	if input.ActivityDate != nil {
		activityDate = *input.ActivityDate
	}

	activity := crmmodels.CrmActivity{
		ProspectId:      prospectID,
		Type:            activityType,
		Subject:         input.Subject,
		Description:     input.Description,
		Outcome:         input.Outcome,
		ActivityDate:    activityDate,
		DurationMinutes: input.DurationMinutes,
		TaskDueDate:     input.TaskDueDate,
	}

	created, err := s.InsertOne(ctx, activity)
	if err != nil {
		return nil, err
	}

	if err := s.touchProspect(ctx, prospectID, activityType); err != nil {
		return nil, err
	}

	resp := toActivityResponse(&created)
	return &resp, nil
}

// ListForProspect trả về activities của prospect, mới nhất trước.
func (s *CrmActivityService) ListForProspect(ctx context.Context, prospectID primitive.ObjectID, activityType string) ([]crmdto.CrmActivityResponse, error) {
	filter := bson.M{"prospectId": prospectID}
	if activityType != "" {
		if !crmmodels.ActivityType(activityType).IsValid() {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Loại hoạt động không hợp lệ: %s", activityType), common.StatusBadRequest, nil)
		}
		filter["activityType"] = activityType
	}

	activities, err := s.Find(ctx, filter,
		mongoopts.Find().SetSort(bson.D{{Key: "activityDate", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}

	responses := make([]crmdto.CrmActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, toActivityResponse(&activities[i]))
	}
	return responses, nil
}

// Update sửa các field cho phép của activity.
// taskCompleted chuyển sang true sẽ set taskCompletedDate = thời điểm cập nhật;
// chuyển về false thì xóa taskCompletedDate.
func (s *CrmActivityService) Update(ctx context.Context, id primitive.ObjectID, input *crmdto.CrmActivityUpdateInput) (*crmdto.CrmActivityResponse, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}

	set := bson.M{}
	unset := bson.M{}
	if input.Subject != nil {
		set["subject"] = *input.Subject
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Outcome != nil {
		set["outcome"] = *input.Outcome
	}
	if input.TaskCompleted != nil {
		set["taskCompleted"] = *input.TaskCompleted
		if *input.TaskCompleted {
			set["taskCompletedDate"] = time.Now().UnixMilli()
		} else {
			unset["taskCompletedDate"] = ""
		}
	}
	if len(set) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Không có field nào để cập nhật", common.StatusBadRequest, nil)
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	updated, err := s.UpdateById(ctx, id, update)
	if err != nil {
		return nil, err
	}
	resp := toActivityResponse(&updated)
	return &resp, nil
}

// Delete xóa một activity theo id.
func (s *CrmActivityService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// touchProspect bump updatedAt của prospect; hoạt động tiếp xúc còn chuyển
// prospect new_lead sang contacted.
func (s *CrmActivityService) touchProspect(ctx context.Context, prospectID primitive.ObjectID, activityType crmmodels.ActivityType) error {
	now := time.Now().UnixMilli()

	if activityType.IsContact() {
		_, err := s.prospectColl.UpdateOne(ctx,
			bson.M{"_id": prospectID, "status": crmmodels.ProspectStatusNewLead},
			bson.M{"$set": bson.M{"status": crmmodels.ProspectStatusContacted, "updatedAt": now}})
		if err != nil {
			return common.ConvertMongoError(err)
		}
	}

	_, err := s.prospectColl.UpdateOne(ctx,
		bson.M{"_id": prospectID},
		bson.M{"$set": bson.M{"updatedAt": now}})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
