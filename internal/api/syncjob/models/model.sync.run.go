// Package syncmodels chứa model lần chạy đồng bộ dữ liệu.
package syncmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái của một lần chạy đồng bộ.
const (
	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncRun ghi lại một lần chạy job đồng bộ (cron hoặc kích hoạt tay).
type SyncRun struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	JobName    string             `json:"job_name" bson:"jobName"`
	Status     string             `json:"status" bson:"status"` // running | success | failed
	StartedAt  int64              `json:"started_at" bson:"startedAt"`
	FinishedAt *int64             `json:"finished_at,omitempty" bson:"finishedAt,omitempty"`
	Details    string             `json:"details,omitempty" bson:"details,omitempty"`
	Error      string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt  int64              `json:"created_at" bson:"createdAt"`
	UpdatedAt  int64              `json:"updated_at" bson:"updatedAt"`
}
