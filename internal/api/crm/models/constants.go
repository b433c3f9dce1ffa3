// Package models - Constants cho domain CRM: trạng thái pipeline, loại hoạt động,
// trạng thái lịch gọi lại. Các type là string đóng, luôn kiểm tra bằng IsValid
// trước khi ghi xuống storage.
package models

// ProspectStatus là trạng thái pipeline của một prospect.
type ProspectStatus string

const (
	ProspectStatusNewLead   ProspectStatus = "new_lead"  // Mới tạo, chưa liên hệ
	ProspectStatusContacted ProspectStatus = "contacted" // Đã liên hệ ít nhất một lần
	ProspectStatusQualified ProspectStatus = "qualified" // Đã xác định có nhu cầu thực
	ProspectStatusWon       ProspectStatus = "won"       // Chốt thành công
	ProspectStatusLost      ProspectStatus = "lost"      // Không thành
)

// AllProspectStatuses liệt kê các trạng thái hợp lệ theo thứ tự pipeline.
var AllProspectStatuses = []ProspectStatus{
	ProspectStatusNewLead,
	ProspectStatusContacted,
	ProspectStatusQualified,
	ProspectStatusWon,
	ProspectStatusLost,
}

// IsValid kiểm tra giá trị có thuộc tập trạng thái hợp lệ không.
func (s ProspectStatus) IsValid() bool {
	switch s {
	case ProspectStatusNewLead, ProspectStatusContacted, ProspectStatusQualified,
		ProspectStatusWon, ProspectStatusLost:
		return true
	}
	return false
}

// IsOpen trả về true nếu prospect còn trong pipeline (chưa won/lost).
func (s ProspectStatus) IsOpen() bool {
	switch s {
	case ProspectStatusNewLead, ProspectStatusContacted, ProspectStatusQualified:
		return true
	}
	return false
}

// ActivityType là loại hoạt động ghi nhận với prospect.
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeNote    ActivityType = "note"
	ActivityTypeTask    ActivityType = "task"
)

// AllActivityTypes liệt kê các loại hoạt động hợp lệ.
var AllActivityTypes = []ActivityType{
	ActivityTypeCall,
	ActivityTypeEmail,
	ActivityTypeMeeting,
	ActivityTypeNote,
	ActivityTypeTask,
}

// IsValid kiểm tra giá trị có thuộc tập loại hoạt động hợp lệ không.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting,
		ActivityTypeNote, ActivityTypeTask:
		return true
	}
	return false
}

// IsContact trả về true nếu loại hoạt động là một lần tiếp xúc thực với khách
// (call, email, meeting). Hoạt động tiếp xúc đầu tiên chuyển prospect từ
// new_lead sang contacted.
func (t ActivityType) IsContact() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting:
		return true
	}
	return false
}

// CallbackStatus là trạng thái của một lịch hẹn gọi lại.
type CallbackStatus string

const (
	CallbackStatusPending   CallbackStatus = "pending"
	CallbackStatusCompleted CallbackStatus = "completed"
	CallbackStatusCancelled CallbackStatus = "cancelled"
)

// AllCallbackStatuses liệt kê các trạng thái callback hợp lệ.
var AllCallbackStatuses = []CallbackStatus{
	CallbackStatusPending,
	CallbackStatusCompleted,
	CallbackStatusCancelled,
}

// IsValid kiểm tra giá trị có thuộc tập trạng thái callback hợp lệ không.
func (s CallbackStatus) IsValid() bool {
	switch s {
	case CallbackStatusPending, CallbackStatusCompleted, CallbackStatusCancelled:
		return true
	}
	return false
}
