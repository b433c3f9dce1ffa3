// Package global chứa các biến toàn cục dùng chung cho toàn bộ ứng dụng:
// cấu hình server, phiên kết nối MongoDB, registry collections và validator.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ShieldSphere/osha-tracker-sub001/config"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Inspections      string // Tên collection cho hồ sơ thanh tra OSHA
	Violations       string // Tên collection cho vi phạm thuộc hồ sơ thanh tra
	Companies        string // Tên collection cho công ty đã enrich
	EpaCases         string // Tên collection cho vụ xử lý của EPA
	CrmProspects     string // Tên collection cho prospect (cơ hội bán hàng)
	CrmActivities    string // Tên collection cho lịch sử hoạt động của prospect
	CrmCallbacks     string // Tên collection cho lịch hẹn gọi lại
	SyncRuns         string // Tên collection cho lịch sử chạy sync job
	SchemaMigrations string // Tên collection ghi nhận migration đã áp dụng
}

// Các biến toàn cục
var Validate *validator.Validate                   // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                  // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration             // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{     // Tên các collection
	Inspections:      "inspections",
	Violations:       "violations",
	Companies:        "companies",
	EpaCases:         "epa_cases",
	CrmProspects:     "crm_prospects",
	CrmActivities:    "crm_activities",
	CrmCallbacks:     "crm_callbacks",
	SyncRuns:         "sync_runs",
	SchemaMigrations: "schema_migrations",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// AllCollectionNames trả về danh sách tên collection theo thứ tự đăng ký.
func AllCollectionNames() []string {
	return []string{
		MongoDB_ColNames.Inspections,
		MongoDB_ColNames.Violations,
		MongoDB_ColNames.Companies,
		MongoDB_ColNames.EpaCases,
		MongoDB_ColNames.CrmProspects,
		MongoDB_ColNames.CrmActivities,
		MongoDB_ColNames.CrmCallbacks,
		MongoDB_ColNames.SyncRuns,
		MongoDB_ColNames.SchemaMigrations,
	}
}
