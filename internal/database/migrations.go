// Package database - Tập migration có thứ tự cho schema MongoDB.
// Mỗi migration có Up (tạo collection/index) và Down đảo ngược chính xác Up
// (drop index/collection theo thứ tự ngược lại) để lịch sử schema luôn invertible.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ShieldSphere/osha-tracker-sub001/internal/global"
	"github.com/ShieldSphere/osha-tracker-sub001/internal/logger"
)

// Migration là một bước biến đổi schema có thể áp dụng và đảo ngược.
type Migration struct {
	Name string // Định danh duy nhất, có số thứ tự (ví dụ: 001_create_regulatory)
	Up   func(ctx context.Context, db *mongo.Database) error
	Down func(ctx context.Context, db *mongo.Database) error
}

// appliedMigration là document ghi nhận migration đã áp dụng.
type appliedMigration struct {
	Name      string `bson:"name"`
	AppliedAt int64  `bson:"appliedAt"` // Unix ms
}

// AllMigrations trả về tập migration theo thứ tự áp dụng.
func AllMigrations() []Migration {
	return []Migration{
		{
			Name: "001_create_regulatory_collections",
			Up:   upRegulatoryCollections,
			Down: downRegulatoryCollections,
		},
		{
			Name: "002_create_epa_cases",
			Up:   upEpaCases,
			Down: downEpaCases,
		},
		{
			Name: "003_create_crm_collections",
			Up:   upCrmCollections,
			Down: downCrmCollections,
		},
		{
			Name: "004_create_sync_runs",
			Up:   upSyncRuns,
			Down: downSyncRuns,
		},
	}
}

// Migrate áp dụng các migration chưa chạy theo đúng thứ tự.
func Migrate(ctx context.Context, db *mongo.Database) error {
	log := logger.GetAppLogger()
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return fmt.Errorf("đọc schema_migrations: %w", err)
	}

	for _, m := range AllMigrations() {
		if applied[m.Name] {
			continue
		}
		log.WithField("migration", m.Name).Info("Applying migration")
		if err := m.Up(ctx, db); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		rec := appliedMigration{Name: m.Name, AppliedAt: time.Now().UnixMilli()}
		if _, err := migrationColl(db).InsertOne(ctx, rec); err != nil {
			return fmt.Errorf("ghi nhận migration %s: %w", m.Name, err)
		}
	}
	return nil
}

// Rollback đảo ngược `steps` migration cuối cùng theo thứ tự ngược lại.
// steps <= 0 nghĩa là đảo ngược toàn bộ.
func Rollback(ctx context.Context, db *mongo.Database, steps int) error {
	log := logger.GetAppLogger()
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return fmt.Errorf("đọc schema_migrations: %w", err)
	}

	all := AllMigrations()
	if steps <= 0 {
		steps = len(all)
	}

	// Duyệt ngược: migration áp dụng sau cùng phải được revert trước
	reverted := 0
	for i := len(all) - 1; i >= 0 && reverted < steps; i-- {
		m := all[i]
		if !applied[m.Name] {
			continue
		}
		log.WithField("migration", m.Name).Info("Reverting migration")
		if err := m.Down(ctx, db); err != nil {
			return fmt.Errorf("revert migration %s: %w", m.Name, err)
		}
		if _, err := migrationColl(db).DeleteOne(ctx, bson.M{"name": m.Name}); err != nil {
			return fmt.Errorf("xóa ghi nhận migration %s: %w", m.Name, err)
		}
		reverted++
	}
	return nil
}

func migrationColl(db *mongo.Database) *mongo.Collection {
	return db.Collection(global.MongoDB_ColNames.SchemaMigrations)
}

func appliedSet(ctx context.Context, db *mongo.Database) (map[string]bool, error) {
	cursor, err := migrationColl(db).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	applied := make(map[string]bool)
	for cursor.Next(ctx) {
		var rec appliedMigration
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		applied[rec.Name] = true
	}
	return applied, cursor.Err()
}

// ====================================
// 001: inspections, violations, companies
// ====================================

func upRegulatoryCollections(ctx context.Context, db *mongo.Database) error {
	inspections := db.Collection(global.MongoDB_ColNames.Inspections)
	if err := createIndex(ctx, inspections, bson.D{{Key: "activityNr", Value: 1}},
		options.Index().SetName("inspection_activity_nr_unique").SetUnique(true)); err != nil {
		return err
	}
	if err := createIndex(ctx, inspections, bson.D{{Key: "siteState", Value: 1}},
		options.Index().SetName("inspection_site_state")); err != nil {
		return err
	}
	if err := createIndex(ctx, inspections, bson.D{{Key: "openDate", Value: -1}},
		options.Index().SetName("inspection_open_date")); err != nil {
		return err
	}

	violations := db.Collection(global.MongoDB_ColNames.Violations)
	if err := createIndex(ctx, violations, bson.D{{Key: "activityNr", Value: 1}, {Key: "citationId", Value: 1}},
		options.Index().SetName("violation_activity_citation_unique").SetUnique(true)); err != nil {
		return err
	}
	if err := createIndex(ctx, violations, bson.D{{Key: "issuanceDate", Value: -1}},
		options.Index().SetName("violation_issuance_date")); err != nil {
		return err
	}

	companies := db.Collection(global.MongoDB_ColNames.Companies)
	if err := createIndex(ctx, companies, bson.D{{Key: "inspectionId", Value: 1}},
		options.Index().SetName("company_inspection").SetSparse(true)); err != nil {
		return err
	}
	return nil
}

func downRegulatoryCollections(ctx context.Context, db *mongo.Database) error {
	// Đảo ngược chính xác thứ tự của Up: drop index trước rồi drop collection,
	// collection tạo sau drop trước.
	companies := db.Collection(global.MongoDB_ColNames.Companies)
	if err := dropIndex(ctx, companies, "company_inspection"); err != nil {
		return err
	}
	if err := companies.Drop(ctx); err != nil {
		return err
	}

	violations := db.Collection(global.MongoDB_ColNames.Violations)
	if err := dropIndex(ctx, violations, "violation_issuance_date"); err != nil {
		return err
	}
	if err := dropIndex(ctx, violations, "violation_activity_citation_unique"); err != nil {
		return err
	}
	if err := violations.Drop(ctx); err != nil {
		return err
	}

	inspections := db.Collection(global.MongoDB_ColNames.Inspections)
	if err := dropIndex(ctx, inspections, "inspection_open_date"); err != nil {
		return err
	}
	if err := dropIndex(ctx, inspections, "inspection_site_state"); err != nil {
		return err
	}
	if err := dropIndex(ctx, inspections, "inspection_activity_nr_unique"); err != nil {
		return err
	}
	return inspections.Drop(ctx)
}

// ====================================
// 002: epa_cases
// ====================================

func upEpaCases(ctx context.Context, db *mongo.Database) error {
	epaCases := db.Collection(global.MongoDB_ColNames.EpaCases)
	if err := createIndex(ctx, epaCases, bson.D{{Key: "caseNumber", Value: 1}},
		options.Index().SetName("epa_case_number_unique").SetUnique(true)); err != nil {
		return err
	}
	if err := createIndex(ctx, epaCases, bson.D{{Key: "facilityState", Value: 1}},
		options.Index().SetName("epa_facility_state")); err != nil {
		return err
	}
	return createIndex(ctx, epaCases, bson.D{{Key: "settlementDate", Value: -1}},
		options.Index().SetName("epa_settlement_date"))
}

func downEpaCases(ctx context.Context, db *mongo.Database) error {
	epaCases := db.Collection(global.MongoDB_ColNames.EpaCases)
	if err := dropIndex(ctx, epaCases, "epa_settlement_date"); err != nil {
		return err
	}
	if err := dropIndex(ctx, epaCases, "epa_facility_state"); err != nil {
		return err
	}
	if err := dropIndex(ctx, epaCases, "epa_case_number_unique"); err != nil {
		return err
	}
	return epaCases.Drop(ctx)
}

// ====================================
// 003: crm_prospects, crm_activities, crm_callbacks
// ====================================

func upCrmCollections(ctx context.Context, db *mongo.Database) error {
	prospects := db.Collection(global.MongoDB_ColNames.CrmProspects)
	// Ràng buộc duy nhất ở tầng storage: tối đa một prospect cho mỗi inspection.
	// Hai create đồng thời cho cùng inspection thì đúng một cái thành công,
	// cái còn lại nhận duplicate key (dịch thành Conflict ở tầng domain).
	if err := createIndex(ctx, prospects, bson.D{{Key: "inspectionId", Value: 1}},
		options.Index().SetName("prospect_inspection_unique").SetUnique(true)); err != nil {
		return err
	}
	if err := createIndex(ctx, prospects, bson.D{{Key: "status", Value: 1}},
		options.Index().SetName("prospect_status")); err != nil {
		return err
	}
	if err := createIndex(ctx, prospects, bson.D{{Key: "priority", Value: 1}},
		options.Index().SetName("prospect_priority").SetSparse(true)); err != nil {
		return err
	}
	if err := createIndex(ctx, prospects, bson.D{{Key: "createdAt", Value: -1}},
		options.Index().SetName("prospect_created_at")); err != nil {
		return err
	}

	activities := db.Collection(global.MongoDB_ColNames.CrmActivities)
	if err := createIndex(ctx, activities, bson.D{{Key: "prospectId", Value: 1}, {Key: "activityDate", Value: -1}},
		options.Index().SetName("activity_prospect_date")); err != nil {
		return err
	}

	callbacks := db.Collection(global.MongoDB_ColNames.CrmCallbacks)
	if err := createIndex(ctx, callbacks, bson.D{{Key: "prospectId", Value: 1}, {Key: "callbackDate", Value: 1}},
		options.Index().SetName("callback_prospect_date")); err != nil {
		return err
	}
	if err := createIndex(ctx, callbacks, bson.D{{Key: "status", Value: 1}},
		options.Index().SetName("callback_status")); err != nil {
		return err
	}
	return createIndex(ctx, callbacks, bson.D{{Key: "callbackDate", Value: 1}},
		options.Index().SetName("callback_date"))
}

func downCrmCollections(ctx context.Context, db *mongo.Database) error {
	callbacks := db.Collection(global.MongoDB_ColNames.CrmCallbacks)
	if err := dropIndex(ctx, callbacks, "callback_date"); err != nil {
		return err
	}
	if err := dropIndex(ctx, callbacks, "callback_status"); err != nil {
		return err
	}
	if err := dropIndex(ctx, callbacks, "callback_prospect_date"); err != nil {
		return err
	}
	if err := callbacks.Drop(ctx); err != nil {
		return err
	}

	activities := db.Collection(global.MongoDB_ColNames.CrmActivities)
	if err := dropIndex(ctx, activities, "activity_prospect_date"); err != nil {
		return err
	}
	if err := activities.Drop(ctx); err != nil {
		return err
	}

	prospects := db.Collection(global.MongoDB_ColNames.CrmProspects)
	if err := dropIndex(ctx, prospects, "prospect_created_at"); err != nil {
		return err
	}
	if err := dropIndex(ctx, prospects, "prospect_priority"); err != nil {
		return err
	}
	if err := dropIndex(ctx, prospects, "prospect_status"); err != nil {
		return err
	}
	if err := dropIndex(ctx, prospects, "prospect_inspection_unique"); err != nil {
		return err
	}
	return prospects.Drop(ctx)
}

// ====================================
// 004: sync_runs
// ====================================

func upSyncRuns(ctx context.Context, db *mongo.Database) error {
	syncRuns := db.Collection(global.MongoDB_ColNames.SyncRuns)
	return createIndex(ctx, syncRuns, bson.D{{Key: "jobName", Value: 1}, {Key: "startedAt", Value: -1}},
		options.Index().SetName("sync_run_job_started"))
}

func downSyncRuns(ctx context.Context, db *mongo.Database) error {
	syncRuns := db.Collection(global.MongoDB_ColNames.SyncRuns)
	if err := dropIndex(ctx, syncRuns, "sync_run_job_started"); err != nil {
		return err
	}
	return syncRuns.Drop(ctx)
}

// createIndex tạo index có tên, bỏ qua lỗi index đã tồn tại để Up idempotent.
func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, opts *options.IndexOptions) error {
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); err != nil && !isIndexExistsError(err) {
		return err
	}
	return nil
}

// dropIndex xóa index theo tên, bỏ qua lỗi index không tồn tại để Down idempotent.
func dropIndex(ctx context.Context, coll *mongo.Collection, name string) error {
	if _, err := coll.Indexes().DropOne(ctx, name); err != nil && !isIndexNotFoundError(err) {
		return err
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}

func isIndexNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "index not found") || strings.Contains(s, "ns not found") || strings.Contains(s, "IndexNotFound")
}
