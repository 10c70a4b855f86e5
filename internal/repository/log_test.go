package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"SiteOK/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Project{}, &model.AttendanceLog{}, &model.DateRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func mustCreateLog(t *testing.T, db *gorm.DB, name, date, timeIn string) *model.AttendanceLog {
	t.Helper()
	log := &model.AttendanceLog{
		ProjectID: 1,
		Name:      name,
		UserType:  model.UserTypeEmployee,
		TimeIn:    timeIn,
		Date:      date,
	}
	if err := CreateLog(db, log); err != nil {
		t.Fatalf("CreateLog failed: %v", err)
	}
	return log
}

// 看板排序：工作日期倒序，同一天按签到时间正序
func TestListLogsOrdering(t *testing.T) {
	db := newTestDB(t)

	mustCreateLog(t, db, "old-day", "2025-01-10", "08:00")
	mustCreateLog(t, db, "new-late", "2025-01-12", "10:00")
	mustCreateLog(t, db, "new-early", "2025-01-12", "07:30")

	logs, err := ListLogs(db, 1)
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}

	want := []string{"new-early", "new-late", "old-day"}
	if len(logs) != len(want) {
		t.Fatalf("log count = %d, want %d", len(logs), len(want))
	}
	for i, name := range want {
		if logs[i].Name != name {
			t.Errorf("logs[%d] = %q, want %q", i, logs[i].Name, name)
		}
	}
}

func TestGetProjectByCodeMatchesLoosely(t *testing.T) {
	db := newTestDB(t)

	project := &model.Project{Name: "Quay", Code: "QY-9"}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	for _, code := range []string{"QY-9", "qy-9", "  Qy-9  "} {
		got, err := GetProjectByCode(db, code)
		if err != nil {
			t.Errorf("GetProjectByCode(%q) failed: %v", code, err)
			continue
		}
		if got.ID != project.ID {
			t.Errorf("GetProjectByCode(%q) = project %d, want %d", code, got.ID, project.ID)
		}
	}
}

func TestUpdateLogGuardedVersionBumps(t *testing.T) {
	db := newTestDB(t)
	log := mustCreateLog(t, db, "Alice", "2025-01-10", "08:00")

	v := 0
	rows, err := UpdateLogGuarded(db, log.ID, &v, map[string]interface{}{"time_out": "17:00"})
	if err != nil {
		t.Fatalf("UpdateLogGuarded failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}

	// 旧 version 不再命中
	rows, err = UpdateLogGuarded(db, log.ID, &v, map[string]interface{}{"time_out": "18:00"})
	if err != nil {
		t.Fatalf("UpdateLogGuarded failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("stale version rows = %d, want 0", rows)
	}

	got, err := GetLogByID(db, log.ID)
	if err != nil {
		t.Fatalf("GetLogByID failed: %v", err)
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want 1", got.Version)
	}
	if got.TimeOut == nil || *got.TimeOut != "17:00" {
		t.Errorf("time_out = %v, want 17:00", got.TimeOut)
	}
}
