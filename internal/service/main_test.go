package service

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"SiteOK/internal/model"
)

// newTestDB 每个测试一个内存 sqlite，限制单连接避免 :memory: 各连各库
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

	err = db.AutoMigrate(
		&model.Admin{},
		&model.Guard{},
		&model.Project{},
		&model.AttendanceLog{},
		&model.DateRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func seedProject(t *testing.T, db *gorm.DB, code string) *model.Project {
	t.Helper()

	project := &model.Project{
		Name:       "Test Site",
		Code:       code,
		AdminEmail: "admin@site.test",
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

// recordingSink 记录发出的事件，断言通知侧被触发
type recordingSink struct {
	mu       sync.Mutex
	opened   []string
	filed    []int64
	requests []string
}

func (r *recordingSink) SessionOpened(_ context.Context, log *model.AttendanceLog, projectCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, log.Name)
}

func (r *recordingSink) ApprovalRequested(_ context.Context, req *model.DateRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filed = append(r.filed, req.ID)
}

func (r *recordingSink) PasswordRequested(_ context.Context, projectCode, workerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, projectCode)
}
