package repository

import (
	"time"

	"gorm.io/gorm"

	"SiteOK/internal/model"
)

func GetGuardByEmail(db *gorm.DB, email string) (*model.Guard, error) {
	var guard model.Guard
	if err := db.Where("email = ?", email).First(&guard).Error; err != nil {
		return nil, err
	}
	return &guard, nil
}

func CreateGuard(db *gorm.DB, guard *model.Guard) error {
	return db.Create(guard).Error
}

// GuardRow 门卫列表行，带所属项目信息（admin 看板用）
type GuardRow struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ProjectID   *int64    `json:"project_id"`
	ProjectName *string   `json:"project_name"`
	ProjectCode *string   `json:"project_code"`
	CreatedAt   time.Time `json:"created_at"`
}

func ListGuards(db *gorm.DB) ([]GuardRow, error) {
	var rows []GuardRow
	err := db.Model(&model.Guard{}).
		Select("guards.id, guards.name, guards.email, guards.project_id, guards.created_at, projects.name AS project_name, projects.code AS project_code").
		Joins("LEFT JOIN projects ON projects.id = guards.project_id").
		Order("guards.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// AssignGuardProject project_id 传 nil 表示解除分配
func AssignGuardProject(db *gorm.DB, id int64, projectID *int64) (bool, error) {
	result := db.Model(&model.Guard{}).Where("id = ?", id).Update("project_id", projectID)
	return result.RowsAffected > 0, result.Error
}

func DeleteGuard(db *gorm.DB, id int64) (bool, error) {
	result := db.Delete(&model.Guard{}, id)
	return result.RowsAffected > 0, result.Error
}
