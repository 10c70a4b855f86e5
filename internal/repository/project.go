package repository

import (
	"strings"

	"gorm.io/gorm"

	"SiteOK/internal/model"
)

// NormalizeCode 项目码统一按去空格 + 大写比较（工人手输大小写不可控）
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetProjectByCode 大小写不敏感、去空格匹配项目码
func GetProjectByCode(db *gorm.DB, code string) (*model.Project, error) {
	var project model.Project
	err := db.Where("UPPER(TRIM(code)) = ?", NormalizeCode(code)).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func GetProjectByID(db *gorm.DB, id int64) (*model.Project, error) {
	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func ListProjects(db *gorm.DB) ([]model.Project, error) {
	var projects []model.Project
	err := db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func CreateProject(db *gorm.DB, project *model.Project) error {
	return db.Create(project).Error
}

func SaveProject(db *gorm.DB, project *model.Project) error {
	return db.Save(project).Error
}

// ProjectCodeExists 查重，excludeID > 0 时排除自身（改码场景）
func ProjectCodeExists(db *gorm.DB, code string, excludeID int64) (bool, error) {
	var count int64
	q := db.Model(&model.Project{}).Where("UPPER(TRIM(code)) = ?", NormalizeCode(code))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteProjectCascade 连同出勤记录和补卡申请一起删除
func DeleteProjectCascade(db *gorm.DB, project *model.Project) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&model.AttendanceLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_code = ?", project.Code).Delete(&model.DateRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, project.ID).Error
	})
}
