package repository

import (
	"gorm.io/gorm"

	"SiteOK/internal/model"
)

// 看板排序：工作日期倒序，同一天按签到时间正序
const logOrder = "date DESC, time_in ASC"

func CreateLog(db *gorm.DB, log *model.AttendanceLog) error {
	return db.Create(log).Error
}

func GetLogByID(db *gorm.DB, id int64) (*model.AttendanceLog, error) {
	var log model.AttendanceLog
	if err := db.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// ListActiveLogs 仍在场（未签退）的记录
func ListActiveLogs(db *gorm.DB, projectID int64) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := db.Where("project_id = ? AND time_out IS NULL", projectID).
		Order(logOrder).
		Find(&logs).Error
	return logs, err
}

// ListLogs 项目的全部记录（含已签退），导出/报表用
func ListLogs(db *gorm.DB, projectID int64) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := db.Where("project_id = ?", projectID).
		Order(logOrder).
		Find(&logs).Error
	return logs, err
}

// UpdateLogGuarded 按 id（以及可选的 version）做一次原子更新，返回命中的行数。
// version == nil 保持最后写覆盖的老行为；version 命中失败返回 0 行，由上层
// 区分 NOT_FOUND 和 VERSION_CONFLICT。每次命中都把 version + 1。
func UpdateLogGuarded(db *gorm.DB, id int64, version *int, fields map[string]interface{}) (int64, error) {
	fields["version"] = gorm.Expr("version + 1")

	q := db.Model(&model.AttendanceLog{}).Where("id = ?", id)
	if version != nil {
		q = q.Where("version = ?", *version)
	}

	result := q.Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteLog 硬删除，返回是否真的删掉了一行
func DeleteLog(db *gorm.DB, id int64) (bool, error) {
	result := db.Delete(&model.AttendanceLog{}, id)
	return result.RowsAffected > 0, result.Error
}
