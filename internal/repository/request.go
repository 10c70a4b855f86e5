package repository

import (
	"gorm.io/gorm"

	"SiteOK/internal/model"
)

func CreateDateRequest(db *gorm.DB, req *model.DateRequest) error {
	return db.Create(req).Error
}

func GetDateRequestByID(db *gorm.DB, id int64) (*model.DateRequest, error) {
	var req model.DateRequest
	if err := db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPendingRequests 管理员的待办队列，新的在前
func ListPendingRequests(db *gorm.DB) ([]model.DateRequest, error) {
	var reqs []model.DateRequest
	err := db.Where("status = ?", model.RequestStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// DecidePendingRequest 受保护的状态迁移：只有 pending 的申请能被裁决。
// 返回命中的行数，0 行说明申请不存在或者已经有终态。
func DecidePendingRequest(db *gorm.DB, id int64, status model.RequestStatus) (int64, error) {
	result := db.Model(&model.DateRequest{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Update("status", status)
	return result.RowsAffected, result.Error
}
