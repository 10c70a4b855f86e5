package repository

import (
	"time"

	"gorm.io/gorm"

	"SiteOK/internal/model"
)

func GetAdminByEmail(db *gorm.DB, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func CreateAdmin(db *gorm.DB, admin *model.Admin) error {
	return db.Create(admin).Error
}

func SaveAdmin(db *gorm.DB, admin *model.Admin) error {
	return db.Save(admin).Error
}

// GetAdminByResetToken 只认未过期的令牌
func GetAdminByResetToken(db *gorm.DB, token string, now time.Time) (*model.Admin, error) {
	var admin model.Admin
	err := db.Where("reset_token = ? AND reset_expires > ?", token, now).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
