package model

import "time"

// Admin 后台管理员，负责项目 CRUD 与补卡申请审批
type Admin struct {
	BaseModel
	Email        string     `gorm:"type:varchar(128);not null;uniqueIndex" json:"email"`
	Password     string     `gorm:"type:varchar(128);not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(64)" json:"first_name,omitempty"`
	LastName     string     `gorm:"type:varchar(64)" json:"last_name,omitempty"`
	Phone        string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Organization string     `gorm:"type:varchar(128)" json:"organization,omitempty"`
	ResetToken   string     `gorm:"type:varchar(64)" json:"-"`
	ResetExpires *time.Time `json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
