package model

import "time"

// Project 一个工地项目，code 是工人提交出勤时的入口凭证
type Project struct {
	BaseModel
	Name             string     `gorm:"type:varchar(128);not null" json:"name"`
	Code             string     `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	Password         string     `gorm:"type:varchar(128)" json:"-"` // bcrypt，可为空表示无口令项目
	AdminEmail       string     `gorm:"type:varchar(128)" json:"admin_email,omitempty"`
	ResetToken       string     `gorm:"type:varchar(16)" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}

func (Project) TableName() string {
	return "projects"
}
