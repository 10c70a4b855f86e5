package model

import "time"

// BaseModel 时间戳由 gorm 维护，不依赖数据库默认值（单测跑在 sqlite 上）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
}
