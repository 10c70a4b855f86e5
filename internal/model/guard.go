package model

// Guard 驻场门卫，可以结束/撤销签退，不能审批补卡申请
type Guard struct {
	BaseModel
	Name      string `gorm:"type:varchar(64);not null" json:"name"`
	Email     string `gorm:"type:varchar(128);not null;uniqueIndex" json:"email"`
	Password  string `gorm:"type:varchar(128);not null" json:"-"`
	ProjectID *int64 `gorm:"index" json:"project_id,omitempty"`
}

func (Guard) TableName() string {
	return "guards"
}
