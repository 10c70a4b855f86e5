package model

// UserType 出勤人员类别
type UserType string

const (
	UserTypeEmployee UserType = "Employee"
	UserTypeVisitor  UserType = "Visitor"
)

// AttendanceLog 一名工人单日的在场记录（签到到签退）。
// date/time 保持字符串存储：date 是工作日期（非提交时间），time_in/time_out
// 是分钟精度的墙钟 HH:MM；工时永远由服务端按 (date, time_in, time_out) 重算。
type AttendanceLog struct {
	BaseModel
	ProjectID int64    `gorm:"not null;index:idx_logs_project_date" json:"project_id"`
	Name      string   `gorm:"type:varchar(128);not null" json:"name"`
	Trade     string   `gorm:"type:varchar(64)" json:"trade"`
	CarReg    string   `gorm:"type:varchar(32)" json:"car_reg"`
	UserType  UserType `gorm:"type:varchar(16);not null;default:'Employee'" json:"user_type"`
	TimeIn    string   `gorm:"type:varchar(8);not null" json:"time_in"`
	TimeOut   *string  `gorm:"type:varchar(8)" json:"time_out"`
	Hours     *float64 `json:"hours"`
	Reason    string   `gorm:"type:varchar(255)" json:"reason,omitempty"`
	Date      string   `gorm:"type:varchar(10);not null;index:idx_logs_project_date" json:"date"`
	Version   int      `gorm:"not null;default:0" json:"version"` // 并发 checkout/update 的乐观锁
}

func (AttendanceLog) TableName() string {
	return "logs"
}

// Open 判断该记录是否仍在场（未签退）
func (l *AttendanceLog) Open() bool {
	return l.TimeOut == nil
}
