package model

// RequestStatus 补卡日期申请状态枚举
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"  // 待审批
	RequestStatusApproved RequestStatus = "approved" // 已通过
	RequestStatusRejected RequestStatus = "rejected" // 已驳回
)

// Terminal 审批是否已到终态（approved/rejected 之后不再迁移）
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// ValidDecision 是否是管理员可以下达的裁决
func (s RequestStatus) ValidDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// DateRequest 工人请求补录非当日出勤的审批单。
// 审批只解除客户端侧的日期门禁，不与某条出勤记录一一绑定。
type DateRequest struct {
	BaseModel
	ProjectCode   string        `gorm:"type:varchar(32);not null;index" json:"project_code"`
	UserName      string        `gorm:"type:varchar(128);not null" json:"user_name"`
	RequestedDate string        `gorm:"type:varchar(10);not null" json:"requested_date"`
	Reason        string        `gorm:"type:varchar(255)" json:"reason,omitempty"`
	Status        RequestStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
}

func (DateRequest) TableName() string {
	return "date_requests"
}
