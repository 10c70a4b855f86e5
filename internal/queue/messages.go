package queue

// SessionOpenedEvent 新签到事件，目前只有事件总线上的旁观者会消费
type SessionOpenedEvent struct {
	MessageID   string `json:"message_id"`
	Name        string `json:"name"`
	ProjectCode string `json:"project_code"`
	Date        string `json:"date"`
	TimeIn      string `json:"time_in"`
}

// ApprovalRequestedEvent 新的日期放行申请，worker 消费后给项目管理员发邮件
type ApprovalRequestedEvent struct {
	MessageID     string `json:"message_id"`
	RequestID     int64  `json:"request_id"`
	ProjectCode   string `json:"project_code"`
	UserName      string `json:"user_name"`
	RequestedDate string `json:"requested_date"`
	Reason        string `json:"reason"`
}
