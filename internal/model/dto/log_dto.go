package dto

// ========== 出勤记录相关 DTO ==========

// CreateLogRequest 移动端签到提交
type CreateLogRequest struct {
	ProjectCode string `json:"project_code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Trade       string `json:"trade"`
	CarReg      string `json:"car_reg"`
	UserType    string `json:"user_type"`
	TimeIn      string `json:"time_in" binding:"required"`
	Date        string `json:"date" binding:"required"`
}

// ManualLogRequest 管理员手工补录（可以带 time_out）
type ManualLogRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Trade     string `json:"trade"`
	CarReg    string `json:"car_reg"`
	UserType  string `json:"user_type"`
	TimeIn    string `json:"time_in" binding:"required"`
	TimeOut   string `json:"time_out"`
	Date      string `json:"date" binding:"required"`
}

// CheckoutRequest 签退。TimeOut 缺省用服务器墙钟（分钟精度），
// Version 可选：带上则按乐观锁校验，不带保持覆盖写老行为。
type CheckoutRequest struct {
	TimeOut *string `json:"time_out"`
	Version *int    `json:"version"`
}

// CheckoutResponse 签退结果
type CheckoutResponse struct {
	TimeOut string  `json:"time_out"`
	Hours   float64 `json:"hours"`
}

// UpdateLogRequest 管理员改单，工时由服务端重算
type UpdateLogRequest struct {
	Name     string `json:"name" binding:"required"`
	Trade    string `json:"trade"`
	CarReg   string `json:"car_reg"`
	UserType string `json:"user_type"`
	TimeIn   string `json:"time_in" binding:"required"`
	TimeOut  string `json:"time_out" binding:"required"`
	Reason   string `json:"reason"`
	Date     string `json:"date" binding:"required"`
	Version  *int   `json:"version"`
}
