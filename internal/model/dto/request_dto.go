package dto

// ========== 补卡日期审批相关 DTO ==========

// CreateDateRequest 工人提交非当日日期的申请
type CreateDateRequest struct {
	ProjectCode   string `json:"project_code" binding:"required"`
	UserName      string `json:"user_name" binding:"required"`
	RequestedDate string `json:"requested_date" binding:"required"`
	Reason        string `json:"reason"`
}

// CreateDateResponse 返回申请 id，客户端随后开始轮询
type CreateDateResponse struct {
	ID int64 `json:"id"`
}

// DecideRequest 管理员裁决
type DecideRequest struct {
	Status string `json:"status" binding:"required"`
}

// RequestStatusResponse 轮询接口只暴露状态
type RequestStatusResponse struct {
	Status string `json:"status"`
}
