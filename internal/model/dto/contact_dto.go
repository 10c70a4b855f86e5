package dto

// ContactRequest 工人端联系/反馈表单
type ContactRequest struct {
	Email string `json:"email" binding:"required"`
	Query string `json:"query" binding:"required"`
}
