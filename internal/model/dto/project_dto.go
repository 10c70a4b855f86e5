package dto

// ========== 项目相关 DTO ==========

// CreateProjectRequest 管理员创建项目
type CreateProjectRequest struct {
	Name       string `json:"name" binding:"required"`
	Code       string `json:"code" binding:"required"`
	Password   string `json:"password" binding:"required"`
	AdminEmail string `json:"admin_email" binding:"required"`
}

// UpdateProjectRequest 改名/换码
type UpdateProjectRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// VerifyCodeRequest 工人端仅校验项目码
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyProjectRequest 校验项目码 + 项目口令
type VerifyProjectRequest struct {
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProjectSnapshot 对工人端暴露的项目信息
type ProjectSnapshot struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// VerifyProjectResponse 校验结果
type VerifyProjectResponse struct {
	Valid   bool            `json:"valid"`
	Project ProjectSnapshot `json:"project"`
}

// ProjectPasswordRequest 修改/校验项目口令
type ProjectPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// WorkerPasswordRequest 工人忘记项目口令，通知管理员
type WorkerPasswordRequest struct {
	Code       string `json:"code" binding:"required"`
	WorkerName string `json:"worker_name"`
}

// ProjectForgotPasswordRequest 项目口令重置：发码
type ProjectForgotPasswordRequest struct {
	Code string `json:"code" binding:"required"`
}

// ProjectVerifyResetRequest 项目口令重置：验码
type ProjectVerifyResetRequest struct {
	Code       string `json:"code" binding:"required"`
	ResetToken string `json:"reset_token" binding:"required"`
}

// ProjectResetPasswordRequest 项目口令重置：设新口令
type ProjectResetPasswordRequest struct {
	Code        string `json:"code" binding:"required"`
	ResetToken  string `json:"reset_token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
