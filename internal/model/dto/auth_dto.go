package dto

// ========== Auth 相关 DTO ==========

// LoginRequest 管理员/门卫登录
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSignupRequest 管理员注册
type AdminSignupRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

// GuardSignupRequest 门卫注册
type GuardSignupRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	ProjectID *int64 `json:"project_id"`
}

// UserSnapshot 登录后的用户快照
type UserSnapshot struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ProjectID *int64 `json:"project_id,omitempty"`
}

// TokenResponse 登录响应
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      UserSnapshot `json:"user"`
}

// ForgotPasswordRequest 管理员找回密码（不暴露邮箱是否存在）
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest 凭重置令牌设置新密码
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
