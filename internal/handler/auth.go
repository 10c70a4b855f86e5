package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SiteOK/config"
	"SiteOK/internal/model/dto"
	"SiteOK/internal/service"
	"SiteOK/pkg/response"
)

// AdminLogin 管理员登录
// POST /v1/auth/login
func AdminLogin(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().AdminLogin(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// AdminSignup 管理员注册
// POST /v1/auth/signup
func AdminSignup(ctx context.Context, c *app.RequestContext) {
	var req dto.AdminSignupRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Auth().AdminSignup(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Admin account created successfully"})
}

// AdminForgotPassword 找回密码。无论邮箱存不存在都返回同一句话。
// POST /v1/auth/forgot-password
func AdminForgotPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resetToken, err := service.Auth().AdminForgotPassword(ctx, req.Email)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	data := map[string]interface{}{
		"message": "If that email exists, a reset link has been sent.",
	}
	// 开发环境把令牌直接带回来，省一次翻日志
	if config.Cfg.IsDevelopment() && resetToken != "" {
		data["mock_token"] = resetToken
	}

	response.Success(ctx, c, data)
}

// AdminResetPassword 凭令牌设新密码
// POST /v1/auth/reset-password
func AdminResetPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Auth().AdminResetPassword(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Password reset successful"})
}
