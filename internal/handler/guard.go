package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SiteOK/internal/model/dto"
	"SiteOK/internal/service"
	"SiteOK/pkg/errors"
	"SiteOK/pkg/response"
)

// GuardSignup 门卫注册
// POST /v1/guards/signup
func GuardSignup(ctx context.Context, c *app.RequestContext) {
	var req dto.GuardSignupRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Auth().GuardSignup(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Guard account created successfully"})
}

// GuardLogin 门卫登录
// POST /v1/guards/login
func GuardLogin(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().GuardLogin(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListGuards 门卫列表（带所属项目）
// GET /v1/guards
func ListGuards(ctx context.Context, c *app.RequestContext) {
	guards, err := service.Auth().ListGuards(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, guards)
}

// AssignGuardProject 把门卫分到项目
// PUT /v1/guards/:id/assign-project
func AssignGuardProject(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.GuardNotFound)
		return
	}

	var req struct {
		ProjectID *int64 `json:"project_id"`
	}
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Auth().AssignGuard(ctx, id, req.ProjectID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Guard assigned to project successfully"})
}

// DeleteGuard 注销门卫账号
// DELETE /v1/guards/:id
func DeleteGuard(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.GuardNotFound)
		return
	}

	if err := service.Auth().DeleteGuard(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}
