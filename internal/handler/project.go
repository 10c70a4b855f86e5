package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SiteOK/internal/model/dto"
	"SiteOK/internal/service"
	"SiteOK/pkg/errors"
	"SiteOK/pkg/response"
)

// ListProjects 管理端项目列表
// GET /v1/projects
func ListProjects(ctx context.Context, c *app.RequestContext) {
	projects, err := service.Project().List(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, projects)
}

// CreateProject 新建项目
// POST /v1/projects
func CreateProject(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	project, err := service.Project().Create(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, project)
}

// UpdateProject 改名/换码
// PUT /v1/projects/:id
func UpdateProject(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.ProjectNotFound)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	project, err := service.Project().Update(ctx, id, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, project)
}

// DeleteProject 删除项目及其全部数据
// DELETE /v1/projects/:id
func DeleteProject(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.ProjectNotFound)
		return
	}

	if err := service.Project().Delete(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// VerifyProjectCode 工人端只验项目码
// POST /v1/projects/verify-code
func VerifyProjectCode(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Project().VerifyCode(ctx, req.Code)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// VerifyProject 验项目码 + 项目口令
// POST /v1/projects/verify
func VerifyProject(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyProjectRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Project().Verify(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// VerifyProjectAccess 管理员进看板前的口令复核
// POST /v1/projects/:id/verify-access
func VerifyProjectAccess(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.ProjectNotFound)
		return
	}

	var req dto.ProjectPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Project().VerifyAccess(ctx, id, req.Password); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"success": true})
}

// UpdateProjectPassword 换项目口令
// PUT /v1/projects/:id/password
func UpdateProjectPassword(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.ProjectNotFound)
		return
	}

	var req dto.ProjectPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Project().UpdatePassword(ctx, id, req.Password); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Password updated successfully"})
}

// RequestProjectPassword 工人忘记口令，通知在线管理端
// POST /v1/projects/request-password
func RequestProjectPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.WorkerPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Project().RequestPassword(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Request sent to administrator"})
}

// ProjectForgotPassword 给管理员邮箱发重置码
// POST /v1/projects/forgot-password
func ProjectForgotPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.ProjectForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	adminEmail, err := service.Project().ForgotPassword(ctx, req.Code)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"message": "Reset code sent to your email",
		"email":   adminEmail,
	})
}

// ProjectVerifyResetToken 验重置码
// POST /v1/projects/verify-reset-token
func ProjectVerifyResetToken(ctx context.Context, c *app.RequestContext) {
	var req dto.ProjectVerifyResetRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Project().VerifyResetToken(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"valid": true})
}

// ProjectResetPassword 凭重置码设新口令
// POST /v1/projects/reset-password
func ProjectResetPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.ProjectResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Project().ResetPassword(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"message": "Password reset successfully"})
}
