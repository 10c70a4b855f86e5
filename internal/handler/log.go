package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SiteOK/internal/model/dto"
	"SiteOK/internal/service"
	"SiteOK/pkg/errors"
	"SiteOK/pkg/response"
)

// OpenSession 工人签到
// POST /v1/logs
func OpenSession(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateLogRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	log, err := service.Session().Open(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, log)
}

// Checkout 签退
// POST /v1/logs/:id/checkout
func Checkout(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.LogNotFound)
		return
	}

	// 请求体可以整个省略（默认取服务器当前时间）
	var req dto.CheckoutRequest
	if len(c.Request.Body()) > 0 {
		if err := c.Bind(&req); err != nil {
			response.BindError(ctx, c, err)
			return
		}
	}

	result, err := service.Session().Checkout(ctx, id, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UndoCheckout 撤销签退
// POST /v1/logs/:id/undo-checkout
func UndoCheckout(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.LogNotFound)
		return
	}

	if err := service.Session().Reopen(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"reopened": true})
}

// ListActiveSessions 某项目仍在场的记录
// GET /v1/logs/active/:project_code
func ListActiveSessions(ctx context.Context, c *app.RequestContext) {
	code := c.Param("project_code")

	logs, err := service.Session().ListActive(ctx, code)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, logs)
}

// ListProjectSessions 项目全量记录（含已签退）
// GET /v1/logs/project/:id
func ListProjectSessions(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.ProjectNotFound)
		return
	}

	logs, err := service.Session().ListAll(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, logs)
}

// UpdateSession 管理员改单
// PUT /v1/logs/:id
func UpdateSession(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.LogNotFound)
		return
	}

	var req dto.UpdateLogRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	log, err := service.Session().Update(ctx, id, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, log)
}

// DeleteSession 删除一条记录
// DELETE /v1/logs/:id
func DeleteSession(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.LogNotFound)
		return
	}

	if err := service.Session().Delete(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// ManualCreateSession 管理员手工补录
// POST /v1/logs/manual
func ManualCreateSession(ctx context.Context, c *app.RequestContext) {
	var req dto.ManualLogRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	log, err := service.Session().ManualCreate(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, log)
}
