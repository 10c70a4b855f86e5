package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SiteOK/internal/model/dto"
	"SiteOK/internal/service"
	"SiteOK/pkg/errors"
	"SiteOK/pkg/response"
)

// FileDateRequest 工人提交非当日日期申请
// POST /v1/requests
func FileDateRequest(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateDateRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Approval().FileRequest(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetRequestStatus 轮询接口，只返回状态
// GET /v1/requests/:id
func GetRequestStatus(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.RequestNotFound)
		return
	}

	result, err := service.Approval().GetStatus(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListPendingRequests 管理员待办队列
// GET /v1/requests/pending
func ListPendingRequests(ctx context.Context, c *app.RequestContext) {
	requests, err := service.Approval().ListPending(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, requests)
}

// DecideRequest 管理员裁决
// PUT /v1/requests/:id/status
func DecideRequest(ctx context.Context, c *app.RequestContext) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(ctx, c, errors.RequestNotFound)
		return
	}

	var req dto.DecideRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Approval().Decide(ctx, id, req.Status); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"status": req.Status})
}
