package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SiteOK/internal/model/dto"
	"SiteOK/internal/service"
	"SiteOK/pkg/response"
)

// SubmitContactQuery 工人端联系表单，转发到支持邮箱
// POST /v1/contact
func SubmitContactQuery(ctx context.Context, c *app.RequestContext) {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Contact().Submit(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]string{"message": "Query sent successfully"})
}
