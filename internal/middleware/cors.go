package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CORSMiddleware 放开跨域。接口走 Bearer token，不依赖 cookie，
// 所以不需要 Allow-Credentials，直接允许任意来源
func CORSMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		// Last-Event-ID 给 SSE 重连用
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Last-Event-ID")
		c.Header("Access-Control-Max-Age", "7200")

		if string(c.Method()) == "OPTIONS" {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}

		c.Next(ctx)
	}
}
