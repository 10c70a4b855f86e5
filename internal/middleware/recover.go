package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"SiteOK/config"
	"SiteOK/pkg/errors"
	"SiteOK/pkg/logger"
	"SiteOK/pkg/response"
)

// RecoverMiddleware 捕获 handler panic，记日志并返回统一的 500
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}) {
	stack := debug.Stack()

	logger.Logger.Error("Panic recovered",
		zap.Any("panic", err),
		zap.String("method", string(c.Method())),
		zap.String("path", string(c.Path())),
		zap.String("client_ip", c.ClientIP()),
		zap.ByteString("stack", stack),
	)

	errDef := errors.Definition{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "Internal server error",
	}

	if config.Cfg.IsProduction() {
		response.Error(ctx, c, errDef)
		return
	}

	// 开发环境把 panic 细节带回去，排错省一步
	response.ErrorWithDetails(ctx, c, errDef, map[string]interface{}{
		"panic":     fmt.Sprintf("%v", err),
		"timestamp": time.Now().Format(time.RFC3339),
		"stack":     string(stack),
	})
}
