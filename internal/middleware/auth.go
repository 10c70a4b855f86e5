package middleware

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"

	"SiteOK/pkg/errors"
	"SiteOK/pkg/response"
	"SiteOK/pkg/token"
)

const (
	IdentityKey = token.IdentityKey
	RoleKey     = token.RoleKey
)

var (
	authMiddleware *jwt.HertzJWTMiddleware
)

func initAuthMiddleware() error {
	// 使用 token 包中共享的生成器
	sharedGenerator := token.GetGenerator()
	if sharedGenerator == nil {
		return fmt.Errorf("token generator not initialized, call token.Init() first")
	}

	authMiddleware = &jwt.HertzJWTMiddleware{
		Realm:       "SiteOK API",
		Key:         sharedGenerator.Key,
		Timeout:     sharedGenerator.Timeout,
		MaxRefresh:  sharedGenerator.MaxRefresh,
		IdentityKey: sharedGenerator.IdentityKey,
		TimeFunc:    sharedGenerator.TimeFunc,

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			uid, ok := claims[IdentityKey].(string)
			if !ok {
				if uidFloat, ok := claims[IdentityKey].(float64); ok {
					uid = fmt.Sprintf("%.0f", uidFloat)
				} else {
					return nil
				}
			}

			// role 一并塞进请求上下文，后面的角色校验不用再解一次 token
			if role, ok := claims[RoleKey].(string); ok {
				c.Set(RoleKey, role)
			}
			return uid
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(code, map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "UNAUTHORIZED",
					"message": message,
				},
			})
		},

		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
	}

	return nil
}

func AuthMiddleware() app.HandlerFunc {
	if authMiddleware == nil {
		panic("AuthMiddleware not initialized, call Init() first")
	}
	return authMiddleware.MiddlewareFunc()
}

// RequireRole 在 AuthMiddleware 之后挂载，限制路由组只允许某个角色访问
func RequireRole(role string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		got, ok := GetRole(ctx, c)
		if !ok || got != role {
			c.Abort()
			response.Error(ctx, c, errors.Forbidden)
			return
		}
		c.Next(ctx)
	}
}

// GetUserID 从请求上下文中获取当前主体 ID（字符串格式）
func GetUserID(ctx context.Context, c *app.RequestContext) (string, bool) {
	userID, exists := c.Get(IdentityKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok {
		return "", false
	}

	return id, true
}

func GetRole(ctx context.Context, c *app.RequestContext) (string, bool) {
	role, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}

	r, ok := role.(string)
	if !ok {
		return "", false
	}

	return r, true
}
