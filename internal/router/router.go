package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"SiteOK/internal/handler"
	"SiteOK/internal/middleware"
	"SiteOK/pkg/token"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 管理员认证
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/login", handler.AdminLogin)
		auth.POST("/signup", handler.AdminSignup)
		auth.POST("/forgot-password", middleware.ResetRateLimitMiddleware(), handler.AdminForgotPassword)
		auth.POST("/reset-password", handler.AdminResetPassword)
	}

	// 出勤记录：签到 / 签退 / 在场列表是公开口（移动端无账号体系）
	logs := v1.Group("/logs")
	{
		logs.POST("", handler.OpenSession)
		logs.POST("/:id/checkout", handler.Checkout)
		logs.POST("/:id/undo-checkout", handler.UndoCheckout)
		logs.GET("/active/:project_code", handler.ListActiveSessions)

		// 改单 / 删单 / 补录 / 全量列表是管理员操作
		admin := logs.Group("", middleware.AuthMiddleware(), middleware.RequireRole(token.RoleAdmin))
		{
			admin.POST("/manual", handler.ManualCreateSession)
			admin.GET("/project/:id", handler.ListProjectSessions)
			admin.PUT("/:id", handler.UpdateSession)
			admin.DELETE("/:id", handler.DeleteSession)
		}
	}

	// 补卡日期审批：提交和轮询公开，裁决和待办队列只给管理员
	requests := v1.Group("/requests")
	{
		requests.POST("", handler.FileDateRequest)
		requests.GET("/pending", middleware.AuthMiddleware(), middleware.RequireRole(token.RoleAdmin), handler.ListPendingRequests)
		requests.GET("/:id", handler.GetRequestStatus)
		requests.PUT("/:id/status", middleware.AuthMiddleware(), middleware.RequireRole(token.RoleAdmin), handler.DecideRequest)
	}

	// 项目
	projects := v1.Group("/projects")
	{
		// 工人端公开口
		projects.POST("/verify-code", handler.VerifyProjectCode)
		projects.POST("/verify", handler.VerifyProject)
		projects.POST("/request-password", middleware.ResetRateLimitMiddleware(), handler.RequestProjectPassword)
		projects.POST("/forgot-password", middleware.ResetRateLimitMiddleware(), handler.ProjectForgotPassword)
		projects.POST("/verify-reset-token", handler.ProjectVerifyResetToken)
		projects.POST("/reset-password", handler.ProjectResetPassword)

		// 管理端
		admin := projects.Group("", middleware.AuthMiddleware(), middleware.RequireRole(token.RoleAdmin))
		{
			admin.GET("", handler.ListProjects)
			admin.POST("", handler.CreateProject)
			admin.PUT("/:id", handler.UpdateProject)
			admin.DELETE("/:id", handler.DeleteProject)
			admin.POST("/:id/verify-access", handler.VerifyProjectAccess)
			admin.PUT("/:id/password", handler.UpdateProjectPassword)
		}
	}

	// 联系表单，公开口，限流防滥发
	v1.POST("/contact", middleware.ResetRateLimitMiddleware(), handler.SubmitContactQuery)

	// 门卫
	guards := v1.Group("/guards")
	{
		guards.POST("/signup", middleware.AuthRateLimitMiddleware(), handler.GuardSignup)
		guards.POST("/login", middleware.AuthRateLimitMiddleware(), handler.GuardLogin)

		admin := guards.Group("", middleware.AuthMiddleware(), middleware.RequireRole(token.RoleAdmin))
		{
			admin.GET("", handler.ListGuards)
			admin.PUT("/:id/assign-project", handler.AssignGuardProject)
			admin.DELETE("/:id", handler.DeleteGuard)
		}
	}

	// 实时通知流，管理员或门卫都可以挂
	v1.GET("/events", middleware.AuthMiddleware(), handler.StreamEvents)
}
