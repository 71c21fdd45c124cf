package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"sports-program/backend/config"
	"sports-program/backend/internal/api/handler"
	"sports-program/backend/internal/api/middleware"
	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
	"sports-program/backend/pkg/jwt"
	"sports-program/backend/pkg/metrics"
	"sports-program/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时 Token 黑名单与登录限流均降级关闭
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			logger.Fatal("注册自定义校验规则失败", zap.Error(err))
		}
	}

	// 避免 typed-nil 指针被当作非空接口
	var (
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查与指标 ──
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	admin := middleware.RoleAuth(model.RoleAdmin)
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleTrainer)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, logger), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", admin, h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)    // admin 或本人（Service 层鉴权）
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Service 层鉴权）
				users.PUT("/:id/role", admin, h.User.UpdateRole)
			}

			// 运动项目模块
			sports := authorized.Group("/sports")
			{
				sports.GET("", h.Sport.ListSports)
				sports.GET("/:id", h.Sport.GetSport)
				sports.POST("", admin, h.Sport.CreateSport)
				sports.PUT("/:id", admin, h.Sport.UpdateSport)
				sports.DELETE("/:id", admin, h.Sport.DeleteSport)
			}

			// 课程班模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.GET("/:id", h.Class.GetClass)
				classes.POST("", admin, h.Class.CreateClass)
				classes.PUT("/:id", admin, h.Class.UpdateClass)
				classes.DELETE("/:id", admin, h.Class.DeleteClass)

				classes.GET("/:id/schedules", h.Class.ListSchedules)
				classes.GET("/:id/roster.xlsx", staff, h.Export.ExportRoster)
				classes.GET("/:id/schedule.ics", h.Export.ExportScheduleICS)

				// 排课：教练仅可操作自己的课程班（Service 层鉴权）
				classes.POST("/schedules", staff, h.Class.CreateSchedule)
				classes.GET("/schedules/:id", h.Class.GetSchedule)
				classes.PUT("/schedules/:id", staff, h.Class.UpdateSchedule)
				classes.DELETE("/schedules/:id", staff, h.Class.DeleteSchedule)
			}

			// 申请模块
			applications := authorized.Group("/applications")
			{
				applications.POST("/student", middleware.RoleAuth(model.RoleStudent), h.Application.CreateApplication)
				applications.POST("/trainer", middleware.RoleAuth(model.RoleTrainer), h.Application.CreateApplication)
				applications.GET("", admin, h.Application.ListApplications)
				applications.GET("/my", h.Application.ListMine)
				applications.GET("/class/:classId", staff, h.Application.ListByClass)
				applications.GET("/classes/available-for-trainers", staff, h.Class.ListAvailableForTrainers)
				applications.GET("/:id", h.Application.GetApplication)
				applications.PATCH("/:id/status", admin, h.Application.UpdateStatus)
				applications.DELETE("/:id", h.Application.DeleteApplication)
			}
		}
	}

	return r
}
