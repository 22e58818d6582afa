package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grade-roster/config"
	"grade-roster/internal/api/handler"
	"grade-roster/internal/api/middleware"
	"grade-roster/pkg/redis"
	"grade-roster/pkg/response"
	"grade-roster/pkg/validate"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if err := validate.RegisterBindingValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	writeLimit := writeRateLimit(cfg, rdb, logger)

	api := r.Group("/api")
	{
		// 班级模块
		grades := api.Group("/grades")
		{
			grades.GET("", h.Grade.ListGrades)
			grades.GET("/:id", h.Grade.GetGrade)
			grades.GET("/:id/export", h.Export.ExportRoster)
			grades.POST("", writeLimit, h.Grade.CreateGrade)
			grades.PUT("/:id", writeLimit, h.Grade.UpdateGrade)
			grades.DELETE("/:id", writeLimit, h.Grade.DeleteGrade)
		}

		// 学生模块（只读）
		students := api.Group("/students")
		{
			students.GET("", h.Student.ListStudents)
			students.GET("/count", h.Student.CountStudents)
		}
	}

	return r, nil
}

// writeRateLimit 构造写接口限流中间件，未启用或 Redis 不可用时直接放行
func writeRateLimit(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
}
