package controller

import (
	"net/http"
	"quizmaster_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary 接口总览
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"message": "QuizMaster API is running",
		"status":  "ok",
		"endpoints": gin.H{
			"quizzes":           "/api/quizzes",
			"quizAttempts":      "/api/quiz-attempts",
			"retakePermissions": "/api/retake-permissions",
			"students":          "/api/students",
			"sessions":          "/api/sessions",
			"emails":            "/api/emails",
			"health":            "/api/health",
		},
	})
}

// @Summary 健康检查
// @Description 检查数据库与 Redis 连接
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.ErrorResponse
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up"}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			components["redis"] = "down"
		} else {
			components["redis"] = "up"
		}
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}

// @Summary 连通性测试
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /test [get]
func (c *HealthController) Test(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"message":   "Backend is working",
		"method":    ctx.Request.Method,
		"timestamp": time.Now().Format(util.TimeFormat),
	})
}
