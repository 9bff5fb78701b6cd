package app

import (
	"quizmaster_backend/docs"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/middleware"
	"quizmaster_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/", c.health.Root)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/test", c.health.Test)
		api.POST("/test", c.health.Test)
	}

	a.registerQuizRoutes(api, c)
	a.registerAttemptRoutes(api, c)
	a.registerCollaboratorRoutes(api, c, cfg)
}

func (a *App) registerQuizRoutes(api *gin.RouterGroup, c *controllers) {
	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", c.quiz.CreateQuiz)
		quizzes.GET("", c.quiz.ListQuizzes)
		quizzes.GET("/:id", c.quiz.GetQuiz)
		quizzes.PUT("/:id", c.quiz.UpdateQuiz)
		quizzes.DELETE("/:id", c.quiz.DeleteQuiz)

		quizzes.POST("/:id/attempts/export", c.quiz.ExportAttempts)
		quizzes.GET("/:id/attempts/:studentName", c.quiz.HasStudentTakenQuiz)

		quizzes.POST("/:id/questions", c.question.AddQuestion)
		quizzes.GET("/:id/questions", c.question.ListQuestions)
	}

	questions := api.Group("/questions")
	{
		questions.PUT("/:id", c.question.UpdateQuestion)
		questions.DELETE("/:id", c.question.DeleteQuestion)
	}
}

func (a *App) registerAttemptRoutes(api *gin.RouterGroup, c *controllers) {
	attempts := api.Group("/quiz-attempts")
	{
		attempts.POST("", c.attempt.SubmitAttempt)
		attempts.GET("", c.attempt.ListAttempts)
		attempts.GET("/student/:studentName", c.attempt.ListAttemptsByStudent)
		attempts.GET("/can-retake/:studentName/:quizId", c.attempt.CanRetake)
	}

	permissions := api.Group("/retake-permissions")
	{
		permissions.POST("", c.permission.GrantRetake)
		permissions.GET("", c.permission.ListActive)
		permissions.GET("/student/:studentName", c.permission.ListByStudent)
	}
}

func (a *App) registerCollaboratorRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	sessions := api.Group("/sessions")
	{
		sessions.POST("/login", c.session.Login)
		sessions.GET("/:token", c.session.GetSession)
		sessions.DELETE("/:token", c.session.Logout)
	}

	students := api.Group("/students")
	{
		students.GET("", c.student.List)
		students.POST("", c.student.Create)
		students.POST("/login", c.student.Login)
		students.GET("/me", middleware.AuthMiddleware(cfg.JWT.Secret), c.student.Me)
		students.PUT("/:id/status", c.student.UpdateStatus)
		students.DELETE("/:id", c.student.Delete)
	}

	emails := api.Group("/emails")
	{
		emails.GET("/stats", c.email.Stats)
		emails.POST("/log", c.email.Log)
		emails.POST("/send-reminders/:quizId", c.email.SendReminders)
		emails.POST("/log-result", c.email.LogResult)
	}
}
