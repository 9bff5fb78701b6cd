package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
	Retakes *service.RetakeService
}

func NewAttemptController(s *service.AttemptService, retakes *service.RetakeService) *AttemptController {
	return &AttemptController{Service: s, Retakes: retakes}
}

// @Summary 提交测验成绩
// @Description 同时关闭该学生对此测验的有效重测授权
// @Tags 成绩
// @Accept json
// @Produce json
// @Param attempt body service.SubmitAttemptRequest true "成绩"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.ErrorResponse
// @Router /quiz-attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	attempt, err := c.Service.SubmitAttempt(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// @Summary 全部成绩
// @Tags 成绩
// @Produce json
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /quiz-attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	attempts, err := c.Service.ListAttempts(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 学生的成绩
// @Tags 成绩
// @Produce json
// @Param studentName path string true "学生姓名"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /quiz-attempts/student/{studentName} [get]
func (c *AttemptController) ListAttemptsByStudent(ctx *gin.Context) {
	attempts, err := c.Service.ListAttemptsByStudent(ctx.Request.Context(), ctx.Param("studentName"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 学生能否重测
// @Tags 成绩
// @Produce json
// @Param studentName path string true "学生姓名"
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /quiz-attempts/can-retake/{studentName}/{quizId} [get]
func (c *AttemptController) CanRetake(ctx *gin.Context) {
	quizID, ok := util.ParseIDParam(ctx, "quizId")
	if !ok {
		return
	}

	allowed, err := c.Retakes.CanRetake(ctx.Request.Context(), ctx.Param("studentName"), quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"canRetake": allowed})
}
