package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
	Reports *service.ReportService
}

func NewQuizController(s *service.QuizService, reports *service.ReportService) *QuizController {
	return &QuizController{Service: s, Reports: reports}
}

// @Summary 创建测验
// @Tags 测验
// @Accept json
// @Produce json
// @Param quiz body service.QuizRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.ErrorResponse
// @Router /quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	quiz, err := c.Service.CreateQuiz(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary 测验列表
// @Tags 测验
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.Service.ListQuizzes(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary 获取测验详情（含题目与选项）
// @Tags 测验
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizDetail}
// @Failure 404 {object} util.ErrorResponse
// @Router /quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.Service.GetQuizDetail(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 更新测验
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path int true "测验ID"
// @Param quiz body service.QuizRequest true "测验信息"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	quiz, err := c.Service.UpdateQuiz(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 删除测验（级联删除成绩、题目、选项）
// @Tags 测验
// @Param id path int true "测验ID"
// @Success 204
// @Failure 404 {object} util.ErrorResponse
// @Router /quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuiz(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary 学生是否已参加过该测验
// @Tags 测验
// @Produce json
// @Param id path int true "测验ID"
// @Param studentName path string true "学生姓名"
// @Success 200 {object} util.Response
// @Router /quizzes/{id}/attempts/{studentName} [get]
func (c *QuizController) HasStudentTakenQuiz(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	taken, err := c.Service.HasStudentTakenQuiz(ctx.Request.Context(), id, ctx.Param("studentName"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"hasTaken": taken})
}

// @Summary 导出测验成绩 CSV
// @Tags 测验
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.AttemptReport}
// @Failure 404 {object} util.ErrorResponse
// @Router /quizzes/{id}/attempts/export [post]
func (c *QuizController) ExportAttempts(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.Reports.ExportAttempts(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
