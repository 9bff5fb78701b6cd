package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(s *service.QuestionService) *QuestionController {
	return &QuestionController{Service: s}
}

// @Summary 为测验添加题目
// @Description 选项中必须恰好有一个正确答案
// @Tags 题目
// @Accept json
// @Produce json
// @Param id path int true "测验ID"
// @Param question body service.QuestionRequest true "题目及选项"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /quizzes/{id}/questions [post]
func (c *QuestionController) AddQuestion(ctx *gin.Context) {
	quizID, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	question, err := c.Service.AddQuestion(ctx.Request.Context(), quizID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary 测验题目列表
// @Tags 题目
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.ErrorResponse
// @Router /quizzes/{id}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	quizID, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.Service.ListQuestions(ctx.Request.Context(), quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 更新题目（整体替换选项）
// @Tags 题目
// @Accept json
// @Produce json
// @Param id path int true "题目ID"
// @Param question body service.QuestionRequest true "题目及选项"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	question, err := c.Service.UpdateQuestion(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 删除题目
// @Tags 题目
// @Param id path int true "题目ID"
// @Success 204
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
