package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EmailController struct {
	Service *service.EmailService
}

func NewEmailController(s *service.EmailService) *EmailController {
	return &EmailController{Service: s}
}

// @Summary 邮件发送统计
// @Tags 邮件
// @Produce json
// @Success 200 {object} util.Response{data=service.EmailStats}
// @Router /emails/stats [get]
func (c *EmailController) Stats(ctx *gin.Context) {
	stats, err := c.Service.Stats(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 记录邮件日志
// @Tags 邮件
// @Accept json
// @Produce json
// @Param log body service.EmailLogRequest true "日志"
// @Success 201 {object} util.Response{data=model.EmailLog}
// @Failure 400 {object} util.ErrorResponse
// @Router /emails/log [post]
func (c *EmailController) Log(ctx *gin.Context) {
	var req service.EmailLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	entry, err := c.Service.Log(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}

// @Summary 发送测验提醒
// @Tags 邮件
// @Produce json
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=service.ReminderResult}
// @Failure 404 {object} util.ErrorResponse
// @Router /emails/send-reminders/{quizId} [post]
func (c *EmailController) SendReminders(ctx *gin.Context) {
	quizID, ok := util.ParseIDParam(ctx, "quizId")
	if !ok {
		return
	}

	result, err := c.Service.SendReminders(ctx.Request.Context(), quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 记录成绩邮件
// @Tags 邮件
// @Accept json
// @Produce json
// @Param result body service.LogResultRequest true "成绩邮件"
// @Success 201 {object} util.Response{data=model.EmailLog}
// @Failure 400 {object} util.ErrorResponse
// @Router /emails/log-result [post]
func (c *EmailController) LogResult(ctx *gin.Context) {
	var req service.LogResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	entry, err := c.Service.LogResult(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}
