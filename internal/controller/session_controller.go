package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Service *service.SessionService
}

func NewSessionController(s *service.SessionService) *SessionController {
	return &SessionController{Service: s}
}

// @Summary 创建会话
// @Tags 会话
// @Accept json
// @Produce json
// @Param login body service.LoginRequest true "用户名与角色"
// @Success 200 {object} util.Response{data=model.UserSession}
// @Failure 400 {object} util.ErrorResponse
// @Router /sessions/login [post]
func (c *SessionController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	session, err := c.Service.CreateSession(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary 查询会话
// @Tags 会话
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=model.UserSession}
// @Failure 404 {object} util.ErrorResponse
// @Router /sessions/{token} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	session, err := c.Service.GetSession(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary 注销会话
// @Tags 会话
// @Param token path string true "会话令牌"
// @Success 204
// @Router /sessions/{token} [delete]
func (c *SessionController) Logout(ctx *gin.Context) {
	if err := c.Service.Logout(ctx.Request.Context(), ctx.Param("token")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
