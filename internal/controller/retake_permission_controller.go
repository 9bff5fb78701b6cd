package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RetakePermissionController struct {
	Service *service.RetakeService
}

func NewRetakePermissionController(s *service.RetakeService) *RetakePermissionController {
	return &RetakePermissionController{Service: s}
}

// @Summary 授予重测权限
// @Tags 重测授权
// @Accept json
// @Produce json
// @Param permission body service.GrantRetakeRequest true "授权信息"
// @Success 201 {object} util.Response{data=model.RetakePermission}
// @Failure 400 {object} util.ErrorResponse
// @Router /retake-permissions [post]
func (c *RetakePermissionController) GrantRetake(ctx *gin.Context) {
	var req service.GrantRetakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	permission, err := c.Service.GrantRetake(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, permission)
}

// @Summary 有效的重测授权
// @Tags 重测授权
// @Produce json
// @Success 200 {object} util.Response{data=[]model.RetakePermission}
// @Router /retake-permissions [get]
func (c *RetakePermissionController) ListActive(ctx *gin.Context) {
	permissions, err := c.Service.ListActivePermissions(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, permissions)
}

// @Summary 学生的有效重测授权
// @Tags 重测授权
// @Produce json
// @Param studentName path string true "学生姓名"
// @Success 200 {object} util.Response{data=[]model.RetakePermission}
// @Router /retake-permissions/student/{studentName} [get]
func (c *RetakePermissionController) ListByStudent(ctx *gin.Context) {
	permissions, err := c.Service.ListStudentPermissions(ctx.Request.Context(), ctx.Param("studentName"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, permissions)
}
