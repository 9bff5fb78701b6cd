package controller

import (
	"quizmaster_backend/internal/service"
	"quizmaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(s *service.StudentService) *StudentController {
	return &StudentController{Service: s}
}

// @Summary 学生列表
// @Tags 学生
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Student}
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// @Summary 创建学生
// @Tags 学生
// @Accept json
// @Produce json
// @Param student body service.CreateStudentRequest true "学生信息"
// @Success 201 {object} util.Response{data=model.Student}
// @Failure 400 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse
// @Router /students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req service.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	student, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// @Summary 更新学生状态
// @Tags 学生
// @Accept json
// @Produce json
// @Param id path int true "学生ID"
// @Param status body service.StudentStatusRequest true "状态"
// @Success 200 {object} util.Response{data=model.Student}
// @Failure 404 {object} util.ErrorResponse
// @Router /students/{id}/status [put]
func (c *StudentController) UpdateStatus(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.StudentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	student, err := c.Service.UpdateStatus(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// @Summary 删除学生（软删除）
// @Tags 学生
// @Param id path int true "学生ID"
// @Success 204
// @Failure 404 {object} util.ErrorResponse
// @Router /students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := util.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary 学生登录
// @Tags 学生
// @Accept json
// @Produce json
// @Param login body service.StudentLoginRequest true "用户名与密码"
// @Success 200 {object} util.Response{data=service.StudentLoginResponse}
// @Failure 401 {object} util.ErrorResponse
// @Router /students/login [post]
func (c *StudentController) Login(ctx *gin.Context) {
	var req service.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	resp, err := c.Service.Login(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary 当前登录学生
// @Tags 学生
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Student}
// @Failure 401 {object} util.ErrorResponse
// @Router /students/me [get]
func (c *StudentController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	student, err := c.Service.GetByID(ctx.Request.Context(), claims.StudentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, student)
}
