package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{Service: s}
}

// @Summary 用户列表
// @Tags 用户管理
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "按姓名或邮箱搜索"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 20)

	users, total, err := c.Service.List(ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// @Summary 用户详情
// @Tags 用户管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	user, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type UserCreateRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	RoleID   string `json:"roleId" binding:"required"`
}

// @Summary 创建用户
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UserCreateRequest true "用户信息"
// @Success 201 {object} util.Response{data=model.User}
// @Router /api/users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		RoleID:   req.RoleID,
		IsActive: true,
	}
	if err := c.Service.Create(user, req.Password); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

type UserUpdateRequest struct {
	Name     *string `json:"name"`
	RoleID   *string `json:"roleId"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password"`
}

// @Summary 更新用户
// @Description 不允许禁用当前登录账号
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Param body body UserUpdateRequest true "用户信息"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	var req UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.Service.Update(ctx.Param("id"), claims.UserID, service.UserUpdate{
		Name:     req.Name,
		RoleID:   req.RoleID,
		IsActive: req.IsActive,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 删除用户
// @Description 不允许删除当前登录账号
// @Tags 用户管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.Service.Delete(ctx.Param("id"), claims.UserID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
