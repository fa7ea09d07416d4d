package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PermissionController struct {
	Service *service.RBACService
}

func NewPermissionController(s *service.RBACService) *PermissionController {
	return &PermissionController{Service: s}
}

// @Summary 权限列表
// @Tags 角色权限
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Permission}
// @Router /api/permissions [get]
func (c *PermissionController) List(ctx *gin.Context) {
	permissions, err := c.Service.ListPermissions(ctx)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, permissions)
}

type PermissionRequest struct {
	Code        string `json:"code" binding:"required,max=60"`
	Description string `json:"description"`
}

// @Summary 创建权限
// @Tags 角色权限
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body PermissionRequest true "权限信息"
// @Success 201 {object} util.Response{data=model.Permission}
// @Router /api/permissions [post]
func (c *PermissionController) Create(ctx *gin.Context) {
	var req PermissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	permission := &model.Permission{Code: req.Code, Description: req.Description}
	if err := c.Service.CreatePermission(ctx, permission); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, permission)
}

type PermissionUpdateRequest struct {
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

// @Summary 更新权限
// @Description 系统内置权限不可修改
// @Tags 角色权限
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "权限ID"
// @Param body body PermissionUpdateRequest true "权限信息"
// @Success 200 {object} util.Response{data=model.Permission}
// @Router /api/permissions/{id} [put]
func (c *PermissionController) Update(ctx *gin.Context) {
	var req PermissionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	permission, err := c.Service.UpdatePermission(ctx, ctx.Param("id"), req.Code, req.Description)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, permission)
}

// @Summary 删除权限
// @Tags 角色权限
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "权限ID"
// @Success 200 {object} util.Response
// @Router /api/permissions/{id} [delete]
func (c *PermissionController) Delete(ctx *gin.Context) {
	if err := c.Service.DeletePermission(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
