package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoleController struct {
	Service *service.RBACService
}

func NewRoleController(s *service.RBACService) *RoleController {
	return &RoleController{Service: s}
}

// @Summary 角色列表
// @Description 含权限与成员数
// @Tags 角色权限
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Role}
// @Router /api/roles [get]
func (c *RoleController) List(ctx *gin.Context) {
	roles, err := c.Service.ListRoles(ctx)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, roles)
}

// @Summary 角色详情
// @Tags 角色权限
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Success 200 {object} util.Response{data=model.Role}
// @Router /api/roles/{id} [get]
func (c *RoleController) Get(ctx *gin.Context) {
	role, err := c.Service.GetRole(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, role)
}

type RoleRequest struct {
	Name        string `json:"name" binding:"required,max=60"`
	Description string `json:"description"`
}

// @Summary 创建角色
// @Tags 角色权限
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RoleRequest true "角色信息"
// @Success 201 {object} util.Response{data=model.Role}
// @Router /api/roles [post]
func (c *RoleController) Create(ctx *gin.Context) {
	var req RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role := &model.Role{Name: req.Name, Description: req.Description}
	if err := c.Service.CreateRole(ctx, role); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, role)
}

type RoleUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// @Summary 更新角色
// @Description 系统内置角色不可修改
// @Tags 角色权限
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Param body body RoleUpdateRequest true "角色信息"
// @Success 200 {object} util.Response{data=model.Role}
// @Router /api/roles/{id} [put]
func (c *RoleController) Update(ctx *gin.Context) {
	var req RoleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role, err := c.Service.UpdateRole(ctx, ctx.Param("id"), req.Name, req.Description)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, role)
}

// @Summary 删除角色
// @Description 仍有成员或系统内置角色不可删除
// @Tags 角色权限
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Success 200 {object} util.Response
// @Router /api/roles/{id} [delete]
func (c *RoleController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteRole(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type RolePermissionsRequest struct {
	PermissionIDs []string `json:"permissionIds" binding:"required"`
}

// @Summary 设置角色权限
// @Description 整集合替换，未出现在列表中的权限被移除
// @Tags 角色权限
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "角色ID"
// @Param body body RolePermissionsRequest true "权限ID列表"
// @Success 200 {object} util.Response{data=model.Role}
// @Router /api/roles/{id}/permissions [patch]
func (c *RoleController) SetPermissions(ctx *gin.Context) {
	var req RolePermissionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	role, err := c.Service.SetRolePermissions(ctx, ctx.Param("id"), req.PermissionIDs)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, role)
}
