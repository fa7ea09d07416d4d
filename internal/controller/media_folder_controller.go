package controller

import (
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaFolderController struct {
	Service *service.MediaFolderService
}

func NewMediaFolderController(s *service.MediaFolderService) *MediaFolderController {
	return &MediaFolderController{Service: s}
}

// @Summary 目录平铺列表
// @Description 返回全部目录及其直接子目录数、媒体数
// @Tags 媒体目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.FolderWithCounts}
// @Router /api/media/folders [get]
func (c *MediaFolderController) List(ctx *gin.Context) {
	folders, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, folders)
}

// @Summary 目录树
// @Description activeId 非空时展开集合自动包含其全部祖先
// @Tags 媒体目录
// @Produce json
// @Security ApiKeyAuth
// @Param activeId query string false "当前选中目录ID"
// @Success 200 {object} util.Response{data=service.TreeResult}
// @Router /api/media/folders/tree [get]
func (c *MediaFolderController) Tree(ctx *gin.Context) {
	result, err := c.Service.Tree(ctx, ctx.Query("activeId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 可选移动目标
// @Description 排除自身与其全部后代后的目录集合
// @Tags 媒体目录
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目录ID"
// @Success 200 {object} util.Response{data=[]model.MediaFolder}
// @Router /api/media/folders/{id}/destinations [get]
func (c *MediaFolderController) Destinations(ctx *gin.Context) {
	folders, err := c.Service.Destinations(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, folders)
}

type FolderCreateRequest struct {
	Name     string  `json:"name" binding:"required,max=120"`
	ParentID *string `json:"parentId"`
}

// @Summary 创建目录
// @Tags 媒体目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body FolderCreateRequest true "目录信息"
// @Success 201 {object} util.Response{data=model.MediaFolder}
// @Router /api/media/folders [post]
func (c *MediaFolderController) Create(ctx *gin.Context) {
	var req FolderCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	folder, err := c.Service.Create(ctx, req.Name, req.ParentID, claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, folder)
}

type FolderRenameRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// @Summary 重命名目录
// @Tags 媒体目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目录ID"
// @Param body body FolderRenameRequest true "新名称"
// @Success 200 {object} util.Response{data=model.MediaFolder}
// @Router /api/media/folders/{id} [patch]
func (c *MediaFolderController) Rename(ctx *gin.Context) {
	var req FolderRenameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	folder, err := c.Service.Rename(ctx, ctx.Param("id"), req.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, folder)
}

type FolderMoveRequest struct {
	ParentID *string `json:"parentId"`
}

// @Summary 移动目录
// @Description parentId 为 null 表示移动到根；目标为自身或后代时返回 FOLDER_CYCLE
// @Tags 媒体目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目录ID"
// @Param body body FolderMoveRequest true "新父目录"
// @Success 200 {object} util.Response{data=model.MediaFolder}
// @Router /api/media/folders/{id}/move [patch]
func (c *MediaFolderController) Move(ctx *gin.Context) {
	var req FolderMoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	folder, err := c.Service.Move(ctx, ctx.Param("id"), req.ParentID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, folder)
}

// @Summary 删除目录
// @Description 目录内媒体移到根目录，子目录上挂到被删目录的父级
// @Tags 媒体目录
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目录ID"
// @Success 200 {object} util.Response
// @Router /api/media/folders/{id} [delete]
func (c *MediaFolderController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
