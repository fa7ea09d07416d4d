package controller

import (
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	Service *service.MediaService
}

func NewMediaController(s *service.MediaService) *MediaController {
	return &MediaController{Service: s}
}

// @Summary 媒体列表
// @Tags 媒体库
// @Produce json
// @Security ApiKeyAuth
// @Param folderId query string false "目录ID，root 表示仅根目录，缺省不过滤"
// @Param mimeType query string false "MIME 前缀过滤，如 image/"
// @Param search query string false "按原始文件名搜索"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/media [get]
func (c *MediaController) List(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 24)

	filter := repository.MediaFilter{
		FolderID: ctx.Query("folderId"),
		MimeType: ctx.Query("mimeType"),
		Search:   ctx.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	result, err := c.Service.List(ctx, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: result.Items, Total: result.Total, Page: page, Limit: limit})
}

// @Summary 上传媒体文件
// @Description folderName 非空时在上传事务内按目录名 find-or-create 并归档
// @Tags 媒体库
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "文件"
// @Param folderId formData string false "目标目录ID"
// @Param folderName formData string false "find-or-create 的目录名"
// @Success 201 {object} util.Response{data=model.Media}
// @Router /api/media/upload [post]
func (c *MediaController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	claims := util.GetUserFromContext(ctx)
	in := service.UploadInput{
		FolderName: ctx.PostForm("folderName"),
		UploaderID: claims.UserID,
	}
	if folderID := ctx.PostForm("folderId"); folderID != "" {
		in.FolderID = &folderID
	}

	media, err := c.Service.Upload(ctx, file, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, media)
}

type MediaUpdateRequest struct {
	OriginalName string `json:"originalName" binding:"required"`
}

// @Summary 重命名媒体
// @Tags 媒体库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "媒体ID"
// @Param body body MediaUpdateRequest true "新名称"
// @Success 200 {object} util.Response{data=model.Media}
// @Router /api/media/{id} [patch]
func (c *MediaController) Update(ctx *gin.Context) {
	var req MediaUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	media, err := c.Service.Rename(ctx, ctx.Param("id"), req.OriginalName)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, media)
}

type MediaMoveRequest struct {
	FolderID *string `json:"folderId"`
}

// @Summary 移动媒体到目录
// @Description folderId 为 null 表示移动到根目录
// @Tags 媒体库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "媒体ID"
// @Param body body MediaMoveRequest true "目标目录"
// @Success 200 {object} util.Response{data=model.Media}
// @Router /api/media/{id}/move [patch]
func (c *MediaController) Move(ctx *gin.Context) {
	var req MediaMoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	media, err := c.Service.Move(ctx, ctx.Param("id"), req.FolderID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, media)
}

// @Summary 删除媒体
// @Description usageCount > 0 的文件也会删除，响应带回引用计数供前端提示
// @Tags 媒体库
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "媒体ID"
// @Success 200 {object} util.Response
// @Router /api/media/{id} [delete]
func (c *MediaController) Delete(ctx *gin.Context) {
	usageCount, err := c.Service.Delete(ctx, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"usageCount": usageCount})
}
