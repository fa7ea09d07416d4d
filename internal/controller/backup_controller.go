package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BackupController struct {
	Service *service.BackupService
}

func NewBackupController(s *service.BackupService) *BackupController {
	return &BackupController{Service: s}
}

// @Summary 备份列表
// @Tags 备份恢复
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.BackupRecord}
// @Router /api/backup [get]
func (c *BackupController) List(ctx *gin.Context) {
	records, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 备份详情
// @Tags 备份恢复
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "备份ID"
// @Success 200 {object} util.Response{data=model.BackupRecord}
// @Router /api/backup/{id} [get]
func (c *BackupController) Get(ctx *gin.Context) {
	record, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

type BackupCreateRequest struct {
	Note string `json:"note" binding:"max=255"`
}

// @Summary 手动创建备份
// @Tags 备份恢复
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body BackupCreateRequest false "备注"
// @Success 201 {object} util.Response{data=model.BackupRecord}
// @Router /api/backup [post]
func (c *BackupController) Create(ctx *gin.Context) {
	var req BackupCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	record, err := c.Service.Create(claims.UserID, req.Note, model.BackupManual)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// @Summary 恢复备份
// @Description 清空业务表后按备份文件整体重建，操作不可逆
// @Tags 备份恢复
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "备份ID"
// @Success 200 {object} util.Response
// @Router /api/backup/{id}/restore [post]
func (c *BackupController) Restore(ctx *gin.Context) {
	if err := c.Service.Restore(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 删除备份
// @Tags 备份恢复
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "备份ID"
// @Success 200 {object} util.Response
// @Router /api/backup/{id} [delete]
func (c *BackupController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 导出全部设置
// @Tags 备份恢复
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Setting}
// @Router /api/backup/export-settings [get]
func (c *BackupController) ExportSettings(ctx *gin.Context) {
	settings, err := c.Service.ExportSettings()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// @Summary 导入设置
// @Description 按 group+key upsert，未出现的键保持不变
// @Tags 备份恢复
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body []model.Setting true "设置列表"
// @Success 200 {object} util.Response
// @Router /api/backup/export-settings [post]
func (c *BackupController) ImportSettings(ctx *gin.Context) {
	var settings []model.Setting
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.ImportSettings(ctx, settings); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
