package controller

import (
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingController struct {
	Service *service.SettingService
	Backup  *service.BackupService
}

func NewSettingController(s *service.SettingService, backup *service.BackupService) *SettingController {
	return &SettingController{Service: s, Backup: backup}
}

// @Summary 分组设置
// @Tags 系统设置
// @Produce json
// @Security ApiKeyAuth
// @Param group path string true "设置分组" Enums(general,email,media,security,notification,seo,localization,backup)
// @Success 200 {object} util.Response{data=map[string]string}
// @Router /api/settings/group/{group} [get]
func (c *SettingController) GetGroup(ctx *gin.Context) {
	values, err := c.Service.GetGroup(ctx, ctx.Param("group"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, values)
}

// @Summary 保存分组设置
// @Description 整组 upsert，backup 分组保存后重新装载定时备份任务
// @Tags 系统设置
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param group path string true "设置分组"
// @Param body body map[string]string true "键值对"
// @Success 200 {object} util.Response{data=map[string]string}
// @Router /api/settings/group/{group} [put]
func (c *SettingController) PutGroup(ctx *gin.Context) {
	var values map[string]string
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group := ctx.Param("group")
	saved, err := c.Service.PutGroup(ctx, group, values)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	if group == "backup" && c.Backup != nil {
		c.Backup.ApplySchedule()
	}
	util.Success(ctx, saved)
}

type TestEmailRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
}

// @Summary 发送测试邮件
// @Description 使用 email 分组中保存的 SendGrid 配置
// @Tags 系统设置
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TestEmailRequest true "收件人"
// @Success 200 {object} util.Response
// @Router /api/settings/email/test [post]
func (c *SettingController) SendTestEmail(ctx *gin.Context) {
	var req TestEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.SendTestEmail(ctx, req.Recipient); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
