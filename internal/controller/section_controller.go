package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SectionController struct {
	Service *service.CurriculumService
}

func NewSectionController(s *service.CurriculumService) *SectionController {
	return &SectionController{Service: s}
}

// @Summary 课程章节列表（含课时，按 sortOrder 有序）
// @Tags 章节
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Section}
// @Router /api/courses/{id}/sections [get]
func (c *SectionController) List(ctx *gin.Context) {
	sections, err := c.Service.ListSections(ctx, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

type SectionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// @Summary 创建章节（排在课程末尾）
// @Tags 章节
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body SectionRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Section}
// @Router /api/courses/{id}/sections [post]
func (c *SectionController) Create(ctx *gin.Context) {
	var req SectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section := &model.Section{
		CourseID:    ctx.Param("id"),
		Title:       req.Title,
		Description: req.Description,
	}
	if err := c.Service.CreateSection(ctx, section); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

type SectionUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// @Summary 更新章节
// @Tags 章节
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Param body body SectionUpdateRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.Section}
// @Router /api/sections/{id} [patch]
func (c *SectionController) Update(ctx *gin.Context) {
	var req SectionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Service.UpdateSection(ctx, ctx.Param("id"), req.Title, req.Description)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// @Summary 删除章节（课时一并删除，剩余章节重新编号）
// @Tags 章节
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [delete]
func (c *SectionController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteSection(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type ReorderSectionsRequest struct {
	SectionIDs []string `json:"sectionIds" binding:"required"`
}

// @Summary 整组重排章节
// @Description 提交课程下全部章节的完整有序 id 数组，服务端重新分配 sortOrder
// @Tags 章节
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body ReorderSectionsRequest true "有序章节ID"
// @Success 200 {object} util.Response{data=[]model.Section}
// @Failure 400 {object} util.Response "id 与当前章节集不符"
// @Router /api/courses/{id}/sections/reorder [put]
func (c *SectionController) Reorder(ctx *gin.Context) {
	var req ReorderSectionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseID := ctx.Param("id")
	if err := c.Service.ReorderSections(ctx, courseID, req.SectionIDs); err != nil {
		handleServiceError(ctx, err)
		return
	}

	sections, err := c.Service.ListSections(ctx, courseID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

type MovePositionRequest struct {
	OverID string `json:"overId"`
}

// @Summary 拖拽移动章节
// @Description 把章节拖放到 overId 对应章节的位置；id 失配或拖到自身为无操作
// @Tags 章节
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Param body body MovePositionRequest true "目标章节"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/sections/{sectionId}/position [patch]
func (c *SectionController) MovePosition(ctx *gin.Context) {
	var req MovePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	changed, err := c.Service.MoveSection(ctx, ctx.Param("id"), ctx.Param("sectionId"), req.OverID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"changed": changed})
}
