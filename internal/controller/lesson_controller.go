package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	Service *service.CurriculumService
}

func NewLessonController(s *service.CurriculumService) *LessonController {
	return &LessonController{Service: s}
}

// @Summary 章节课时列表
// @Tags 课时
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/sections/{id}/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	lessons, err := c.Service.ListLessons(ctx, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// @Summary 课时详情
// @Tags 课时
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	lesson, err := c.Service.GetLesson(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

type LessonRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Type          string `json:"type" binding:"required,oneof=VIDEO TEXT QUIZ ASSIGNMENT LIVE"`
	VideoURL      string `json:"videoUrl"`
	VideoDuration int    `json:"videoDuration" binding:"gte=0"`
	Content       string `json:"content"`
	IsFree        bool   `json:"isFree"`
	IsPublished   bool   `json:"isPublished"`
}

// @Summary 创建课时（排在章节末尾）
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Param body body LessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/sections/{id}/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := &model.Lesson{
		SectionID:     ctx.Param("id"),
		Title:         req.Title,
		Description:   req.Description,
		Type:          model.LessonType(req.Type),
		VideoURL:      req.VideoURL,
		VideoDuration: req.VideoDuration,
		Content:       req.Content,
		IsFree:        req.IsFree,
		IsPublished:   req.IsPublished,
	}
	if err := c.Service.CreateLesson(ctx, lesson); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary 更新课时
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课时ID"
// @Param body body LessonRequest true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [patch]
func (c *LessonController) Update(ctx *gin.Context) {
	lesson, err := c.Service.GetLesson(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.Type = model.LessonType(req.Type)
	lesson.VideoURL = req.VideoURL
	lesson.VideoDuration = req.VideoDuration
	lesson.Content = req.Content
	lesson.IsFree = req.IsFree
	lesson.IsPublished = req.IsPublished

	if err := c.Service.UpdateLesson(ctx, lesson); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 删除课时（剩余课时重新编号）
// @Tags 课时
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteLesson(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type ReorderLessonsRequest struct {
	LessonIDs []string `json:"lessonIds" binding:"required"`
}

// @Summary 整组重排课时
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Param body body ReorderLessonsRequest true "有序课时ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 400 {object} util.Response "id 与当前课时集不符"
// @Router /api/sections/{id}/lessons/reorder [put]
func (c *LessonController) Reorder(ctx *gin.Context) {
	var req ReorderLessonsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sectionID := ctx.Param("id")
	if err := c.Service.ReorderLessons(ctx, sectionID, req.LessonIDs); err != nil {
		handleServiceError(ctx, err)
		return
	}

	lessons, err := c.Service.ListLessons(ctx, sectionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// @Summary 拖拽移动课时
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "章节ID"
// @Param lessonId path string true "课时ID"
// @Param body body MovePositionRequest true "目标课时"
// @Success 200 {object} util.Response
// @Router /api/sections/{id}/lessons/{lessonId}/position [patch]
func (c *LessonController) MovePosition(ctx *gin.Context) {
	var req MovePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	changed, err := c.Service.MoveLesson(ctx, ctx.Param("id"), ctx.Param("lessonId"), req.OverID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"changed": changed})
}
