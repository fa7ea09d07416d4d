package controller

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/service"
	"lms_admin_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CurriculumService
}

func NewCourseController(s *service.CurriculumService) *CourseController {
	return &CourseController{Service: s}
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "按标题搜索"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 20)

	courses, total, err := c.Service.ListCourses(ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.Service.GetCourse(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	IsPublished *bool  `json:"isPublished"`
}

// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		CreatedBy:   claims.UserID,
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := c.Service.CreateCourse(ctx, course); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [patch]
func (c *CourseController) Update(ctx *gin.Context) {
	course, err := c.Service.GetCourse(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Thumbnail = req.Thumbnail
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := c.Service.UpdateCourse(ctx, course); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程（级联删除章节与课时）
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteCourse(ctx, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
