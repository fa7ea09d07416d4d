package app

import (
	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/middleware"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	a.registerAuthedRoutes(router, c, repos, cfg)
}

// registerAuthedRoutes 管理端API。路由路径是前端契约的一部分，按资源分组、
// 逐组挂权限码。
func (a *App) registerAuthedRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))

	api.GET("/profile", c.auth.GetProfile)

	rbac := a.services.rbac

	// 课程编排
	courses := api.Group("/courses")
	courses.Use(middleware.RequirePermission(rbac, model.PermCourseManage))
	{
		courses.GET("", c.course.List)
		courses.POST("", c.course.Create)
		courses.GET("/:id", c.course.Get)
		courses.PATCH("/:id", c.course.Update)
		courses.DELETE("/:id", c.course.Delete)

		courses.GET("/:id/sections", c.section.List)
		courses.POST("/:id/sections", c.section.Create)
		courses.PUT("/:id/sections/reorder", c.section.Reorder)
		courses.PATCH("/:id/sections/:sectionId/position", c.section.MovePosition)
	}

	sections := api.Group("/sections")
	sections.Use(middleware.RequirePermission(rbac, model.PermCourseManage))
	{
		sections.PATCH("/:id", c.section.Update)
		sections.DELETE("/:id", c.section.Delete)

		sections.GET("/:id/lessons", c.lesson.List)
		sections.POST("/:id/lessons", c.lesson.Create)
		sections.PUT("/:id/lessons/reorder", c.lesson.Reorder)
		sections.PATCH("/:id/lessons/:lessonId/position", c.lesson.MovePosition)
	}

	lessons := api.Group("/lessons")
	lessons.Use(middleware.RequirePermission(rbac, model.PermCourseManage))
	{
		lessons.GET("/:id", c.lesson.Get)
		lessons.PATCH("/:id", c.lesson.Update)
		lessons.DELETE("/:id", c.lesson.Delete)
	}

	// 媒体库：目录子树挂在 /media/folders 下
	media := api.Group("/media")
	media.Use(middleware.RequirePermission(rbac, model.PermMediaManage))
	{
		media.GET("", c.media.List)
		media.POST("/upload", c.media.Upload)
		media.PATCH("/:id", c.media.Update)
		media.PATCH("/:id/move", c.media.Move)
		media.DELETE("/:id", c.media.Delete)

		media.GET("/folders", c.mediaFolder.List)
		media.GET("/folders/tree", c.mediaFolder.Tree)
		media.POST("/folders", c.mediaFolder.Create)
		media.GET("/folders/:id/destinations", c.mediaFolder.Destinations)
		media.PATCH("/folders/:id", c.mediaFolder.Rename)
		media.PATCH("/folders/:id/move", c.mediaFolder.Move)
		media.DELETE("/folders/:id", c.mediaFolder.Delete)
	}

	// 用户管理
	users := api.Group("/users")
	users.Use(middleware.RequirePermission(rbac, model.PermUserManage))
	{
		users.GET("", c.user.List)
		users.POST("", c.user.Create)
		users.GET("/:id", c.user.Get)
		users.PUT("/:id", c.user.Update)
		users.DELETE("/:id", c.user.Delete)
	}

	// 角色权限
	roles := api.Group("/roles")
	roles.Use(middleware.RequirePermission(rbac, model.PermRoleManage))
	{
		roles.GET("", c.role.List)
		roles.POST("", c.role.Create)
		roles.GET("/:id", c.role.Get)
		roles.PUT("/:id", c.role.Update)
		roles.DELETE("/:id", c.role.Delete)
		roles.PATCH("/:id/permissions", c.role.SetPermissions)
	}

	permissions := api.Group("/permissions")
	permissions.Use(middleware.RequirePermission(rbac, model.PermRoleManage))
	{
		permissions.GET("", c.permission.List)
		permissions.POST("", c.permission.Create)
		permissions.PUT("/:id", c.permission.Update)
		permissions.DELETE("/:id", c.permission.Delete)
	}

	// 系统设置
	settings := api.Group("/settings")
	settings.Use(middleware.RequirePermission(rbac, model.PermSettingManage))
	{
		settings.GET("/group/:group", c.setting.GetGroup)
		settings.PUT("/group/:group", c.setting.PutGroup)
		settings.POST("/email/test", c.setting.SendTestEmail)
	}

	// 备份恢复
	backup := api.Group("/backup")
	backup.Use(middleware.RequirePermission(rbac, model.PermBackupManage))
	{
		backup.GET("", c.backup.List)
		backup.POST("", c.backup.Create)
		backup.GET("/:id", c.backup.Get)
		backup.POST("/:id/restore", c.backup.Restore)
		backup.DELETE("/:id", c.backup.Delete)
		backup.GET("/export-settings", c.backup.ExportSettings)
		backup.POST("/export-settings", c.backup.ImportSettings)
	}
}
