package controller

import (
	"errors"
	"lms_admin_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleServiceError 业务错误统一出口：映射状态码与可翻译错误码，
// 未识别的错误记日志并回 500。
func handleServiceError(ctx *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrFolderNotFound),
		errors.Is(err, util.ErrMediaNotFound),
		errors.Is(err, util.ErrRoleNotFound),
		errors.Is(err, util.ErrPermissionNotFound),
		errors.Is(err, util.ErrBackupNotFound),
		errors.Is(err, util.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, util.ErrReorderIDMismatch),
		errors.Is(err, util.ErrFolderCycle),
		errors.Is(err, util.ErrUnknownSettingGroup),
		errors.Is(err, util.ErrEmailRegistered):
		status = http.StatusBadRequest
	case errors.Is(err, util.ErrSystemImmutable),
		errors.Is(err, util.ErrSelfDeactivate):
		status = http.StatusForbidden
	case errors.Is(err, util.ErrRoleInUse):
		status = http.StatusConflict
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrAccountDisabled):
		status = http.StatusUnauthorized
	default:
		util.LogInternalError(ctx, err)
		return
	}

	util.ErrorWithCode(ctx, status, util.ErrorCode(err), err.Error())
}
