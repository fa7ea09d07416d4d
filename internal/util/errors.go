package util

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrAccountDisabled     = errors.New("账号已被禁用")
	ErrCourseNotFound      = errors.New("course not found")
	ErrSectionNotFound     = errors.New("section not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrReorderIDMismatch   = errors.New("reorder ids do not match current children")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrFolderCycle         = errors.New("folder cannot be moved into itself or a descendant")
	ErrMediaNotFound       = errors.New("media not found")
	ErrRoleNotFound        = errors.New("role not found")
	ErrPermissionNotFound  = errors.New("permission not found")
	ErrSystemImmutable     = errors.New("system roles and permissions cannot be modified")
	ErrRoleInUse           = errors.New("role is assigned to users and cannot be deleted")
	ErrUnknownSettingGroup = errors.New("unknown setting group")
	ErrBackupNotFound      = errors.New("backup not found")
	ErrSelfDeactivate      = errors.New("cannot deactivate your own account")
	ErrInvalidVideoExt     = errors.New("不支持的视频格式")
)

// ErrorCode 将业务错误映射为前端可翻译的错误码，未知错误返回空串
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, ErrEmailRegistered):
		return "EMAIL_REGISTERED"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrAccountDisabled):
		return "ACCOUNT_DISABLED"
	case errors.Is(err, ErrCourseNotFound):
		return "COURSE_NOT_FOUND"
	case errors.Is(err, ErrSectionNotFound):
		return "SECTION_NOT_FOUND"
	case errors.Is(err, ErrLessonNotFound):
		return "LESSON_NOT_FOUND"
	case errors.Is(err, ErrReorderIDMismatch):
		return "REORDER_ID_MISMATCH"
	case errors.Is(err, ErrFolderNotFound):
		return "FOLDER_NOT_FOUND"
	case errors.Is(err, ErrFolderCycle):
		return "FOLDER_CYCLE"
	case errors.Is(err, ErrMediaNotFound):
		return "MEDIA_NOT_FOUND"
	case errors.Is(err, ErrRoleNotFound):
		return "ROLE_NOT_FOUND"
	case errors.Is(err, ErrPermissionNotFound):
		return "PERMISSION_NOT_FOUND"
	case errors.Is(err, ErrSystemImmutable):
		return "SYSTEM_IMMUTABLE"
	case errors.Is(err, ErrRoleInUse):
		return "ROLE_IN_USE"
	case errors.Is(err, ErrUnknownSettingGroup):
		return "UNKNOWN_SETTING_GROUP"
	case errors.Is(err, ErrBackupNotFound):
		return "BACKUP_NOT_FOUND"
	case errors.Is(err, ErrSelfDeactivate):
		return "SELF_DEACTIVATE"
	}
	return ""
}
