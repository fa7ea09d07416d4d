package model

type Permission struct {
	UUIDBase
	Code        string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Description string `gorm:"size:255" json:"description,omitempty"`
	IsSystem    bool   `gorm:"default:false" json:"isSystem"`
}

func (Permission) TableName() string {
	return "permissions"
}

// 内置权限码，路由分组按这些码做守卫
const (
	PermCourseManage  = "course.manage"
	PermMediaManage   = "media.manage"
	PermUserManage    = "user.manage"
	PermRoleManage    = "role.manage"
	PermSettingManage = "setting.manage"
	PermBackupManage  = "backup.manage"
)
