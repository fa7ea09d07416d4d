package model

// Role 角色，与权限通过显式连接表多对多。
// isSystem 角色不可改名、不可删除，服务端强制。
type Role struct {
	UUIDBase
	Name            string           `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description     string           `gorm:"size:255" json:"description,omitempty"`
	IsSystem        bool             `gorm:"default:false" json:"isSystem"`
	RolePermissions []RolePermission `gorm:"foreignKey:RoleID" json:"rolePermissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

type RolePermission struct {
	RoleID       string      `gorm:"type:varchar(36);primaryKey" json:"roleId"`
	PermissionID string      `gorm:"type:varchar(36);primaryKey" json:"permissionId"`
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
