package model

// Setting 按组存储的键值设置。PUT 按组覆盖提交的键。
type Setting struct {
	BaseModel
	Group string `gorm:"size:50;index:idx_group_key,unique;not null" json:"group"`
	Key   string `gorm:"size:100;index:idx_group_key,unique;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// 设置分组白名单
const (
	SettingGroupGeneral      = "general"
	SettingGroupEmail        = "email"
	SettingGroupMedia        = "media"
	SettingGroupSecurity     = "security"
	SettingGroupNotification = "notification"
	SettingGroupSEO          = "seo"
	SettingGroupLocalization = "localization"
	SettingGroupBackup       = "backup"
)

var SettingGroups = []string{
	SettingGroupGeneral,
	SettingGroupEmail,
	SettingGroupMedia,
	SettingGroupSecurity,
	SettingGroupNotification,
	SettingGroupSEO,
	SettingGroupLocalization,
	SettingGroupBackup,
}

// ValidSettingGroup 校验分组名
func ValidSettingGroup(group string) bool {
	for _, g := range SettingGroups {
		if g == group {
			return true
		}
	}
	return false
}
