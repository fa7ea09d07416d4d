package model

import "time"

type User struct {
	UUIDBase
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Avatar     string     `gorm:"size:512" json:"avatar,omitempty"`
	RoleID     string     `gorm:"type:varchar(36);index" json:"roleId"`
	Role       *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}
