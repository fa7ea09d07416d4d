package database

import (
	"fmt"
	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := Seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 执行全部表结构迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.RolePermission{},
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.MediaFolder{},
		&model.Media{},
		&model.Setting{},
		&model.BackupRecord{},
	)
}

// Seed 写入内置权限、管理员角色与默认设置（仅在空表时）
func Seed(db *gorm.DB) error {
	// 内置权限
	defaultPermissions := []model.Permission{
		{Code: model.PermCourseManage, Description: "课程与章节管理", IsSystem: true},
		{Code: model.PermMediaManage, Description: "媒体库管理", IsSystem: true},
		{Code: model.PermUserManage, Description: "用户管理", IsSystem: true},
		{Code: model.PermRoleManage, Description: "角色与权限管理", IsSystem: true},
		{Code: model.PermSettingManage, Description: "系统设置管理", IsSystem: true},
		{Code: model.PermBackupManage, Description: "备份管理", IsSystem: true},
	}

	var permCount int64
	db.Model(&model.Permission{}).Count(&permCount)
	if permCount == 0 {
		for _, p := range defaultPermissions {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}

	// 管理员角色：拥有全部内置权限
	var roleCount int64
	db.Model(&model.Role{}).Count(&roleCount)
	if roleCount == 0 {
		admin := model.Role{Name: "Administrator", Description: "系统管理员", IsSystem: true}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		var perms []model.Permission
		if err := db.Find(&perms).Error; err != nil {
			return err
		}
		for _, p := range perms {
			if err := db.Create(&model.RolePermission{RoleID: admin.ID, PermissionID: p.ID}).Error; err != nil {
				return err
			}
		}

		instructor := model.Role{Name: "Instructor", Description: "讲师", IsSystem: true}
		if err := db.Create(&instructor).Error; err != nil {
			return err
		}
		for _, code := range []string{model.PermCourseManage, model.PermMediaManage} {
			var p model.Permission
			if err := db.Where("code = ?", code).First(&p).Error; err != nil {
				return err
			}
			if err := db.Create(&model.RolePermission{RoleID: instructor.ID, PermissionID: p.ID}).Error; err != nil {
				return err
			}
		}
	}

	// 默认管理员账号（首次启动后应立即改密）
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		var admin model.Role
		if err := db.Where("name = ?", "Administrator").First(&admin).Error; err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&model.User{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: string(hash),
			RoleID:   admin.ID,
			IsActive: true,
		}).Error; err != nil {
			return err
		}
	}

	// 默认设置
	var settingCount int64
	db.Model(&model.Setting{}).Count(&settingCount)
	if settingCount == 0 {
		defaults := []model.Setting{
			{Group: model.SettingGroupGeneral, Key: "site_name", Value: "LMS Admin"},
			{Group: model.SettingGroupGeneral, Key: "site_description", Value: ""},
			{Group: model.SettingGroupMedia, Key: "max_upload_mb", Value: "100"},
			{Group: model.SettingGroupSecurity, Key: "session_hours", Value: "24"},
			{Group: model.SettingGroupLocalization, Key: "default_locale", Value: "zh-CN"},
			{Group: model.SettingGroupBackup, Key: "auto_backup_enabled", Value: "false"},
			{Group: model.SettingGroupBackup, Key: "auto_backup_cron", Value: "0 3 * * *"},
			{Group: model.SettingGroupBackup, Key: "retention_count", Value: "7"},
		}
		for _, s := range defaults {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
