package service

import (
	"testing"

	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/pkg/cache"
	"lms_admin_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个内存库，连接数限制为 1 保证共享同一份数据
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newCurriculumService(t *testing.T) (*CurriculumService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewCurriculumService(
		repository.NewCourseRepository(db),
		repository.NewSectionRepository(db),
		repository.NewLessonRepository(db),
		cache.NewStore(nil, 0),
		db,
	)
	return svc, db
}

func newFolderService(t *testing.T) (*MediaFolderService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewMediaFolderService(
		repository.NewMediaFolderRepository(db),
		repository.NewMediaRepository(db),
		cache.NewStore(nil, 0),
		db,
	)
	return svc, db
}

func newRBACService(t *testing.T) (*RBACService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewRBACService(
		repository.NewRoleRepository(db),
		repository.NewPermissionRepository(db),
		repository.NewUserRepository(db),
		cache.NewStore(nil, 0),
		db,
	)
	return svc, db
}

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
	)
	return svc, db
}

func newSettingService(t *testing.T) (*SettingService, *gorm.DB) {
	db := newTestDB(t)
	svc := NewSettingService(repository.NewSettingRepository(db), cache.NewStore(nil, 0))
	return svc, db
}
