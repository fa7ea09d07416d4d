package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBackupService(t *testing.T) (*BackupService, *gorm.DB) {
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.Backup.Dir = t.TempDir()
	svc := NewBackupService(
		repository.NewBackupRepository(db),
		repository.NewSettingRepository(db),
		cache.NewStore(nil, 0),
		cfg,
		db,
	)
	return svc, db
}

func TestBackupCreateWritesDump(t *testing.T) {
	svc, db := newBackupService(t)

	require.NoError(t, db.Create(&model.Course{Title: "Go 实战"}).Error)

	record, err := svc.Create("admin", "before upgrade", model.BackupManual)
	require.NoError(t, err)
	assert.Equal(t, model.BackupCompleted, record.Status)
	assert.Equal(t, model.BackupManual, record.Type)
	assert.Positive(t, record.Size)

	raw, err := os.ReadFile(filepath.Join(svc.Cfg.Backup.Dir, record.Filename))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Go 实战")
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	svc, db := newBackupService(t)
	ctx := context.Background()

	course := &model.Course{Title: "原始课程"}
	require.NoError(t, db.Create(course).Error)

	record, err := svc.Create("admin", "", model.BackupManual)
	require.NoError(t, err)

	// 备份后的改动在恢复时被回滚
	require.NoError(t, db.Create(&model.Course{Title: "备份后新增"}).Error)
	require.NoError(t, db.Unscoped().Delete(&model.Course{}, "id = ?", course.ID).Error)

	require.NoError(t, svc.Restore(ctx, record.ID))

	var titles []string
	require.NoError(t, db.Model(&model.Course{}).Pluck("title", &titles).Error)
	assert.Equal(t, []string{"原始课程"}, titles)
}

func TestBackupRestoreRejectsIncomplete(t *testing.T) {
	svc, db := newBackupService(t)

	record := &model.BackupRecord{Filename: "x.json", Status: model.BackupPending, Type: model.BackupManual}
	require.NoError(t, db.Create(record).Error)

	err := svc.Restore(context.Background(), record.ID)
	assert.ErrorIs(t, err, util.ErrBackupNotFound)
}

func TestBackupDeleteRemovesFileAndRecord(t *testing.T) {
	svc, _ := newBackupService(t)

	record, err := svc.Create("admin", "", model.BackupManual)
	require.NoError(t, err)
	path := filepath.Join(svc.Cfg.Backup.Dir, record.Filename)
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(record.ID))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = svc.Get(record.ID)
	assert.ErrorIs(t, err, util.ErrBackupNotFound)
}

func TestBackupExportImportSettings(t *testing.T) {
	svc, db := newBackupService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Setting{
		Group: model.SettingGroupGeneral, Key: "site_name", Value: "LMS Admin",
	}).Error)

	exported, err := svc.ExportSettings()
	require.NoError(t, err)
	require.Len(t, exported, 1)

	// 清掉后导入还原
	require.NoError(t, db.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Setting{}).Error)
	require.NoError(t, svc.ImportSettings(ctx, exported))

	var got model.Setting
	require.NoError(t, db.First(&got, "`group` = ? AND `key` = ?", model.SettingGroupGeneral, "site_name").Error)
	assert.Equal(t, "LMS Admin", got.Value)
}

func TestBackupImportSettingsRejectsUnknownGroup(t *testing.T) {
	svc, _ := newBackupService(t)

	err := svc.ImportSettings(context.Background(), []model.Setting{
		{Group: "bogus", Key: "k", Value: "v"},
	})
	assert.ErrorIs(t, err, util.ErrUnknownSettingGroup)
}

func TestBackupScheduleArming(t *testing.T) {
	svc, db := newBackupService(t)

	// 未启用时不挂任务
	svc.ApplySchedule()
	assert.False(t, svc.armed)

	require.NoError(t, db.Create(&model.Setting{
		Group: model.SettingGroupBackup, Key: "auto_backup_enabled", Value: "true",
	}).Error)
	require.NoError(t, db.Create(&model.Setting{
		Group: model.SettingGroupBackup, Key: "auto_backup_cron", Value: "0 3 * * *",
	}).Error)

	svc.ApplySchedule()
	assert.True(t, svc.armed)

	// 重复调用不会堆积任务
	svc.ApplySchedule()
	assert.True(t, svc.armed)
	assert.Len(t, svc.cron.Entries(), 1)

	// 关闭后任务被摘除
	require.NoError(t, db.Model(&model.Setting{}).
		Where("`group` = ? AND `key` = ?", model.SettingGroupBackup, "auto_backup_enabled").
		Update("value", "false").Error)
	svc.ApplySchedule()
	assert.False(t, svc.armed)
	assert.Empty(t, svc.cron.Entries())
}
