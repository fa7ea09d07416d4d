package service

import (
	"context"
	"encoding/json"
	"lms_admin_backend/internal/config"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"
	"lms_admin_backend/pkg/logger"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// backupDump 备份文件内容：管理端全部表的 JSON 快照
type backupDump struct {
	Version         int                    `json:"version"`
	CreatedAt       time.Time              `json:"createdAt"`
	Users           []model.User           `json:"users"`
	Roles           []model.Role           `json:"roles"`
	Permissions     []model.Permission     `json:"permissions"`
	RolePermissions []model.RolePermission `json:"rolePermissions"`
	Courses         []model.Course         `json:"courses"`
	Sections        []model.Section        `json:"sections"`
	Lessons         []model.Lesson         `json:"lessons"`
	MediaFolders    []model.MediaFolder    `json:"mediaFolders"`
	Media           []model.Media          `json:"media"`
	Settings        []model.Setting        `json:"settings"`
}

// BackupService 备份生命周期。备份文件落在配置的备份目录，
// 定时备份由 cron 驱动，表达式与保留数量来自 backup 设置组。
type BackupService struct {
	BackupRepo  *repository.BackupRepository
	SettingRepo *repository.SettingRepository
	Cache       *cache.Store
	Cfg         *config.Config
	DB          *gorm.DB

	cron   *cron.Cron
	cronID cron.EntryID
	cronMu sync.Mutex
	armed  bool
}

func NewBackupService(
	backupRepo *repository.BackupRepository,
	settingRepo *repository.SettingRepository,
	store *cache.Store,
	cfg *config.Config,
	db *gorm.DB,
) *BackupService {
	return &BackupService{
		BackupRepo:  backupRepo,
		SettingRepo: settingRepo,
		Cache:       store,
		Cfg:         cfg,
		DB:          db,
		cron:        cron.New(),
	}
}

func (s *BackupService) List() ([]model.BackupRecord, error) {
	return s.BackupRepo.FindAll()
}

func (s *BackupService) Get(id string) (*model.BackupRecord, error) {
	record, err := s.BackupRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrBackupNotFound
	}
	return record, err
}

// Create 执行一次备份。记录先落库为 pending，写盘成功后置 completed。
func (s *BackupService) Create(createdBy, note string, backupType model.BackupType) (*model.BackupRecord, error) {
	record := &model.BackupRecord{
		Filename:  "backup_" + time.Now().Format("20060102_150405") + ".json",
		Status:    model.BackupPending,
		Type:      backupType,
		Note:      note,
		CreatedBy: createdBy,
	}
	if err := s.BackupRepo.Create(record); err != nil {
		return nil, err
	}

	size, err := s.writeDump(record.Filename)
	if err != nil {
		record.Status = model.BackupFailed
		record.Error = err.Error()
		s.BackupRepo.Update(record)
		return record, err
	}

	record.Status = model.BackupCompleted
	record.Size = size
	if err := s.BackupRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *BackupService) writeDump(filename string) (int64, error) {
	var dump backupDump
	dump.Version = 1
	dump.CreatedAt = time.Now()

	steps := []error{
		s.DB.Find(&dump.Users).Error,
		s.DB.Find(&dump.Roles).Error,
		s.DB.Find(&dump.Permissions).Error,
		s.DB.Find(&dump.RolePermissions).Error,
		s.DB.Find(&dump.Courses).Error,
		s.DB.Find(&dump.Sections).Error,
		s.DB.Find(&dump.Lessons).Error,
		s.DB.Find(&dump.MediaFolders).Error,
		s.DB.Find(&dump.Media).Error,
		s.DB.Find(&dump.Settings).Error,
	}
	for _, err := range steps {
		if err != nil {
			return 0, err
		}
	}

	raw, err := json.MarshalIndent(&dump, "", "  ")
	if err != nil {
		return 0, err
	}

	path := filepath.Join(s.Cfg.Backup.Dir, filename)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return 0, err
	}
	return int64(len(raw)), nil
}

// Restore 从备份文件恢复：事务内清空相关表后整体回灌，
// 完成后清掉整个缓存键空间。
func (s *BackupService) Restore(ctx context.Context, id string) error {
	record, err := s.Get(id)
	if err != nil {
		return err
	}
	if record.Status != model.BackupCompleted {
		return util.ErrBackupNotFound
	}

	raw, err := os.ReadFile(filepath.Join(s.Cfg.Backup.Dir, record.Filename))
	if err != nil {
		return err
	}

	var dump backupDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		tables := []interface{}{
			&model.RolePermission{},
			&model.Media{},
			&model.MediaFolder{},
			&model.Lesson{},
			&model.Section{},
			&model.Course{},
			&model.Setting{},
			&model.User{},
			&model.Role{},
			&model.Permission{},
		}
		for _, t := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(t).Error; err != nil {
				return err
			}
		}

		creates := []func() error{
			func() error { return createAll(tx, dump.Permissions) },
			func() error { return createAll(tx, dump.Roles) },
			func() error { return createAll(tx, dump.RolePermissions) },
			func() error { return createAll(tx, dump.Users) },
			func() error { return createAll(tx, dump.Courses) },
			func() error { return createAll(tx, dump.Sections) },
			func() error { return createAll(tx, dump.Lessons) },
			func() error { return createAll(tx, dump.MediaFolders) },
			func() error { return createAll(tx, dump.Media) },
			func() error { return createAll(tx, dump.Settings) },
		}
		for _, create := range creates {
			if err := create(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.invalidateAll(ctx)
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	for i := range rows {
		if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) Delete(id string) error {
	record, err := s.Get(id)
	if err != nil {
		return err
	}

	path := filepath.Join(s.Cfg.Backup.Dir, record.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("backup file removal failed", zap.String("path", path), zap.Error(err))
	}
	return s.BackupRepo.Delete(record.ID)
}

// ExportSettings 导出设置表
func (s *BackupService) ExportSettings() ([]model.Setting, error) {
	return s.SettingRepo.FindAll()
}

// ImportSettings 按组回灌导出的设置
func (s *BackupService) ImportSettings(ctx context.Context, settings []model.Setting) error {
	grouped := make(map[string]map[string]string)
	for _, setting := range settings {
		if !model.ValidSettingGroup(setting.Group) {
			return util.ErrUnknownSettingGroup
		}
		if grouped[setting.Group] == nil {
			grouped[setting.Group] = make(map[string]string)
		}
		grouped[setting.Group][setting.Key] = setting.Value
	}

	for group, values := range grouped {
		if err := s.SettingRepo.UpsertGroup(group, values); err != nil {
			return err
		}
		if err := s.Cache.Invalidate(ctx, cache.SettingsGroup(group)); err != nil {
			return err
		}
	}
	return nil
}

// ApplySchedule 按 backup 设置组重挂定时任务。设置变更后再调一次即可生效。
func (s *BackupService) ApplySchedule() {
	settings, err := s.SettingRepo.FindByGroup(model.SettingGroupBackup)
	if err != nil {
		logger.Log.Error("backup settings load failed", zap.Error(err))
		return
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}

	s.cronMu.Lock()
	defer s.cronMu.Unlock()

	if s.armed {
		s.cron.Remove(s.cronID)
		s.armed = false
	}

	if values["auto_backup_enabled"] != "true" {
		return
	}
	spec := values["auto_backup_cron"]
	if spec == "" {
		spec = "0 3 * * *"
	}

	id, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Create("", "scheduled", model.BackupScheduled); err != nil {
			logger.Log.Error("scheduled backup failed", zap.Error(err))
			return
		}
		s.prune(values["retention_count"])
	})
	if err != nil {
		logger.Log.Error("invalid backup cron expression", zap.String("spec", spec), zap.Error(err))
		return
	}
	s.cronID = id
	s.armed = true
}

// Start 启动调度器并挂上当前配置
func (s *BackupService) Start() {
	s.ApplySchedule()
	s.cron.Start()
}

func (s *BackupService) Stop() {
	s.cron.Stop()
}

// prune 按保留数量裁剪旧备份
func (s *BackupService) prune(retention string) {
	keep, err := strconv.Atoi(retention)
	if err != nil || keep <= 0 {
		return
	}
	old, err := s.BackupRepo.OldestCompleted(keep)
	if err != nil {
		logger.Log.Error("backup prune query failed", zap.Error(err))
		return
	}
	for _, record := range old {
		if err := s.Delete(record.ID); err != nil {
			logger.Log.Warn("backup prune failed", zap.String("id", record.ID), zap.Error(err))
		}
	}
}

// invalidateAll 恢复后整库都可能变了，干脆清掉整个键空间
func (s *BackupService) invalidateAll(ctx context.Context) error {
	return s.Cache.InvalidatePrefix(ctx, cache.Namespace())
}
