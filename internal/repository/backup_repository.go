package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
)

type BackupRepository struct {
	DB *gorm.DB
}

func NewBackupRepository(db *gorm.DB) *BackupRepository {
	return &BackupRepository{DB: db}
}

func (r *BackupRepository) FindAll() ([]model.BackupRecord, error) {
	var records []model.BackupRecord
	err := r.DB.Order("created_at desc").Find(&records).Error
	return records, err
}

func (r *BackupRepository) FindByID(id string) (*model.BackupRecord, error) {
	var record model.BackupRecord
	err := r.DB.First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *BackupRepository) Create(record *model.BackupRecord) error {
	return r.DB.Create(record).Error
}

func (r *BackupRepository) Update(record *model.BackupRecord) error {
	return r.DB.Save(record).Error
}

func (r *BackupRepository) Delete(id string) error {
	return r.DB.Delete(&model.BackupRecord{}, "id = ?", id).Error
}

// OldestCompleted 返回最早的已完成备份，供保留策略裁剪
func (r *BackupRepository) OldestCompleted(keep int) ([]model.BackupRecord, error) {
	var total int64
	if err := r.DB.Model(&model.BackupRecord{}).Where("status = ?", model.BackupCompleted).Count(&total).Error; err != nil {
		return nil, err
	}
	if int(total) <= keep {
		return nil, nil
	}
	var records []model.BackupRecord
	err := r.DB.Where("status = ?", model.BackupCompleted).
		Order("created_at asc").
		Limit(int(total) - keep).
		Find(&records).Error
	return records, err
}
