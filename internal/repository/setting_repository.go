package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) FindByGroup(group string) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.DB.Where("`group` = ?", group).Order("`key` asc").Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) FindAll() ([]model.Setting, error) {
	var settings []model.Setting
	err := r.DB.Order("`group` asc, `key` asc").Find(&settings).Error
	return settings, err
}

// UpsertGroup 按 (group, key) 冲突更新 value，整组一个事务
func (r *SettingRepository) UpsertGroup(group string, values map[string]string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := model.Setting{Group: group, Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "group"}, {Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
