package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository struct {
	DB *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{DB: db}
}

func (r *PermissionRepository) FindAll() ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.DB.Order("code asc").Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) FindByID(id string) (*model.Permission, error) {
	var permission model.Permission
	err := r.DB.First(&permission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *PermissionRepository) FindByIDs(ids []string) ([]model.Permission, error) {
	var permissions []model.Permission
	if len(ids) == 0 {
		return permissions, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) Create(permission *model.Permission) error {
	return r.DB.Create(permission).Error
}

func (r *PermissionRepository) Update(permission *model.Permission) error {
	return r.DB.Save(permission).Error
}

func (r *PermissionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Permission{}, "id = ?", id).Error
}
