package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) FindAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.Preload("RolePermissions.Permission").Order("created_at asc").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) FindByID(id string) (*model.Role, error) {
	var role model.Role
	err := r.DB.Preload("RolePermissions.Permission").First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) Create(role *model.Role) error {
	return r.DB.Create(role).Error
}

func (r *RoleRepository) Update(role *model.Role) error {
	return r.DB.Save(role).Error
}

func (r *RoleRepository) Delete(id string) error {
	return r.DB.Delete(&model.Role{}, "id = ?", id).Error
}
