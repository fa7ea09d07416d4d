package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
)

type MediaFolderRepository struct {
	DB *gorm.DB
}

func NewMediaFolderRepository(db *gorm.DB) *MediaFolderRepository {
	return &MediaFolderRepository{DB: db}
}

func (r *MediaFolderRepository) FindAll() ([]model.MediaFolder, error) {
	var folders []model.MediaFolder
	err := r.DB.Order("name asc").Find(&folders).Error
	return folders, err
}

func (r *MediaFolderRepository) FindByID(id string) (*model.MediaFolder, error) {
	var folder model.MediaFolder
	err := r.DB.First(&folder, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *MediaFolderRepository) FindByNameAndParent(name string, parentID *string) (*model.MediaFolder, error) {
	var folder model.MediaFolder
	query := r.DB.Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	err := query.First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *MediaFolderRepository) Create(folder *model.MediaFolder) error {
	return r.DB.Create(folder).Error
}

func (r *MediaFolderRepository) Update(folder *model.MediaFolder) error {
	return r.DB.Save(folder).Error
}
