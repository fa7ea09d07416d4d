package repository

import (
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/util"

	"gorm.io/gorm"
)

type MediaRepository struct {
	DB *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{DB: db}
}

// MediaFilter 列表过滤条件。FolderID 取 "root" 表示仅根目录，空串表示不过滤。
type MediaFilter struct {
	FolderID string
	MimeType string
	Search   string
	Page     int
	Limit    int
}

func (r *MediaRepository) List(filter MediaFilter) ([]model.Media, int64, error) {
	var items []model.Media
	var total int64

	query := r.DB.Model(&model.Media{})

	switch filter.FolderID {
	case "":
	case util.FolderRoot:
		query = query.Where("folder_id IS NULL")
	default:
		query = query.Where("folder_id = ?", filter.FolderID)
	}

	if filter.MimeType != "" {
		query = query.Where("mime_type LIKE ?", filter.MimeType+"%")
	}
	if filter.Search != "" {
		query = query.Where("original_name LIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Uploader").
		Order("created_at desc").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *MediaRepository) FindByID(id string) (*model.Media, error) {
	var media model.Media
	err := r.DB.Preload("Uploader").First(&media, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) Create(media *model.Media) error {
	return r.DB.Create(media).Error
}

func (r *MediaRepository) Update(media *model.Media) error {
	return r.DB.Save(media).Error
}

func (r *MediaRepository) Delete(id string) error {
	return r.DB.Delete(&model.Media{}, "id = ?", id).Error
}

// CountByFolder 各目录下的媒体数，键为 folder_id（根目录不计入）
func (r *MediaRepository) CountByFolder() (map[string]int64, error) {
	type row struct {
		FolderID string
		N        int64
	}
	var rows []row
	err := r.DB.Model(&model.Media{}).
		Select("folder_id, count(*) as n").
		Where("folder_id IS NOT NULL").
		Group("folder_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.FolderID] = r.N
	}
	return out, nil
}
