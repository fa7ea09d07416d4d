package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindBySection(sectionID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("section_id = ?", sectionID).
		Order("sort_order asc").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// IDsBySection 按当前顺序返回课时 id
func (r *LessonRepository) IDsBySection(sectionID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Lesson{}).
		Where("section_id = ?", sectionID).
		Order("sort_order asc").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *LessonRepository) NextSortOrder(sectionID string) (int, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("section_id = ?", sectionID).Count(&count).Error
	return int(count), err
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id string) error {
	return r.DB.Delete(&model.Lesson{}, "id = ?", id).Error
}
