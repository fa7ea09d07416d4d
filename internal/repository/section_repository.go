package repository

import (
	"lms_admin_backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

// FindByCourse 返回课程下全部章节，章节与课时均按 sort_order 升序
func (r *SectionRepository) FindByCourse(courseID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Where("course_id = ?", courseID).
		Order("sort_order asc").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) FindByID(id string) (*model.Section, error) {
	var section model.Section
	err := r.DB.First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// IDsByCourse 按当前顺序返回章节 id
func (r *SectionRepository) IDsByCourse(courseID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Section{}).
		Where("course_id = ?", courseID).
		Order("sort_order asc").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *SectionRepository) NextSortOrder(courseID string) (int, error) {
	var count int64
	err := r.DB.Model(&model.Section{}).Where("course_id = ?", courseID).Count(&count).Error
	return int(count), err
}

func (r *SectionRepository) Create(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *SectionRepository) Update(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *SectionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Section{}, "id = ?", id).Error
}
