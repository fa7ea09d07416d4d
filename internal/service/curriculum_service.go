package service

import (
	"context"
	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/repository"
	"lms_admin_backend/internal/util"
	"lms_admin_backend/pkg/cache"
	"lms_admin_backend/pkg/logger"
	"lms_admin_backend/pkg/monitoring"
	"lms_admin_backend/pkg/ordering"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CurriculumService 课程/章节/课时的编排逻辑。
// 排序口径：客户端提交完整有序 id 数组（或一次拖拽命令），
// 服务端在事务内重新分配 0..n-1 的紧凑 sortOrder，最后以库内顺序为准。
type CurriculumService struct {
	CourseRepo  *repository.CourseRepository
	SectionRepo *repository.SectionRepository
	LessonRepo  *repository.LessonRepository
	Cache       *cache.Store
	DB          *gorm.DB
}

func NewCurriculumService(
	courseRepo *repository.CourseRepository,
	sectionRepo *repository.SectionRepository,
	lessonRepo *repository.LessonRepository,
	store *cache.Store,
	db *gorm.DB,
) *CurriculumService {
	return &CurriculumService{
		CourseRepo:  courseRepo,
		SectionRepo: sectionRepo,
		LessonRepo:  lessonRepo,
		Cache:       store,
		DB:          db,
	}
}

// ---- Course ----

func (s *CurriculumService) ListCourses(search string, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(search, page, limit)
}

func (s *CurriculumService) GetCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CurriculumService) CreateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Create(course); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.CourseList())
}

func (s *CurriculumService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.CourseList())
}

// DeleteCourse 级联删除章节与课时
func (s *CurriculumService) DeleteCourse(ctx context.Context, id string) error {
	course, err := s.GetCourse(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []string
		if err := tx.Model(&model.Section{}).Where("course_id = ?", course.ID).Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", course.ID).Error
	})
	if err != nil {
		return err
	}

	return s.Cache.Invalidate(ctx, cache.CourseList(), cache.CourseSections(id))
}

// ---- Section ----

// ListSections 读穿缓存返回课程章节（含课时，均有序）
func (s *CurriculumService) ListSections(ctx context.Context, courseID string) ([]model.Section, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}

	key := cache.CourseSections(courseID)
	var cached []model.Section
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	sections, err := s.SectionRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, key, sections); err != nil {
		logger.Log.Warn("cache set failed", zap.String("key", string(key)), zap.Error(err))
	}
	return sections, nil
}

// CreateSection 新章节排在末尾
func (s *CurriculumService) CreateSection(ctx context.Context, section *model.Section) error {
	if _, err := s.GetCourse(section.CourseID); err != nil {
		return err
	}

	next, err := s.SectionRepo.NextSortOrder(section.CourseID)
	if err != nil {
		return err
	}
	section.SortOrder = next

	if err := s.SectionRepo.Create(section); err != nil {
		return err
	}
	return s.Cache.Invalidate(ctx, cache.CourseSections(section.CourseID))
}

func (s *CurriculumService) UpdateSection(ctx context.Context, id string, title, description *string) (*model.Section, error) {
	section, err := s.SectionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}

	if title != nil {
		section.Title = *title
	}
	if description != nil {
		section.Description = *description
	}

	if err := s.SectionRepo.Update(section); err != nil {
		return nil, err
	}
	if err := s.Cache.Invalidate(ctx, cache.CourseSections(section.CourseID)); err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection 删除章节及其课时，剩余章节重新编号保持紧凑
func (s *CurriculumService) DeleteSection(ctx context.Context, id string) error {
	section, err := s.SectionRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrSectionNotFound
	}
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", section.ID).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Section{}, "id = ?", section.ID).Error; err != nil {
			return err
		}

		var ids []string
		if err := tx.Model(&model.Section{}).
			Where("course_id = ?", section.CourseID).
			Order("sort_order asc").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		return assignSortOrders(tx, &model.Section{}, ids)
	})
	if err != nil {
		return err
	}

	return s.Cache.Invalidate(ctx,
		cache.CourseSections(section.CourseID),
		cache.SectionLessons(section.ID),
	)
}

// ReorderSections 整组重排：ids 必须恰好是该课程当前章节的一个排列
func (s *CurriculumService) ReorderSections(ctx context.Context, courseID string, ids []string) error {
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}

	current, err := s.SectionRepo.IDsByCourse(courseID)
	if err != nil {
		return err
	}
	if !ordering.SameIDSet(ids, current) {
		return util.ErrReorderIDMismatch
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return assignSortOrders(tx, &model.Section{}, ids)
	})
	if err != nil {
		return err
	}

	return s.Cache.Invalidate(ctx, cache.CourseSections(courseID))
}

// MoveSection 单次拖拽命令：activeID 拖放到 overID 上。
// id 失配或拖到自身按无操作处理：只记日志与计数，不返回错误、不落库。
func (s *CurriculumService) MoveSection(ctx context.Context, courseID, activeID, overID string) (bool, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return false, err
	}

	current, err := s.SectionRepo.IDsByCourse(courseID)
	if err != nil {
		return false, err
	}

	next, changed := ordering.ApplyDrag(current, activeID, overID)
	if !changed {
		monitoring.ReorderNoops.Inc()
		logger.Log.Warn("section drag resolved as no-op",
			zap.String("courseId", courseID),
			zap.String("activeId", activeID),
			zap.String("overId", overID),
		)
		return false, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return assignSortOrders(tx, &model.Section{}, next)
	})
	if err != nil {
		return false, err
	}

	return true, s.Cache.Invalidate(ctx, cache.CourseSections(courseID))
}

// ---- Lesson ----

func (s *CurriculumService) ListLessons(ctx context.Context, sectionID string) ([]model.Lesson, error) {
	if _, err := s.SectionRepo.FindByID(sectionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}

	key := cache.SectionLessons(sectionID)
	var cached []model.Lesson
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	lessons, err := s.LessonRepo.FindBySection(sectionID)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, key, lessons); err != nil {
		logger.Log.Warn("cache set failed", zap.String("key", string(key)), zap.Error(err))
	}
	return lessons, nil
}

func (s *CurriculumService) GetLesson(id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *CurriculumService) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	section, err := s.SectionRepo.FindByID(lesson.SectionID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrSectionNotFound
	}
	if err != nil {
		return err
	}

	normalizeLesson(lesson)

	next, err := s.LessonRepo.NextSortOrder(lesson.SectionID)
	if err != nil {
		return err
	}
	lesson.SortOrder = next

	if err := s.LessonRepo.Create(lesson); err != nil {
		return err
	}
	return s.invalidateLessonScope(ctx, section)
}

func (s *CurriculumService) UpdateLesson(ctx context.Context, lesson *model.Lesson) error {
	section, err := s.SectionRepo.FindByID(lesson.SectionID)
	if err != nil {
		return err
	}

	normalizeLesson(lesson)

	if err := s.LessonRepo.Update(lesson); err != nil {
		return err
	}
	return s.invalidateLessonScope(ctx, section)
}

func (s *CurriculumService) DeleteLesson(ctx context.Context, id string) error {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return err
	}
	section, err := s.SectionRepo.FindByID(lesson.SectionID)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Lesson{}, "id = ?", lesson.ID).Error; err != nil {
			return err
		}
		var ids []string
		if err := tx.Model(&model.Lesson{}).
			Where("section_id = ?", lesson.SectionID).
			Order("sort_order asc").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		return assignSortOrders(tx, &model.Lesson{}, ids)
	})
	if err != nil {
		return err
	}

	return s.invalidateLessonScope(ctx, section)
}

// ReorderLessons 整组重排，同时失效所属课程的章节列表
func (s *CurriculumService) ReorderLessons(ctx context.Context, sectionID string, ids []string) error {
	section, err := s.SectionRepo.FindByID(sectionID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrSectionNotFound
	}
	if err != nil {
		return err
	}

	current, err := s.LessonRepo.IDsBySection(sectionID)
	if err != nil {
		return err
	}
	if !ordering.SameIDSet(ids, current) {
		return util.ErrReorderIDMismatch
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return assignSortOrders(tx, &model.Lesson{}, ids)
	})
	if err != nil {
		return err
	}

	return s.invalidateLessonScope(ctx, section)
}

// MoveLesson 课时单次拖拽命令，语义同 MoveSection
func (s *CurriculumService) MoveLesson(ctx context.Context, sectionID, activeID, overID string) (bool, error) {
	section, err := s.SectionRepo.FindByID(sectionID)
	if err == gorm.ErrRecordNotFound {
		return false, util.ErrSectionNotFound
	}
	if err != nil {
		return false, err
	}

	current, err := s.LessonRepo.IDsBySection(sectionID)
	if err != nil {
		return false, err
	}

	next, changed := ordering.ApplyDrag(current, activeID, overID)
	if !changed {
		monitoring.ReorderNoops.Inc()
		logger.Log.Warn("lesson drag resolved as no-op",
			zap.String("sectionId", sectionID),
			zap.String("activeId", activeID),
			zap.String("overId", overID),
		)
		return false, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return assignSortOrders(tx, &model.Lesson{}, next)
	})
	if err != nil {
		return false, err
	}

	return true, s.invalidateLessonScope(ctx, section)
}

// invalidateLessonScope 课时变更同时失效章节课时列表与父课程的章节树
func (s *CurriculumService) invalidateLessonScope(ctx context.Context, section *model.Section) error {
	return s.Cache.Invalidate(ctx,
		cache.SectionLessons(section.ID),
		cache.CourseSections(section.CourseID),
	)
}

// assignSortOrders 按 ids 的先后顺序写入 0..n-1
func assignSortOrders(tx *gorm.DB, mdl interface{}, ids []string) error {
	for i, id := range ids {
		if err := tx.Model(mdl).Where("id = ?", id).Update("sort_order", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// normalizeLesson 清掉与类型无关的字段，保证编辑回显与提交一致
func normalizeLesson(lesson *model.Lesson) {
	if lesson.Type != model.LessonVideo {
		lesson.VideoURL = ""
		lesson.VideoDuration = 0
	}
	if lesson.Type != model.LessonText {
		lesson.Content = ""
	}
	if lesson.VideoDuration < 0 {
		lesson.VideoDuration = 0
	}
}
