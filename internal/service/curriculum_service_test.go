package service

import (
	"context"
	"testing"

	"lms_admin_backend/internal/model"
	"lms_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCourse(t *testing.T, svc *CurriculumService, sectionTitles ...string) (*model.Course, []model.Section) {
	t.Helper()
	ctx := context.Background()

	course := &model.Course{Title: "Go 实战"}
	require.NoError(t, svc.CreateCourse(ctx, course))

	var sections []model.Section
	for _, title := range sectionTitles {
		section := &model.Section{CourseID: course.ID, Title: title}
		require.NoError(t, svc.CreateSection(ctx, section))
		sections = append(sections, *section)
	}
	return course, sections
}

func sectionIDsInOrder(t *testing.T, svc *CurriculumService, courseID string) []string {
	t.Helper()
	ids, err := svc.SectionRepo.IDsByCourse(courseID)
	require.NoError(t, err)
	return ids
}

func TestCreateSectionAppendsToEnd(t *testing.T) {
	svc, _ := newCurriculumService(t)
	_, sections := seedCourse(t, svc, "S1", "S2", "S3")

	for i, s := range sections {
		assert.Equal(t, i, s.SortOrder)
	}
}

func TestReorderSections(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	course, sections := seedCourse(t, svc, "S1", "S2")

	// S2 拖到 S1 上方：提交完整的新顺序
	err := svc.ReorderSections(ctx, course.ID, []string{sections[1].ID, sections[0].ID})
	require.NoError(t, err)

	got := sectionIDsInOrder(t, svc, course.ID)
	assert.Equal(t, []string{sections[1].ID, sections[0].ID}, got)

	// sortOrder 被重写为紧凑的 0..n-1
	listed, err := svc.ListSections(ctx, course.ID)
	require.NoError(t, err)
	for i, s := range listed {
		assert.Equal(t, i, s.SortOrder)
	}
}

func TestReorderSectionsRejectsMismatchedIDs(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	course, sections := seedCourse(t, svc, "S1", "S2")

	tests := []struct {
		name string
		ids  []string
	}{
		{"missing id", []string{sections[0].ID}},
		{"unknown id", []string{sections[0].ID, "not-a-section"}},
		{"duplicate id", []string{sections[0].ID, sections[0].ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ReorderSections(ctx, course.ID, tt.ids)
			assert.ErrorIs(t, err, util.ErrReorderIDMismatch)
		})
	}

	// 拒绝后顺序不变
	got := sectionIDsInOrder(t, svc, course.ID)
	assert.Equal(t, []string{sections[0].ID, sections[1].ID}, got)
}

func TestMoveSection(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	course, sections := seedCourse(t, svc, "S1", "S2", "S3")

	changed, err := svc.MoveSection(ctx, course.ID, sections[0].ID, sections[2].ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got := sectionIDsInOrder(t, svc, course.ID)
	assert.Equal(t, []string{sections[1].ID, sections[2].ID, sections[0].ID}, got)
}

func TestMoveSectionNoop(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	course, sections := seedCourse(t, svc, "S1", "S2")

	tests := []struct {
		name     string
		activeID string
		overID   string
	}{
		{"same target", sections[0].ID, sections[0].ID},
		{"stale active", "gone", sections[0].ID},
		{"stale over", sections[0].ID, "gone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := svc.MoveSection(ctx, course.ID, tt.activeID, tt.overID)
			require.NoError(t, err)
			assert.False(t, changed)
		})
	}

	got := sectionIDsInOrder(t, svc, course.ID)
	assert.Equal(t, []string{sections[0].ID, sections[1].ID}, got)
}

func TestDeleteSectionResequencesRemaining(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	course, sections := seedCourse(t, svc, "S1", "S2", "S3")

	require.NoError(t, svc.DeleteSection(ctx, sections[1].ID))

	listed, err := svc.ListSections(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, sections[0].ID, listed[0].ID)
	assert.Equal(t, 0, listed[0].SortOrder)
	assert.Equal(t, sections[2].ID, listed[1].ID)
	assert.Equal(t, 1, listed[1].SortOrder)
}

func TestDeleteSectionCascadesLessons(t *testing.T) {
	svc, db := newCurriculumService(t)
	ctx := context.Background()
	_, sections := seedCourse(t, svc, "S1")

	lesson := &model.Lesson{SectionID: sections[0].ID, Title: "L1", Type: model.LessonText, Content: "<p>hi</p>"}
	require.NoError(t, svc.CreateLesson(ctx, lesson))

	require.NoError(t, svc.DeleteSection(ctx, sections[0].ID))

	var count int64
	require.NoError(t, db.Model(&model.Lesson{}).Where("section_id = ?", sections[0].ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReorderLessons(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	_, sections := seedCourse(t, svc, "S1")

	var lessons []model.Lesson
	for _, title := range []string{"L1", "L2", "L3"} {
		lesson := &model.Lesson{SectionID: sections[0].ID, Title: title, Type: model.LessonQuiz}
		require.NoError(t, svc.CreateLesson(ctx, lesson))
		lessons = append(lessons, *lesson)
	}

	err := svc.ReorderLessons(ctx, sections[0].ID, []string{lessons[2].ID, lessons[0].ID, lessons[1].ID})
	require.NoError(t, err)

	got, err := svc.LessonRepo.IDsBySection(sections[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{lessons[2].ID, lessons[0].ID, lessons[1].ID}, got)

	err = svc.ReorderLessons(ctx, sections[0].ID, []string{lessons[0].ID})
	assert.ErrorIs(t, err, util.ErrReorderIDMismatch)
}

func TestMoveLessonNoopKeepsOrder(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	_, sections := seedCourse(t, svc, "S1")

	l1 := &model.Lesson{SectionID: sections[0].ID, Title: "L1", Type: model.LessonText}
	l2 := &model.Lesson{SectionID: sections[0].ID, Title: "L2", Type: model.LessonText}
	require.NoError(t, svc.CreateLesson(ctx, l1))
	require.NoError(t, svc.CreateLesson(ctx, l2))

	changed, err := svc.MoveLesson(ctx, sections[0].ID, l1.ID, l1.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.MoveLesson(ctx, sections[0].ID, l2.ID, l1.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := svc.LessonRepo.IDsBySection(sections[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{l2.ID, l1.ID}, got)
}

func TestCreateLessonNormalizesTypeFields(t *testing.T) {
	svc, _ := newCurriculumService(t)
	ctx := context.Background()
	_, sections := seedCourse(t, svc, "S1")

	lesson := &model.Lesson{
		SectionID:     sections[0].ID,
		Title:         "测验",
		Type:          model.LessonQuiz,
		VideoURL:      "https://example.com/v.mp4",
		VideoDuration: 120,
		Content:       "<p>leftover</p>",
	}
	require.NoError(t, svc.CreateLesson(ctx, lesson))

	got, err := svc.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.Empty(t, got.VideoURL)
	assert.Zero(t, got.VideoDuration)
	assert.Empty(t, got.Content)
}

func TestDeleteCourseCascades(t *testing.T) {
	svc, db := newCurriculumService(t)
	ctx := context.Background()
	course, sections := seedCourse(t, svc, "S1", "S2")

	lesson := &model.Lesson{SectionID: sections[0].ID, Title: "L1", Type: model.LessonText}
	require.NoError(t, svc.CreateLesson(ctx, lesson))

	require.NoError(t, svc.DeleteCourse(ctx, course.ID))

	_, err := svc.GetCourse(course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	var sectionCount, lessonCount int64
	require.NoError(t, db.Model(&model.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount).Error)
	require.NoError(t, db.Model(&model.Lesson{}).Where("section_id = ?", sections[0].ID).Count(&lessonCount).Error)
	assert.Zero(t, sectionCount)
	assert.Zero(t, lessonCount)
}

func TestListSectionsUnknownCourse(t *testing.T) {
	svc, _ := newCurriculumService(t)
	_, err := svc.ListSections(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
