package model

type LessonType string

const (
	LessonVideo      LessonType = "VIDEO"
	LessonText       LessonType = "TEXT"
	LessonQuiz       LessonType = "QUIZ"
	LessonAssignment LessonType = "ASSIGNMENT"
	LessonLive       LessonType = "LIVE"
)

// ValidLessonType 校验课时类型取值
func ValidLessonType(t LessonType) bool {
	switch t {
	case LessonVideo, LessonText, LessonQuiz, LessonAssignment, LessonLive:
		return true
	}
	return false
}

// Lesson 课时。videoUrl/videoDuration 仅对 VIDEO 类型有意义，
// content 仅对 TEXT 类型有意义（富文本 HTML）。
type Lesson struct {
	UUIDBase
	SectionID     string     `gorm:"type:varchar(36);index;not null" json:"sectionId"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	Type          LessonType `gorm:"type:varchar(20);not null" json:"type"`
	VideoURL      string     `gorm:"size:512" json:"videoUrl,omitempty"`
	VideoDuration int        `gorm:"default:0" json:"videoDuration"` // 秒
	Content       string     `gorm:"type:text" json:"content,omitempty"`
	IsFree        bool       `gorm:"default:false" json:"isFree"`
	IsPublished   bool       `gorm:"default:false" json:"isPublished"`
	SortOrder     int        `gorm:"default:0" json:"sortOrder"`
}

func (Lesson) TableName() string {
	return "lessons"
}
