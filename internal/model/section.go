package model

// Section 课程章节，sortOrder 决定同一课程下的展示顺序。
// 客户端提交完整的有序 id 数组，最终整数由服务端分配（0..n-1 紧凑序列）。
type Section struct {
	UUIDBase
	CourseID    string   `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	SortOrder   int      `gorm:"default:0" json:"sortOrder"`
	Lessons     []Lesson `gorm:"foreignKey:SectionID" json:"lessons"`
}

func (Section) TableName() string {
	return "sections"
}
