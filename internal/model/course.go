package model

type Course struct {
	UUIDBase
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Thumbnail   string    `gorm:"size:512" json:"thumbnail,omitempty"`
	IsPublished bool      `gorm:"default:false" json:"isPublished"`
	CreatedBy   string    `gorm:"type:varchar(36);index" json:"createdBy"`
	Sections    []Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
