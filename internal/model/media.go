package model

// Media 媒体库文件。folderId 为 NULL 表示根目录。
// usageCount 仅用于删除前提示，不在客户端重算。
type Media struct {
	UUIDBase
	Filename     string   `gorm:"size:512;not null" json:"filename"`
	OriginalName string   `gorm:"size:255;not null" json:"originalName"`
	MimeType     string   `gorm:"size:100;index" json:"mimeType"`
	Size         int64    `gorm:"not null" json:"size"`
	Width        *int     `json:"width,omitempty"`
	Height       *int     `json:"height,omitempty"`
	Duration     *float64 `json:"duration,omitempty"` // 秒，仅音视频
	URL          string   `gorm:"size:512;not null" json:"url"`
	ThumbnailURL string   `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	FolderID     *string  `gorm:"type:varchar(36);index" json:"folderId"`
	UsageCount   int      `gorm:"default:0" json:"usageCount"`
	UploaderID   string   `gorm:"type:varchar(36);index" json:"uploaderId"`
	Uploader     *User    `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
}

func (Media) TableName() string {
	return "media"
}
