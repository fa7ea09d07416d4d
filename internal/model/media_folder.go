package model

// MediaFolder 媒体库目录，通过可空 parentId 组成有根树。
// parentId 为 NULL 表示根层级。环路由服务层在移动事务内校验。
type MediaFolder struct {
	UUIDBase
	Name      string  `gorm:"size:255;not null" json:"name"`
	ParentID  *string `gorm:"type:varchar(36);index" json:"parentId"`
	CreatedBy string  `gorm:"type:varchar(36);index" json:"createdBy"`
}

func (MediaFolder) TableName() string {
	return "media_folders"
}

// FolderCounts 目录下媒体数与子目录数，列表/树接口返回用
type FolderCounts struct {
	Media    int64 `json:"media"`
	Children int64 `json:"children"`
}

// FolderWithCounts 目录列表项
type FolderWithCounts struct {
	MediaFolder
	Counts FolderCounts `json:"counts" gorm:"-"`
}

// FolderTreeNode 目录树节点，嵌套返回
type FolderTreeNode struct {
	MediaFolder
	Counts   FolderCounts      `json:"counts"`
	Children []*FolderTreeNode `json:"children"`
}
