package model

type BackupStatus string

const (
	BackupPending   BackupStatus = "pending"
	BackupCompleted BackupStatus = "completed"
	BackupFailed    BackupStatus = "failed"
)

type BackupType string

const (
	BackupManual    BackupType = "manual"
	BackupScheduled BackupType = "scheduled"
)

// BackupRecord 一次备份的元数据，文件本体在备份目录下
type BackupRecord struct {
	UUIDBase
	Filename  string       `gorm:"size:255;not null" json:"filename"`
	Size      int64        `gorm:"default:0" json:"size"`
	Status    BackupStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Type      BackupType   `gorm:"type:varchar(20);default:'manual'" json:"type"`
	Note      string       `gorm:"size:255" json:"note,omitempty"`
	Error     string       `gorm:"size:512" json:"error,omitempty"`
	CreatedBy string       `gorm:"type:varchar(36)" json:"createdBy"`
}

func (BackupRecord) TableName() string {
	return "backup_records"
}
