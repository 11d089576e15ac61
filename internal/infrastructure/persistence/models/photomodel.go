package models

type PhotoModel struct {
	ID          uint   `gorm:"primaryKey"`
	ReportID    uint   `gorm:"not null;index"`
	SectionKey  string `gorm:"size:100;not null"`
	StoragePath string `gorm:"size:500;not null"`
	Caption     string `gorm:"size:500"`
	UploadedAt  int64  `gorm:"not null"`
}

func (PhotoModel) TableName() string {
	return "report_photos"
}
