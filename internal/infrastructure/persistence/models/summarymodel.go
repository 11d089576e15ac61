package models

type SummaryModel struct {
	ID          uint   `gorm:"primaryKey"`
	ReportID    uint   `gorm:"not null;index"`
	Content     string `gorm:"type:text;not null"`
	ContentHash string `gorm:"size:64;not null"`
	GeneratedAt int64  `gorm:"not null"`
	Superseded  bool   `gorm:"not null;default:false;index"`
}

func (SummaryModel) TableName() string {
	return "report_summaries"
}
