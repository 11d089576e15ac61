package models

import "gorm.io/datatypes"

type ReportModel struct {
	ID              uint           `gorm:"primaryKey"`
	SchoolID        uint           `gorm:"not null;index"`
	AuthorID        uint           `gorm:"not null;index"`
	ReportType      string         `gorm:"size:50;not null;index"`
	TemplateVersion string         `gorm:"size:50;not null"`
	InspectionDate  int64          `gorm:"not null;index"`
	Status          string         `gorm:"size:20;not null;index"`
	Responses       datatypes.JSON `gorm:"type:json"`
	ClosingNotes    string         `gorm:"type:text"`
	Version         int            `gorm:"not null;default:1"`
	CreatedAt       int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt       int64          `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ReportModel) TableName() string {
	return "reports"
}
