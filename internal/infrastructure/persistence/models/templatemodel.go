package models

import "gorm.io/datatypes"

type TemplateModel struct {
	ID        uint           `gorm:"primaryKey"`
	Version   string         `gorm:"uniqueIndex;size:50;not null"`
	Type      string         `gorm:"size:50;not null;index"`
	Title     string         `gorm:"size:200;not null"`
	Sections  datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;not null"`
}

func (TemplateModel) TableName() string {
	return "checklist_templates"
}
