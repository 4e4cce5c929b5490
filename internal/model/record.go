package model

import "time"

// Record is one data entry within a journal. ParentID supports
// hierarchical records and is a weak reference, not ownership.
type Record struct {
	ID        uint  `gorm:"primaryKey"`
	JournalID uint  `gorm:"not null;index"`
	ParentID  *uint `gorm:"index"`
	Trash     bool  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Parent   *Record     `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Contents []Content   `gorm:"constraint:OnDelete:CASCADE"`
	TagLinks []RecordTag `gorm:"constraint:OnDelete:CASCADE"`
}
