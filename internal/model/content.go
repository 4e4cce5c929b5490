package model

import (
	"time"
)

// Content associates one typed value with a (journal, field, record)
// triple. The value is a tagged variant: exactly one of the typed
// columns is set, and the discriminant is always the owning field's
// fieldtype, never stored here. ParentID lets a compound field's
// sub-values nest under one logical content unit.
type Content struct {
	ID        uint  `gorm:"primaryKey"`
	JournalID uint  `gorm:"not null;index"`
	FieldID   uint  `gorm:"not null;index:idx_contents_field_record"`
	RecordID  uint  `gorm:"not null;index:idx_contents_field_record"`
	ParentID  *uint `gorm:"index"`
	Trash     bool  `gorm:"not null"`

	IntegerValue   *int64
	FloatValue     *float64
	StringValue    *string
	TimestampValue *time.Time
	// DurationValue is stored as nanoseconds.
	DurationValue *int64

	CreatedAt time.Time
	UpdatedAt time.Time

	Parent   *Content  `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Children []Content `gorm:"foreignKey:ParentID"`
}
