package model

import (
	"time"

	"github.com/emrgen/journal/internal/fieldtype"
)

// Field describes one attribute a record may carry. Fieldname is the
// stable machine key, Displayname the user-facing label; each is unique
// within its journal regardless of trash state.
type Field struct {
	ID          uint           `gorm:"primaryKey"`
	JournalID   uint           `gorm:"not null;index;uniqueIndex:idx_fields_journal_fieldname;uniqueIndex:idx_fields_journal_displayname"`
	Fieldname   string         `gorm:"not null;uniqueIndex:idx_fields_journal_fieldname"`
	Fieldtype   fieldtype.Kind `gorm:"not null"`
	Displayname string         `gorm:"not null;uniqueIndex:idx_fields_journal_displayname"`
	// GroupID is a weak back-reference to a group field in the same
	// journal, never an owning pointer.
	GroupID         *uint `gorm:"index"`
	Visible         bool  `gorm:"not null;default:true"`
	MultipleAllowed bool  `gorm:"not null;default:false"`
	Trash           bool  `gorm:"not null"`
	// Length applies to string-like kinds only, -1 means unlimited.
	Length *int
	// Resolution applies to time-like kinds only.
	Resolution *fieldtype.Resolution
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Group    *Field    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Contents []Content `gorm:"constraint:OnDelete:CASCADE"`
}
