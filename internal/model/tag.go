package model

import "time"

// Tag is a journal-scoped label attachable to many records.
type Tag struct {
	ID        uint   `gorm:"primaryKey"`
	JournalID uint   `gorm:"not null;index;uniqueIndex:idx_tags_journal_name"`
	Name      string `gorm:"not null;uniqueIndex:idx_tags_journal_name"`
	Trash     bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Links []RecordTag `gorm:"constraint:OnDelete:CASCADE"`
}

// RecordTag links a tag to a record. It carries its own trash flag so
// an association can be soft-deleted independently of the tag or the
// record.
type RecordTag struct {
	ID        uint `gorm:"primaryKey"`
	RecordID  uint `gorm:"not null;uniqueIndex:idx_record_tags_record_tag"`
	TagID     uint `gorm:"not null;uniqueIndex:idx_record_tags_record_tag"`
	Trash     bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
