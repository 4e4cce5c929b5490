package model

import (
	"encoding/json"
	"time"
)

// Journal is a user-defined collection with its own field schema. It
// exclusively owns its fields, records, tags and content rows; deleting
// a journal cascades to all of them.
type Journal struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	Enabled   bool   `gorm:"not null"`
	Visible   bool   `gorm:"not null"`
	Trash     bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Fields   []Field   `gorm:"constraint:OnDelete:CASCADE"`
	Records  []Record  `gorm:"constraint:OnDelete:CASCADE"`
	Contents []Content `gorm:"constraint:OnDelete:CASCADE"`
	Tags     []Tag     `gorm:"constraint:OnDelete:CASCADE"`
}

func (j *Journal) MarshalBinary() ([]byte, error) {
	return json.Marshal(j)
}
