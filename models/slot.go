package models

import "time"

// Slot is one named persistent value of the local store when it is backed by SQL.
type Slot struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name independent of gorm's pluralizer.
func (Slot) TableName() string {
	return "local_slots"
}
