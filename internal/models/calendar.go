package models

import "time"

// CalendarEntry records whether a property is available on a given date.
// Keyed by (property, date); the key space is large, so the loader relies
// on INSERT IGNORE rather than a per-row existence check.
type CalendarEntry struct {
	PropertyID int64     `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	Date       time.Time `gorm:"type:date;primaryKey" json:"date"`
	Available  bool      `gorm:"not null" json:"available"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"-"`
}

func (CalendarEntry) TableName() string {
	return "calendar_entries"
}
