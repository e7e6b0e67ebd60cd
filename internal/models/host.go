package models

import "time"

// Host is an Airbnb host. Rows are created only by the CSV loader; host ids
// come from the source feed, never from auto-increment.
type Host struct {
	ID        int64      `gorm:"primaryKey;autoIncrement:false" json:"host_id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"host_name"`
	URL       string     `gorm:"type:varchar(255)" json:"host_url,omitempty"`
	JoinedAt  *time.Time `gorm:"type:date" json:"host_join_date,omitempty"`
	About     string     `gorm:"type:text" json:"host_about,omitempty"`
	Superhost bool       `gorm:"not null;default:false" json:"is_superhost"`
	Verified  bool       `gorm:"not null;default:false" json:"verified"`
	Location  string     `gorm:"type:varchar(100)" json:"host_location,omitempty"`
}

func (Host) TableName() string {
	return "hosts"
}
