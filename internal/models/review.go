package models

import "time"

// Review links a user to a property with a dated comment.
type Review struct {
	ID         int64      `gorm:"primaryKey;autoIncrement:false" json:"review_id"`
	Date       *time.Time `gorm:"type:date" json:"review_date,omitempty"`
	Comment    string     `gorm:"type:text" json:"comment,omitempty"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	PropertyID int64      `gorm:"not null;index" json:"property_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"-"`
	Property   *Property  `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
