package models

// User is a reviewer. Only the display name is known from the feed.
type User struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Name string `gorm:"type:varchar(100);not null" json:"user_name"`
}

func (User) TableName() string {
	return "users"
}
