package models

// Property is a single listing. Rating is always stored on the 0-5 scale;
// the loader normalizes 0-100 source values before insertion.
type Property struct {
	ID           int64   `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"property_name"`
	Type         string  `gorm:"type:varchar(100);not null" json:"property_type"`
	Capacity     int     `gorm:"not null" json:"capacity"`
	Neighborhood string  `gorm:"type:varchar(100);not null;index" json:"neighborhood"`
	Bedrooms     int     `gorm:"not null" json:"bedrooms"`
	Bathrooms    float64 `gorm:"type:decimal(4,2);not null" json:"bathrooms"`
	Beds         int     `gorm:"not null" json:"beds"`
	Description  string  `gorm:"type:text" json:"property_description,omitempty"`
	URL          string  `gorm:"type:varchar(255)" json:"listing_url,omitempty"`
	Rating       float64 `gorm:"type:decimal(2,1);not null" json:"rating"`
	Price        float64 `gorm:"type:decimal(10,2);not null;index" json:"price"`
	ReviewCount  int     `gorm:"not null" json:"number_of_reviews"`
	RoomType     string  `gorm:"type:varchar(30);not null" json:"room_type"`
	Latitude     float64 `gorm:"type:decimal(9,6)" json:"latitude"`
	Longitude    float64 `gorm:"type:decimal(9,6)" json:"longitude"`

	HostID int64 `gorm:"not null;index" json:"host_id"`
	Host   *Host `gorm:"foreignKey:HostID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}
