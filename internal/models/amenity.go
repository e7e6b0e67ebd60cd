package models

// Amenity is one free-text amenity name attached to a property. The
// composite primary key doubles as the duplicate-suppression mechanism:
// the loader inserts with INSERT IGNORE and repeats collapse silently.
type Amenity struct {
	PropertyID int64     `gorm:"primaryKey;autoIncrement:false" json:"property_id"`
	Name       string    `gorm:"type:varchar(100);primaryKey" json:"amenity_name"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Amenity) TableName() string {
	return "amenities"
}
