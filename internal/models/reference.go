package models

// Genre is a film category tag.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (Genre) TableName() string {
	return "genres"
}

// Mpa is an MPA film rating such as PG-13.
type Mpa struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (Mpa) TableName() string {
	return "mpa_ratings"
}
