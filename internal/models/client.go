package models

// Client represents a spa client created through intake.
// Clients are never hard-deleted; their appointment history must stay reachable.
type Client struct {
	BaseModel
	Name           string `gorm:"size:100;not null" json:"name"`
	Email          string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone          string `gorm:"size:20" json:"phone"`
	AreasOfConcern string `gorm:"type:text" json:"areasOfConcern"`

	// Relations (not always preloaded)
	Appointments []Appointment `gorm:"foreignKey:ClientID" json:"-"`
}
