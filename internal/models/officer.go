package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq" // required for pq.StringArray
	"gorm.io/gorm"
)

// Officer represents a government officer who can act on complaints.
type Officer struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex" json:"name"`
	Designation string         `json:"designation"` // e.g. "AE", "EE", "Lineman"
	Departments pq.StringArray `gorm:"type:text[]" json:"departments"`
}

// BeforeCreate is a GORM hook that generates an ID for the officer
// if one has not been set yet.
func (o *Officer) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
