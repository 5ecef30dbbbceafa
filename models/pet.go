package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"profileId"`

	Name     string   `gorm:"not null" json:"name"`
	Breed    string   `json:"breed,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Weight   *float64 `gorm:"type:decimal(6,2)" json:"weight,omitempty"`
	Color    string   `json:"color,omitempty"`
	Gender   string   `gorm:"type:varchar(10)" json:"gender,omitempty"`
	PhotoURL string   `json:"photoUrl,omitempty"` // opaque reference into the object store
	Notes    string   `gorm:"type:text" json:"notes,omitempty"`

	Appointments []Appointment `gorm:"foreignKey:PetID" json:"appointments,omitempty"`

	gorm.Model `json:"-"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
