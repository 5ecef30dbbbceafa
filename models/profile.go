package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is stored as a jsonb column with explicit structure, replacing the
// serialized free-text address column of earlier versions.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(b, a)
}

// EmergencyContact is stored as a jsonb column.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

func (e EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *EmergencyContact) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(b, e)
}

// Profile is the client record, linked one-to-one with a User account.
// Required before any pet or appointment can be created.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	FullName string `gorm:"not null" json:"fullName"`
	CPF      string `gorm:"type:varchar(14);uniqueIndex;not null" json:"cpf"`
	Email    string `gorm:"not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`

	Address          Address          `gorm:"type:jsonb;default:'{}'" json:"address"`
	EmergencyContact EmergencyContact `gorm:"type:jsonb;default:'{}'" json:"emergencyContact"`

	Pets         []Pet         `gorm:"foreignKey:ProfileID" json:"pets,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ProfileID" json:"appointments,omitempty"`

	gorm.Model `json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
