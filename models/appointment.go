package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. scheduled -> confirmed -> in_progress -> completed,
// with cancelled reachable from any non-terminal state.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Service types offered by the salon.
const (
	ServiceBath         = "banho"
	ServiceHygienicTrim = "tosa_higienica"
	ServiceFullTrim     = "tosa_completa"
	ServiceHydration    = "hidratacao"
	ServiceBathTrim     = "banho_tosa"
)

var ServiceTypes = map[string]string{
	ServiceBath:         "Banho",
	ServiceHygienicTrim: "Tosa Higiênica",
	ServiceFullTrim:     "Tosa Completa",
	ServiceHydration:    "Hidratação",
	ServiceBathTrim:     "Banho + Tosa",
}

func ValidServiceType(s string) bool {
	_, ok := ServiceTypes[s]
	return ok
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;index;not null" json:"profileId"`
	PetID     uuid.UUID `gorm:"type:uuid;index;not null" json:"petId"`

	ServiceType     string `gorm:"type:varchar(30);not null" json:"serviceType"`
	AppointmentDate string `gorm:"type:varchar(10);not null" json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string `gorm:"type:varchar(5);not null" json:"appointmentTime"`  // HH:MM

	Status string   `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Price  *float64 `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Notes  string   `gorm:"type:text" json:"notes,omitempty"`

	// Stamped by the reminder sweep so a re-run does not resend.
	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty"`

	Pet     *Pet     `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Profile *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// IsTerminal reports whether no further transition is permitted.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}
