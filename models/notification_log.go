// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProfileID     *uuid.UUID `gorm:"type:uuid;index" json:"profileId,omitempty"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId,omitempty"`

	Type         string    `gorm:"type:varchar(30)" json:"type"`    // welcome, appointment_confirmation, appointment_reminder, password_reset
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // email, whatsapp, sms
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
