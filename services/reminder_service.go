// services/reminder_service.go
package services

import (
	"log"
	"os"
	"time"

	"naragroomer-backend/models"
	"naragroomer-backend/utils"

	"github.com/robfig/cron/v3"
)

// ReminderSender is the slice of the dispatcher the sweep needs.
type ReminderSender interface {
	SendAppointmentReminder(appt *models.Appointment, profile *models.Profile, pet *models.Pet) error
}

// ReminderService sweeps tomorrow's appointments once per scheduled run and
// dispatches one reminder each. Appointments already stamped with
// reminder_sent_at are skipped, so re-running the sweep within the same day
// does not resend.
type ReminderService struct {
	store    AppointmentStore
	notifier ReminderSender
	now      func() time.Time
}

func NewReminderService(store AppointmentStore, notifier ReminderSender) *ReminderService {
	return &ReminderService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// StartScheduler runs the sweep on a cron schedule (default daily at 8 AM,
// override with REMINDER_CRON).
func (s *ReminderService) StartScheduler() {
	spec := os.Getenv("REMINDER_CRON")
	if spec == "" {
		spec = "0 8 * * *"
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.Sweep(); err != nil {
			log.Printf("Reminder sweep failed: %v", err)
		}
	}); err != nil {
		log.Printf("Invalid reminder schedule %q: %v", spec, err)
		return
	}

	c.Start()
	log.Printf("Reminder scheduler started (%s)", spec)
}

// Sweep sends a reminder for each of tomorrow's pending appointments and
// returns how many were sent. A failed send leaves the appointment unstamped
// so the next run retries it.
func (s *ReminderService) Sweep() (int, error) {
	tomorrow := utils.TomorrowDate(s.now())

	appts, err := s.store.DueForReminder(tomorrow)
	if err != nil {
		return 0, err
	}
	if len(appts) == 0 {
		log.Printf("No appointments for %s, nothing to remind", tomorrow)
		return 0, nil
	}

	sent := 0
	for i := range appts {
		appt := &appts[i]
		if appt.Profile == nil || appt.Pet == nil {
			log.Printf("Appointment %s missing profile or pet, skipping reminder", appt.ID)
			continue
		}

		if err := s.notifier.SendAppointmentReminder(appt, appt.Profile, appt.Pet); err != nil {
			log.Printf("Reminder for appointment %s failed: %v", appt.ID, err)
			continue
		}

		if err := s.store.MarkReminderSent(appt.ID, s.now()); err != nil {
			log.Printf("Failed to stamp reminder for appointment %s: %v", appt.ID, err)
		}
		sent++
	}

	log.Printf("Reminder sweep for %s: %d of %d sent", tomorrow, sent, len(appts))
	return sent, nil
}
