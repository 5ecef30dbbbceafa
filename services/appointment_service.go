package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"naragroomer-backend/models"
	"naragroomer-backend/utils"

	"github.com/google/uuid"
)

// ConfirmationSender is the slice of the notification dispatcher the
// lifecycle service needs. Dispatch failure never fails the lifecycle
// operation that triggered it.
type ConfirmationSender interface {
	SendAppointmentConfirmation(appt *models.Appointment, profile *models.Profile, pet *models.Pet, confirmURL string) error
}

// AppointmentService mediates every state change to an appointment and keeps
// invalid transitions from being persisted. Slot exclusivity itself is
// enforced by the store's unique index; the service surfaces it as
// ErrConflict.
type AppointmentService struct {
	store    AppointmentStore
	notifier ConfirmationSender
	baseURL  string
	tokenTTL time.Duration
}

func NewAppointmentService(store AppointmentStore, notifier ConfirmationSender) *AppointmentService {
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &AppointmentService{
		store:    store,
		notifier: notifier,
		baseURL:  baseURL,
		tokenTTL: 7 * 24 * time.Hour,
	}
}

type CreateAppointmentInput struct {
	ProfileID   *uuid.UUID // admin acting on a client's behalf; ignored for clients
	PetID       uuid.UUID
	ServiceType string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Price       *float64
	Notes       string
}

// Create books a new appointment with status scheduled. The pet must belong
// to the effective client: the acting client, or the explicitly selected one
// when an administrator books on a client's behalf. On success a confirmation
// email is dispatched in the background.
func (s *AppointmentService) Create(session Session, input CreateAppointmentInput) (*models.Appointment, error) {
	if !models.ValidServiceType(input.ServiceType) {
		return nil, validationError("unknown service type %q", input.ServiceType)
	}
	if !utils.ValidDate(input.Date) {
		return nil, validationError("invalid date %q, expected YYYY-MM-DD", input.Date)
	}
	if !utils.ValidTime(input.Time) {
		return nil, validationError("invalid time %q, expected HH:MM", input.Time)
	}

	profile, err := s.resolveClient(session, input.ProfileID)
	if err != nil {
		return nil, err
	}

	pet, err := s.store.FindPet(input.PetID)
	if err != nil {
		return nil, err
	}
	if pet.ProfileID != profile.ID {
		return nil, ErrPetOwnership
	}

	appt := &models.Appointment{
		ProfileID:       profile.ID,
		PetID:           pet.ID,
		ServiceType:     input.ServiceType,
		AppointmentDate: input.Date,
		AppointmentTime: input.Time,
		Status:          models.StatusScheduled,
		Price:           input.Price,
		Notes:           input.Notes,
	}

	if err := s.store.Create(appt); err != nil {
		return nil, err
	}

	s.dispatchConfirmation(appt, profile, pet)

	return appt, nil
}

// dispatchConfirmation is fire-and-forget: the appointment is already
// committed, so a failed email is logged and nothing else.
func (s *AppointmentService) dispatchConfirmation(appt *models.Appointment, profile *models.Profile, pet *models.Pet) {
	token, err := utils.GenerateConfirmationToken(profile.ID.String(), appt.ID.String(), s.tokenTTL)
	if err != nil {
		log.Printf("Failed to generate confirmation token for appointment %s: %v", appt.ID, err)
		return
	}
	confirmURL := fmt.Sprintf("%s/confirm-appointment?id=%s&token=%s", s.baseURL, appt.ID, token)

	go func() {
		if err := s.notifier.SendAppointmentConfirmation(appt, profile, pet, confirmURL); err != nil {
			log.Printf("Failed to send confirmation email for appointment %s: %v", appt.ID, err)
		}
	}()
}

type ConfirmResult struct {
	Appointment      *models.Appointment
	AlreadyConfirmed bool
}

// Confirm handles the public confirmation deep link. It validates the signed
// token before touching the row, and is idempotent: re-confirming an already
// confirmed appointment reports AlreadyConfirmed instead of erroring.
func (s *AppointmentService) Confirm(appointmentID uuid.UUID, token string) (*ConfirmResult, error) {
	appt, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateConfirmationToken(token, appt.ProfileID.String(), appt.ID.String()); err != nil {
		return nil, err
	}

	switch appt.Status {
	case models.StatusConfirmed:
		return &ConfirmResult{Appointment: appt, AlreadyConfirmed: true}, nil
	case models.StatusScheduled:
		if err := s.store.SetStatus(appt.ID, models.StatusConfirmed); err != nil {
			return nil, err
		}
		appt.Status = models.StatusConfirmed
		return &ConfirmResult{Appointment: appt}, nil
	case models.StatusCompleted, models.StatusCancelled:
		return nil, ErrTerminalState
	default:
		return nil, ErrInvalidTransition
	}
}

// Start marks a confirmed (or still just scheduled) appointment as underway.
// Administrator only.
func (s *AppointmentService) Start(session Session, appointmentID uuid.UUID) (*models.Appointment, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.transition(appointmentID, models.StatusInProgress,
		models.StatusScheduled, models.StatusConfirmed)
}

// Complete is administrator only and allowed from confirmed or in_progress.
func (s *AppointmentService) Complete(session Session, appointmentID uuid.UUID) (*models.Appointment, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.transition(appointmentID, models.StatusCompleted,
		models.StatusConfirmed, models.StatusInProgress)
}

// Cancel is allowed from any non-terminal status, by an administrator or the
// owning client. Cancellation is a status, not a deletion.
func (s *AppointmentService) Cancel(session Session, appointmentID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(session, appt); err != nil {
		return nil, err
	}
	if appt.IsTerminal() {
		return nil, ErrTerminalState
	}
	if err := s.store.SetStatus(appt.ID, models.StatusCancelled); err != nil {
		return nil, err
	}
	appt.Status = models.StatusCancelled
	return appt, nil
}

// Reschedule moves a non-terminal appointment to a new slot. On conflict the
// original date and time are left untouched.
func (s *AppointmentService) Reschedule(session Session, appointmentID uuid.UUID, newDate, newTime string) (*models.Appointment, error) {
	if !utils.ValidDate(newDate) {
		return nil, validationError("invalid date %q, expected YYYY-MM-DD", newDate)
	}
	if !utils.ValidTime(newTime) {
		return nil, validationError("invalid time %q, expected HH:MM", newTime)
	}

	appt, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(session, appt); err != nil {
		return nil, err
	}
	if appt.IsTerminal() {
		return nil, ErrTerminalState
	}

	if err := s.store.SetSlot(appt.ID, newDate, newTime); err != nil {
		return nil, err
	}
	appt.AppointmentDate = newDate
	appt.AppointmentTime = newTime
	return appt, nil
}

// List returns every appointment for administrators, or the caller's own.
func (s *AppointmentService) List(session Session) ([]models.Appointment, error) {
	if session.IsAdmin() {
		return s.store.FindAll()
	}
	profile, err := s.store.ProfileByUser(session.UserID)
	if err != nil {
		return nil, err
	}
	return s.store.FindByProfile(profile.ID)
}

func (s *AppointmentService) Get(session Session, appointmentID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(session, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// transition loads the row, checks the allowed source statuses and persists
// the new one. Terminal states are reported, never silently ignored.
func (s *AppointmentService) transition(appointmentID uuid.UUID, to string, from ...string) (*models.Appointment, error) {
	appt, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.IsTerminal() {
		return nil, ErrTerminalState
	}
	allowed := false
	for _, f := range from {
		if appt.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidTransition
	}
	if err := s.store.SetStatus(appt.ID, to); err != nil {
		return nil, err
	}
	appt.Status = to
	return appt, nil
}

// resolveClient determines the effective client profile for a booking.
func (s *AppointmentService) resolveClient(session Session, selected *uuid.UUID) (*models.Profile, error) {
	if session.IsAdmin() {
		if selected == nil {
			return nil, validationError("profileId is required when booking on a client's behalf")
		}
		return s.store.FindProfile(*selected)
	}
	return s.store.ProfileByUser(session.UserID)
}

// authorize allows administrators, or the client owning the appointment.
func (s *AppointmentService) authorize(session Session, appt *models.Appointment) error {
	if session.IsAdmin() {
		return nil
	}
	profile, err := s.store.ProfileByUser(session.UserID)
	if err != nil {
		return err
	}
	if appt.ProfileID != profile.ID {
		return ErrForbidden
	}
	return nil
}
