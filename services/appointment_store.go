package services

import (
	"errors"
	"time"

	"naragroomer-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStore is the persistence surface the lifecycle service depends
// on. The one correctness-critical behavior is that Create and SetSlot return
// ErrConflict when the partial unique index over (appointment_date,
// appointment_time) rejects the write.
type AppointmentStore interface {
	Create(a *models.Appointment) error
	FindByID(id uuid.UUID) (*models.Appointment, error)
	FindAll() ([]models.Appointment, error)
	FindByProfile(profileID uuid.UUID) ([]models.Appointment, error)
	SetStatus(id uuid.UUID, status string) error
	SetSlot(id uuid.UUID, date, timeOfDay string) error

	FindPet(id uuid.UUID) (*models.Pet, error)
	ProfileByUser(userID uuid.UUID) (*models.Profile, error)
	FindProfile(id uuid.UUID) (*models.Profile, error)

	DueForReminder(date string) ([]models.Appointment, error)
	MarkReminderSent(id uuid.UUID, at time.Time) error
}

type GormAppointmentStore struct {
	db *gorm.DB
}

func NewGormAppointmentStore(db *gorm.DB) *GormAppointmentStore {
	return &GormAppointmentStore{db: db}
}

func (s *GormAppointmentStore) Create(a *models.Appointment) error {
	if err := s.db.Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *GormAppointmentStore) FindByID(id uuid.UUID) (*models.Appointment, error) {
	var a models.Appointment
	err := s.db.Preload("Pet").Preload("Profile").First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *GormAppointmentStore) FindAll() ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Preload("Pet").Preload("Profile").
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appts).Error
	return appts, err
}

func (s *GormAppointmentStore) FindByProfile(profileID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Preload("Pet").
		Where("profile_id = ?", profileID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appts).Error
	return appts, err
}

func (s *GormAppointmentStore) SetStatus(id uuid.UUID, status string) error {
	result := s.db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSlot moves an appointment to a new (date, time) in a single UPDATE, so a
// conflict leaves the row untouched.
func (s *GormAppointmentStore) SetSlot(id uuid.UUID, date, timeOfDay string) error {
	result := s.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"appointment_date": date,
		"appointment_time": timeOfDay,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormAppointmentStore) FindPet(id uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	err := s.db.First(&pet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}

func (s *GormAppointmentStore) ProfileByUser(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, err
	}
	return &profile, nil
}

func (s *GormAppointmentStore) FindProfile(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// DueForReminder returns tomorrow's non-cancelled appointments that have not
// been reminded yet.
func (s *GormAppointmentStore) DueForReminder(date string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Preload("Pet").Preload("Profile").
		Where("appointment_date = ? AND status <> ? AND reminder_sent_at IS NULL",
			date, models.StatusCancelled).
		Find(&appts).Error
	return appts, err
}

func (s *GormAppointmentStore) MarkReminderSent(id uuid.UUID, at time.Time) error {
	return s.db.Model(&models.Appointment{}).Where("id = ?", id).
		Update("reminder_sent_at", at).Error
}
