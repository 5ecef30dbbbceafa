package services

import (
	"errors"
	"time"

	"naragroomer-backend/models"

	"github.com/google/uuid"
)

// Compile-time check to ensure MockAppointmentStore implements AppointmentStore
var _ AppointmentStore = (*MockAppointmentStore)(nil)

// MockAppointmentStore is a func-field mock of AppointmentStore.
type MockAppointmentStore struct {
	CreateFunc         func(a *models.Appointment) error
	FindByIDFunc       func(id uuid.UUID) (*models.Appointment, error)
	FindAllFunc        func() ([]models.Appointment, error)
	FindByProfileFunc  func(profileID uuid.UUID) ([]models.Appointment, error)
	SetStatusFunc      func(id uuid.UUID, status string) error
	SetSlotFunc        func(id uuid.UUID, date, timeOfDay string) error
	FindPetFunc        func(id uuid.UUID) (*models.Pet, error)
	ProfileByUserFunc  func(userID uuid.UUID) (*models.Profile, error)
	FindProfileFunc    func(id uuid.UUID) (*models.Profile, error)
	DueForReminderFunc func(date string) ([]models.Appointment, error)
	MarkReminderFunc   func(id uuid.UUID, at time.Time) error
}

func (m *MockAppointmentStore) Create(a *models.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(a)
	}
	return nil
}

func (m *MockAppointmentStore) FindByID(id uuid.UUID) (*models.Appointment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockAppointmentStore) FindAll() ([]models.Appointment, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc()
	}
	return nil, nil
}

func (m *MockAppointmentStore) FindByProfile(profileID uuid.UUID) ([]models.Appointment, error) {
	if m.FindByProfileFunc != nil {
		return m.FindByProfileFunc(profileID)
	}
	return nil, nil
}

func (m *MockAppointmentStore) SetStatus(id uuid.UUID, status string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(id, status)
	}
	return nil
}

func (m *MockAppointmentStore) SetSlot(id uuid.UUID, date, timeOfDay string) error {
	if m.SetSlotFunc != nil {
		return m.SetSlotFunc(id, date, timeOfDay)
	}
	return nil
}

func (m *MockAppointmentStore) FindPet(id uuid.UUID) (*models.Pet, error) {
	if m.FindPetFunc != nil {
		return m.FindPetFunc(id)
	}
	return nil, errors.New("FindPetFunc not implemented in mock")
}

func (m *MockAppointmentStore) ProfileByUser(userID uuid.UUID) (*models.Profile, error) {
	if m.ProfileByUserFunc != nil {
		return m.ProfileByUserFunc(userID)
	}
	return nil, errors.New("ProfileByUserFunc not implemented in mock")
}

func (m *MockAppointmentStore) FindProfile(id uuid.UUID) (*models.Profile, error) {
	if m.FindProfileFunc != nil {
		return m.FindProfileFunc(id)
	}
	return nil, errors.New("FindProfileFunc not implemented in mock")
}

func (m *MockAppointmentStore) DueForReminder(date string) ([]models.Appointment, error) {
	if m.DueForReminderFunc != nil {
		return m.DueForReminderFunc(date)
	}
	return nil, nil
}

func (m *MockAppointmentStore) MarkReminderSent(id uuid.UUID, at time.Time) error {
	if m.MarkReminderFunc != nil {
		return m.MarkReminderFunc(id, at)
	}
	return nil
}

// MockNotifier records dispatches and can be told to fail. Confirmation
// dispatch happens in a goroutine, so tests wait on Dispatched.
type MockNotifier struct {
	Fail       bool
	Dispatched chan string // event type, buffered
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Dispatched: make(chan string, 8)}
}

func (m *MockNotifier) SendAppointmentConfirmation(appt *models.Appointment, profile *models.Profile, pet *models.Pet, confirmURL string) error {
	m.Dispatched <- NotificationConfirmation
	if m.Fail {
		return errors.New("email transport unavailable")
	}
	return nil
}

func (m *MockNotifier) SendAppointmentReminder(appt *models.Appointment, profile *models.Profile, pet *models.Pet) error {
	m.Dispatched <- NotificationReminder
	if m.Fail {
		return errors.New("email transport unavailable")
	}
	return nil
}
