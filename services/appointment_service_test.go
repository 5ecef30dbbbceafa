package services

import (
	"testing"
	"time"

	"naragroomer-backend/models"
	"naragroomer-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *models.Profile {
	return &models.Profile{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		FullName: "Maria Silva",
		Email:    "maria@example.com",
		Phone:    "+5511999990000",
	}
}

func testPet(profileID uuid.UUID) *models.Pet {
	return &models.Pet{ID: uuid.New(), ProfileID: profileID, Name: "Rex"}
}

// stubStore wires the mock around a single mutable appointment row, close
// enough to the real store for transition tests.
func stubStore(appt *models.Appointment, profile *models.Profile, pet *models.Pet) *MockAppointmentStore {
	return &MockAppointmentStore{
		FindByIDFunc: func(id uuid.UUID) (*models.Appointment, error) {
			if appt == nil || appt.ID != id {
				return nil, ErrNotFound
			}
			copied := *appt
			return &copied, nil
		},
		SetStatusFunc: func(id uuid.UUID, status string) error {
			appt.Status = status
			return nil
		},
		SetSlotFunc: func(id uuid.UUID, date, timeOfDay string) error {
			appt.AppointmentDate = date
			appt.AppointmentTime = timeOfDay
			return nil
		},
		ProfileByUserFunc: func(userID uuid.UUID) (*models.Profile, error) {
			if profile != nil && profile.UserID == userID {
				return profile, nil
			}
			return nil, ErrProfileRequired
		},
		FindProfileFunc: func(id uuid.UUID) (*models.Profile, error) {
			if profile != nil && profile.ID == id {
				return profile, nil
			}
			return nil, ErrNotFound
		},
		FindPetFunc: func(id uuid.UUID) (*models.Pet, error) {
			if pet != nil && pet.ID == id {
				return pet, nil
			}
			return nil, ErrNotFound
		},
	}
}

func clientSession(profile *models.Profile) Session {
	return Session{UserID: profile.UserID, Role: models.RoleClient}
}

func adminSession() Session {
	return Session{UserID: uuid.New(), Role: models.RoleAdmin}
}

func TestCreateAppointment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	profile := testProfile()
	pet := testPet(profile.ID)
	store := stubStore(nil, profile, pet)
	notifier := NewMockNotifier()
	svc := NewAppointmentService(store, notifier)

	appt, err := svc.Create(clientSession(profile), CreateAppointmentInput{
		PetID:       pet.ID,
		ServiceType: models.ServiceBath,
		Date:        "2024-02-15",
		Time:        "14:00",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, profile.ID, appt.ProfileID)
	assert.Equal(t, pet.ID, appt.PetID)

	select {
	case ev := <-notifier.Dispatched:
		assert.Equal(t, NotificationConfirmation, ev)
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not dispatched")
	}
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	profile := testProfile()
	pet := testPet(profile.ID)
	store := stubStore(nil, profile, pet)
	store.CreateFunc = func(a *models.Appointment) error { return ErrConflict }
	notifier := NewMockNotifier()
	svc := NewAppointmentService(store, notifier)

	_, err := svc.Create(clientSession(profile), CreateAppointmentInput{
		PetID:       pet.ID,
		ServiceType: models.ServiceBath,
		Date:        "2024-02-15",
		Time:        "14:00",
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, notifier.Dispatched, "no email for a rejected booking")
}

func TestCreateAppointmentValidation(t *testing.T) {
	profile := testProfile()
	pet := testPet(profile.ID)
	svc := NewAppointmentService(stubStore(nil, profile, pet), NewMockNotifier())

	cases := []struct {
		name  string
		input CreateAppointmentInput
	}{
		{"unknown service", CreateAppointmentInput{PetID: pet.ID, ServiceType: "manicure", Date: "2024-02-15", Time: "14:00"}},
		{"bad date", CreateAppointmentInput{PetID: pet.ID, ServiceType: models.ServiceBath, Date: "15/02/2024", Time: "14:00"}},
		{"bad time", CreateAppointmentInput{PetID: pet.ID, ServiceType: models.ServiceBath, Date: "2024-02-15", Time: "2pm"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(clientSession(profile), tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateAppointmentPetOwnership(t *testing.T) {
	profile := testProfile()
	otherPet := testPet(uuid.New()) // belongs to someone else
	svc := NewAppointmentService(stubStore(nil, profile, otherPet), NewMockNotifier())

	_, err := svc.Create(clientSession(profile), CreateAppointmentInput{
		PetID:       otherPet.ID,
		ServiceType: models.ServiceFullTrim,
		Date:        "2024-02-15",
		Time:        "14:00",
	})

	assert.ErrorIs(t, err, ErrPetOwnership)
}

func TestCreateAppointmentAdminSelectsClient(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	profile := testProfile()
	pet := testPet(profile.ID)
	svc := NewAppointmentService(stubStore(nil, profile, pet), NewMockNotifier())

	// Without an explicit client the admin booking is rejected
	_, err := svc.Create(adminSession(), CreateAppointmentInput{
		PetID:       pet.ID,
		ServiceType: models.ServiceBath,
		Date:        "2024-02-15",
		Time:        "14:00",
	})
	assert.ErrorIs(t, err, ErrValidation)

	appt, err := svc.Create(adminSession(), CreateAppointmentInput{
		ProfileID:   &profile.ID,
		PetID:       pet.ID,
		ServiceType: models.ServiceBath,
		Date:        "2024-02-15",
		Time:        "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, appt.ProfileID)
}

func TestCreateAppointmentNotifierFailureDoesNotFailCreate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	profile := testProfile()
	pet := testPet(profile.ID)
	notifier := NewMockNotifier()
	notifier.Fail = true
	svc := NewAppointmentService(stubStore(nil, profile, pet), notifier)

	appt, err := svc.Create(clientSession(profile), CreateAppointmentInput{
		PetID:       pet.ID,
		ServiceType: models.ServiceHydration,
		Date:        "2024-02-15",
		Time:        "15:00",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, appt.Status)

	select {
	case <-notifier.Dispatched:
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not attempted")
	}
}

func TestConfirmAppointment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Status:    models.StatusScheduled,
	}
	store := stubStore(appt, profile, nil)
	svc := NewAppointmentService(store, NewMockNotifier())

	token, err := utils.GenerateConfirmationToken(profile.ID.String(), appt.ID.String(), time.Hour)
	require.NoError(t, err)

	result, err := svc.Confirm(appt.ID, token)
	require.NoError(t, err)
	assert.False(t, result.AlreadyConfirmed)
	assert.Equal(t, models.StatusConfirmed, result.Appointment.Status)
	assert.Equal(t, models.StatusConfirmed, appt.Status)

	// Idempotent: second valid confirm reports already confirmed
	result, err = svc.Confirm(appt.ID, token)
	require.NoError(t, err)
	assert.True(t, result.AlreadyConfirmed)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
}

func TestConfirmAppointmentInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Status:    models.StatusScheduled,
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	// Token issued for a different appointment must not confirm this one
	otherToken, err := utils.GenerateConfirmationToken(profile.ID.String(), uuid.NewString(), time.Hour)
	require.NoError(t, err)

	_, err = svc.Confirm(appt.ID, otherToken)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
	assert.Equal(t, models.StatusScheduled, appt.Status, "status must be untouched")

	_, err = svc.Confirm(appt.ID, "garbage")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
	assert.Equal(t, models.StatusScheduled, appt.Status)
}

func TestCancelAppointment(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Status:    models.StatusConfirmed,
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	got, err := svc.Cancel(clientSession(profile), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	// Cancelling again is an error and the status stays cancelled
	_, err = svc.Cancel(clientSession(profile), appt.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
	assert.Equal(t, models.StatusCancelled, appt.Status)
}

func TestCancelRequiresOwnershipOrAdmin(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: uuid.New(), // someone else's appointment
		Status:    models.StatusScheduled,
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	_, err := svc.Cancel(clientSession(profile), appt.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, models.StatusScheduled, appt.Status)

	_, err = svc.Cancel(adminSession(), appt.ID)
	assert.NoError(t, err)
}

func TestCompleteAppointment(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Status:    models.StatusInProgress,
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	// Clients cannot complete
	_, err := svc.Complete(clientSession(profile), appt.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Complete(adminSession(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	// Terminal: any further transition is rejected
	_, err = svc.Complete(adminSession(), appt.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
	_, err = svc.Start(adminSession(), appt.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
	assert.Equal(t, models.StatusCompleted, appt.Status)
}

func TestCompleteFromScheduledRejected(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Status:    models.StatusScheduled,
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	_, err := svc.Complete(adminSession(), appt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.StatusScheduled, appt.Status)
}

func TestStartAppointment(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:        uuid.New(),
		ProfileID: profile.ID,
		Status:    models.StatusConfirmed,
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	got, err := svc.Start(adminSession(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

func TestRescheduleAppointment(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:              uuid.New(),
		ProfileID:       profile.ID,
		PetID:           uuid.New(),
		Status:          models.StatusScheduled,
		AppointmentDate: "2024-02-15",
		AppointmentTime: "14:00",
		Notes:           "prefers warm water",
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	got, err := svc.Reschedule(adminSession(), appt.ID, "2024-02-16", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-16", got.AppointmentDate)
	assert.Equal(t, "09:00", got.AppointmentTime)
	// Everything else untouched
	assert.Equal(t, "prefers warm water", got.Notes)
	assert.Equal(t, appt.PetID, got.PetID)
	assert.Equal(t, models.StatusScheduled, got.Status)
}

func TestRescheduleConflictLeavesSlotUnchanged(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:              uuid.New(),
		ProfileID:       profile.ID,
		Status:          models.StatusConfirmed,
		AppointmentDate: "2024-02-15",
		AppointmentTime: "14:00",
	}
	store := stubStore(appt, profile, nil)
	store.SetSlotFunc = func(id uuid.UUID, date, timeOfDay string) error { return ErrConflict }
	svc := NewAppointmentService(store, NewMockNotifier())

	_, err := svc.Reschedule(adminSession(), appt.ID, "2024-02-16", "09:00")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "2024-02-15", appt.AppointmentDate)
	assert.Equal(t, "14:00", appt.AppointmentTime)
}

func TestRescheduleTerminalRejected(t *testing.T) {
	profile := testProfile()
	appt := &models.Appointment{
		ID:              uuid.New(),
		ProfileID:       profile.ID,
		Status:          models.StatusCancelled,
		AppointmentDate: "2024-02-15",
		AppointmentTime: "14:00",
	}
	svc := NewAppointmentService(stubStore(appt, profile, nil), NewMockNotifier())

	_, err := svc.Reschedule(adminSession(), appt.ID, "2024-02-16", "09:00")
	assert.ErrorIs(t, err, ErrTerminalState)
	assert.Equal(t, "2024-02-15", appt.AppointmentDate)
}

func TestListAppointments(t *testing.T) {
	profile := testProfile()
	own := models.Appointment{ID: uuid.New(), ProfileID: profile.ID}
	foreign := models.Appointment{ID: uuid.New(), ProfileID: uuid.New()}

	store := stubStore(nil, profile, nil)
	store.FindAllFunc = func() ([]models.Appointment, error) {
		return []models.Appointment{own, foreign}, nil
	}
	store.FindByProfileFunc = func(profileID uuid.UUID) ([]models.Appointment, error) {
		return []models.Appointment{own}, nil
	}
	svc := NewAppointmentService(store, NewMockNotifier())

	all, err := svc.List(adminSession())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(clientSession(profile))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, own.ID, mine[0].ID)
}
