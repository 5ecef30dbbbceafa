package controllers

import (
	"net/http"

	"naragroomer-backend/models"
	"naragroomer-backend/services"
	"naragroomer-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentController exposes the lifecycle service over HTTP. All status
// logic lives in the service; handlers only bind input, build the session and
// map errors.
type AppointmentController struct {
	Service *services.AppointmentService
}

// CreateAppointmentInput defines the expected JSON structure for booking
type CreateAppointmentInput struct {
	ProfileID   *uuid.UUID `json:"profileId"` // admin booking on a client's behalf
	PetID       uuid.UUID  `json:"petId" binding:"required"`
	ServiceType string     `json:"serviceType" binding:"required"`
	Date        string     `json:"appointmentDate" binding:"required"`
	Time        string     `json:"appointmentTime" binding:"required"`
	Price       *float64   `json:"price" binding:"omitempty,min=0"`
	Notes       string     `json:"notes"`
}

// RescheduleInput defines the expected JSON structure for rescheduling
type RescheduleInput struct {
	Date string `json:"appointmentDate" binding:"required"`
	Time string `json:"appointmentTime" binding:"required"`
}

func (ap *AppointmentController) CreateAppointment(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ap.Service.Create(session, services.CreateAppointmentInput{
		ProfileID:   input.ProfileID,
		PetID:       input.PetID,
		ServiceType: input.ServiceType,
		Date:        input.Date,
		Time:        input.Time,
		Price:       input.Price,
		Notes:       input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

func (ap *AppointmentController) GetAppointments(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	appts, err := ap.Service.List(session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appts)
}

func (ap *AppointmentController) GetAppointment(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	apptUUID, ok := appointmentID(c)
	if !ok {
		return
	}

	appt, err := ap.Service.Get(session, apptUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// ConfirmAppointment handles the public confirmation deep link
// (/confirm-appointment?id=<uuid>&token=<signed>). No session required: the
// signed token is the credential.
func (ap *AppointmentController) ConfirmAppointment(c *gin.Context) {
	idParam := c.Query("id")
	token := c.Query("token")
	if idParam == "" || token == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing id or token parameter")
		return
	}

	apptUUID, err := uuid.Parse(idParam)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result, err := ap.Service.Confirm(apptUUID, token)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Appointment confirmed successfully"
	if result.AlreadyConfirmed {
		message = "Appointment was already confirmed"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          message,
		"alreadyConfirmed": result.AlreadyConfirmed,
		"appointment":      result.Appointment,
	})
}

func (ap *AppointmentController) StartAppointment(c *gin.Context) {
	ap.transition(c, ap.Service.Start)
}

func (ap *AppointmentController) CompleteAppointment(c *gin.Context) {
	ap.transition(c, ap.Service.Complete)
}

func (ap *AppointmentController) CancelAppointment(c *gin.Context) {
	ap.transition(c, ap.Service.Cancel)
}

func (ap *AppointmentController) RescheduleAppointment(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	apptUUID, ok := appointmentID(c)
	if !ok {
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ap.Service.Reschedule(session, apptUUID, input.Date, input.Time)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func (ap *AppointmentController) transition(c *gin.Context, op func(services.Session, uuid.UUID) (*models.Appointment, error)) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	apptUUID, ok := appointmentID(c)
	if !ok {
		return
	}

	appt, err := op(session, apptUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

func appointmentID(c *gin.Context) (uuid.UUID, bool) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return uuid.Nil, false
	}
	return apptUUID, true
}
