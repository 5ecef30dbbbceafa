package controllers

import (
	"net/http"
	"time"

	"naragroomer-backend/config"
	"naragroomer-backend/models"
	"naragroomer-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboardOverview returns the operational counters and the today /
// tomorrow appointment lists. Administrators see the whole salon; clients see
// only their own numbers.
func GetDashboardOverview(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var profileID *uuid.UUID
	if !session.IsAdmin() {
		profile, found := ownProfile(c, session)
		if !found {
			return
		}
		profileID = &profile.ID
	}

	now := time.Now()
	today := utils.BeginningOfDay(now).Format(utils.DateLayout)
	tomorrow := utils.TomorrowDate(now)

	var totalPets int64
	petQuery := config.DB.Model(&models.Pet{})
	if profileID != nil {
		petQuery = petQuery.Where("profile_id = ?", *profileID)
	}
	petQuery.Count(&totalPets)

	var pendingCount int64
	pendingQuery := config.DB.Model(&models.Appointment{}).
		Where("status IN ?", []string{models.StatusScheduled, models.StatusConfirmed})
	if profileID != nil {
		pendingQuery = pendingQuery.Where("profile_id = ?", *profileID)
	}
	pendingQuery.Count(&pendingCount)

	todayAppts, err := appointmentsForDate(today, profileID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	tomorrowAppts, err := appointmentsForDate(tomorrow, profileID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	response := gin.H{
		"totalPets":            totalPets,
		"pendingAppointments":  pendingCount,
		"todayAppointments":    todayAppts,
		"tomorrowAppointments": tomorrowAppts,
	}

	if session.IsAdmin() {
		var totalClients int64
		config.DB.Model(&models.Profile{}).Count(&totalClients)
		response["totalClients"] = totalClients
	}

	c.JSON(http.StatusOK, response)
}

func appointmentsForDate(date string, profileID *uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	query := config.DB.Preload("Pet").Preload("Profile").
		Where("appointment_date = ? AND status <> ?", date, models.StatusCancelled).
		Order("appointment_time")
	if profileID != nil {
		query = query.Where("profile_id = ?", *profileID)
	}
	err := query.Find(&appts).Error
	return appts, err
}
