package controllers

import (
	"errors"
	"log"
	"net/http"

	"naragroomer-backend/config"
	"naragroomer-backend/models"
	"naragroomer-backend/services"
	"naragroomer-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientController struct {
	Notifier *services.Notifier
}

// CreateClientInput defines the expected JSON structure for registering a client
type CreateClientInput struct {
	FullName         string                  `json:"fullName" binding:"required"`
	CPF              string                  `json:"cpf" binding:"required"`
	Phone            string                  `json:"phone" binding:"required"`
	Address          models.Address          `json:"address" binding:"required"`
	EmergencyContact models.EmergencyContact `json:"emergencyContact" binding:"required"`
	UserID           *uuid.UUID              `json:"userId"` // admin registering on a user's behalf
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	FullName         *string                  `json:"fullName"`
	Phone            *string                  `json:"phone"`
	Address          *models.Address          `json:"address"`
	EmergencyContact *models.EmergencyContact `json:"emergencyContact"`
}

// CreateClient completes the registration flow: a user without a profile
// cannot book. Sends the welcome email on success.
func (cc *ClientController) CreateClient(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !utils.ValidateCPF(input.CPF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CPF format")
		return
	}

	targetUserID := session.UserID
	if input.UserID != nil {
		if !session.IsAdmin() {
			utils.RespondWithError(c, http.StatusForbidden, "Only administrators can register other users")
			return
		}
		targetUserID = *input.UserID
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", targetUserID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	var existing models.Profile
	if err := config.DB.Where("user_id = ?", targetUserID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Client profile already exists for this user")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	profile := models.Profile{
		UserID:           targetUserID,
		FullName:         input.FullName,
		CPF:              input.CPF,
		Email:            user.Email,
		Phone:            input.Phone,
		Address:          input.Address,
		EmergencyContact: input.EmergencyContact,
	}

	if err := config.DB.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "A client with this CPF already exists")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client profile")
		return
	}

	go func() {
		if err := cc.Notifier.SendWelcome(&profile); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", profile.Email, err)
		}
	}()

	c.JSON(http.StatusCreated, profile)
}

// GetClients retrieves all client profiles (admin only, enforced in routes)
func (cc *ClientController) GetClients(c *gin.Context) {
	var profiles []models.Profile
	if err := config.DB.Preload("Pets").Find(&profiles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// GetClient retrieves one client profile; clients may only read their own.
func (cc *ClientController) GetClient(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	profileUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var profile models.Profile
	if err := config.DB.Preload("Pets").First(&profile, "id = ?", profileUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !session.IsAdmin() && profile.UserID != session.UserID {
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions for this operation")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateClient updates a client profile; clients may only update their own.
func (cc *ClientController) UpdateClient(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	profileUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", profileUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !session.IsAdmin() && profile.UserID != session.UserID {
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions for this operation")
		return
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		profile.Phone = *input.Phone
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.EmergencyContact != nil {
		profile.EmergencyContact = *input.EmergencyContact
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteClient removes a client and everything owned by it: appointments,
// pets, the profile and the auth account, in one transaction (admin only).
func (cc *ClientController) DeleteClient(c *gin.Context) {
	profileUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", profileUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Pet{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&profile).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", profile.UserID).Delete(&models.User{}).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
