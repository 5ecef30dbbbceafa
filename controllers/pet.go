package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"naragroomer-backend/config"
	"naragroomer-backend/models"
	"naragroomer-backend/services"
	"naragroomer-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePetInput defines the expected JSON structure for creating a pet
type CreatePetInput struct {
	Name      string     `json:"name" binding:"required"`
	Breed     string     `json:"breed"`
	Age       *int       `json:"age" binding:"omitempty,min=0"`
	Weight    *float64   `json:"weight" binding:"omitempty,min=0"`
	Color     string     `json:"color"`
	Gender    string     `json:"gender" binding:"omitempty,oneof=male female"`
	Notes     string     `json:"notes"`
	ProfileID *uuid.UUID `json:"profileId"` // admin creating for a client
}

// UpdatePetInput defines the expected JSON structure for updating a pet
type UpdatePetInput struct {
	Name   *string  `json:"name"`
	Breed  *string  `json:"breed"`
	Age    *int     `json:"age" binding:"omitempty,min=0"`
	Weight *float64 `json:"weight" binding:"omitempty,min=0"`
	Color  *string  `json:"color"`
	Gender *string  `json:"gender" binding:"omitempty,oneof=male female"`
	Notes  *string  `json:"notes"`
}

// CreatePet registers a pet under the caller's profile, or under the selected
// client when an administrator creates it.
func CreatePet(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	profile, ok := resolvePetOwner(c, session, input.ProfileID)
	if !ok {
		return
	}

	pet := models.Pet{
		ProfileID: profile.ID,
		Name:      input.Name,
		Breed:     input.Breed,
		Age:       input.Age,
		Weight:    input.Weight,
		Color:     input.Color,
		Gender:    input.Gender,
		Notes:     input.Notes,
	}

	if err := config.DB.Create(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

// GetPets lists every pet for administrators, or the caller's own.
func GetPets(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var pets []models.Pet
	query := config.DB.Order("name")
	if !session.IsAdmin() {
		profile, found := ownProfile(c, session)
		if !found {
			return
		}
		query = query.Where("profile_id = ?", profile.ID)
	}

	if err := query.Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}

func GetPet(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	pet, ok := loadOwnedPet(c, session)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, pet)
}

func UpdatePet(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	pet, ok := loadOwnedPet(c, session)
	if !ok {
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.Age != nil {
		pet.Age = input.Age
	}
	if input.Weight != nil {
		pet.Weight = input.Weight
	}
	if input.Color != nil {
		pet.Color = *input.Color
	}
	if input.Gender != nil {
		pet.Gender = *input.Gender
	}
	if input.Notes != nil {
		pet.Notes = *input.Notes
	}

	if err := config.DB.Save(pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	c.JSON(http.StatusOK, pet)
}

func DeletePet(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	pet, ok := loadOwnedPet(c, session)
	if !ok {
		return
	}

	if err := config.DB.Delete(pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}

// UploadPetPhoto stores the photo and records its public URL on the pet. The
// URL is an opaque reference; swapping the local directory for a remote
// object store only changes this handler.
func UploadPetPhoto(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}

	pet, ok := loadOwnedPet(c, session)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Photo file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported photo format")
		return
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.New(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	pet.PhotoURL = "/uploads/" + filename
	if err := config.DB.Model(pet).Update("photo_url", pet.PhotoURL).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photoUrl": pet.PhotoURL})
}

// loadOwnedPet fetches the pet from the path parameter and enforces ownership.
func loadOwnedPet(c *gin.Context, session services.Session) (*models.Pet, bool) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return nil, false
	}

	var pet models.Pet
	if err := config.DB.First(&pet, "id = ?", petUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if !session.IsAdmin() {
		profile, found := ownProfile(c, session)
		if !found {
			return nil, false
		}
		if pet.ProfileID != profile.ID {
			utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions for this operation")
			return nil, false
		}
	}

	return &pet, true
}

func resolvePetOwner(c *gin.Context, session services.Session, selected *uuid.UUID) (*models.Profile, bool) {
	if selected != nil {
		if !session.IsAdmin() {
			utils.RespondWithError(c, http.StatusForbidden, "Only administrators can register pets for other clients")
			return nil, false
		}
		var profile models.Profile
		if err := config.DB.First(&profile, "id = ?", *selected).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			return nil, false
		}
		return &profile, true
	}
	return ownProfile(c, session)
}

func ownProfile(c *gin.Context, session services.Session) (*models.Profile, bool) {
	var profile models.Profile
	if err := config.DB.First(&profile, "user_id = ?", session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "Complete your client registration first")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &profile, true
}
