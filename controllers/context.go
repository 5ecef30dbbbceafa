package controllers

import (
	"errors"
	"net/http"

	"naragroomer-backend/services"
	"naragroomer-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionFromContext rebuilds the acting session from the JWT claims the auth
// middleware stored on the request.
func sessionFromContext(c *gin.Context) (services.Session, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return services.Session{}, false
	}
	role, _ := c.Get("role")

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return services.Session{}, false
	}

	roleStr, _ := role.(string)
	return services.Session{UserID: userUUID, Role: roleStr}, true
}

// respondServiceError maps lifecycle errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "This slot is already taken. Choose another time.")
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, services.ErrProfileRequired):
		utils.RespondWithError(c, http.StatusForbidden, "Complete your client registration before booking")
	case errors.Is(err, services.ErrPetOwnership):
		utils.RespondWithError(c, http.StatusForbidden, "Pet does not belong to the selected client")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions for this operation")
	case errors.Is(err, services.ErrTerminalState):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Appointment is already completed or cancelled")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Transition not allowed from the current status")
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrInvalidToken):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired confirmation token")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
