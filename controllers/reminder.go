// controllers/reminder.go
package controllers

import (
	"net/http"

	"naragroomer-backend/services"
	"naragroomer-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Service *services.ReminderService
}

// RunReminderSweep triggers the daily sweep on demand (admin only, enforced
// in routes). Appointments already stamped are skipped, so this is safe to
// call more than once per day.
func (rc *ReminderController) RunReminderSweep(c *gin.Context) {
	sent, err := rc.Service.Sweep()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Reminder sweep failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder sweep completed",
		"sent":    sent,
	})
}
