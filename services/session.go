package services

import (
	"naragroomer-backend/models"

	"github.com/google/uuid"
)

// Session carries the acting identity and role through every lifecycle call,
// instead of each operation reading ambient auth state.
type Session struct {
	UserID uuid.UUID
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}
