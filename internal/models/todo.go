package models

import (
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CreatedAt   time.Time
	Title       string
	Description *string
	Completed   bool
}
