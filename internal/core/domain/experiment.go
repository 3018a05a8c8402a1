package domain

import (
	"time"

	"github.com/google/uuid"
)

type Experiment struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
}
