package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Attempt is an immutable record of one exercise submission. Attempts are
// created once and never mutated.
type Attempt struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"user_id"`
	BlockID   uuid.UUID       `json:"block_id"`
	SessionID *uuid.UUID      `json:"session_id,omitempty"`
	Mode      TrainingMode    `json:"mode"`
	Level     int             `json:"level"`
	Score     int             `json:"score"`
	Answers   json.RawMessage `json:"answers"`
	CreatedAt time.Time       `json:"created_at"`
}
