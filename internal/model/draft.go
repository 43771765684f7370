package model

import (
	"time"

	"github.com/google/uuid"
)

// DictationDraft is an in-progress dictation transcript autosaved from the
// WebSocket stream. One draft per (user, document, section).
type DictationDraft struct {
	UserID     int       `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	SectionID  uuid.UUID `json:"section_id"`
	Text       string    `json:"text"`
	UpdatedAt  time.Time `json:"updated_at"`
}
