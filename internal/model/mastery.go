package model

import (
	"time"

	"github.com/google/uuid"
)

// Mastery is the per-(user, block) proficiency record. The score is a
// 0-100 integer folded with an exponential moving average on every attempt.
type Mastery struct {
	UserID        int       `json:"user_id"`
	BlockID       uuid.UUID `json:"block_id"`
	MasteryScore  int       `json:"mastery_score"`
	AttemptCount  int       `json:"attempt_count"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
}

// SectionMastery is a per-section average used by the profile resolver.
type SectionMastery struct {
	SectionID  uuid.UUID `json:"section_id"`
	AvgMastery int       `json:"avg_mastery"`
	BlockCount int       `json:"block_count"`
}
