package model

import "github.com/google/uuid"

// ExercisePayload is a generated training session over one document.
type ExercisePayload struct {
	DocumentID uuid.UUID         `json:"document_id"`
	Title      string            `json:"title"`
	Reference  string            `json:"reference"`
	Mode       TrainingMode      `json:"mode"`
	Level      int               `json:"level"`
	Sections   []ExerciseSection `json:"sections"`
}

// ExerciseSection is one section of a generated exercise.
type ExerciseSection struct {
	SectionID uuid.UUID       `json:"section_id"`
	Kind      SectionKind     `json:"kind"`
	Title     string          `json:"title"`
	Mode      CompletionMode  `json:"completion_mode"`
	Density   float64         `json:"density,omitempty"`
	Strategy  GapStrategy     `json:"strategy,omitempty"`
	Blocks    []ExerciseBlock `json:"blocks"`
}

// ExerciseBlock is one block of a generated exercise. Text is the masked
// rendering for GAPS and the stripped reference text for READ_ONLY and
// FULL_REWRITE; Blanks lists the gaps the learner must fill and
// TargetBlankIDs the ids a check submission should score.
type ExerciseBlock struct {
	BlockID        uuid.UUID       `json:"block_id"`
	Text           string          `json:"text,omitempty"`
	Blanks         []ExerciseBlank `json:"blanks,omitempty"`
	TargetBlankIDs []string        `json:"target_blank_ids,omitempty"`
}

// ExerciseBlank is one masked gap. Position is the gap's index within the
// block template; Length is the expected answer's rune count, shown to the
// learner as a sizing hint.
type ExerciseBlank struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
}
