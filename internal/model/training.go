package model

// TrainingMode is the kind of revision session a user starts on a document.
type TrainingMode string

const (
	TrainingModeTexteTrou TrainingMode = "TEXTE_TROU"
	TrainingModeDictee    TrainingMode = "DICTEE"
	TrainingModeExamen    TrainingMode = "EXAMEN"
)

// Valid reports whether the mode is one of the known training modes.
func (m TrainingMode) Valid() bool {
	switch m {
	case TrainingModeTexteTrou, TrainingModeDictee, TrainingModeExamen:
		return true
	}
	return false
}

// CompletionMode is how a section is rendered during an exercise.
type CompletionMode string

const (
	CompletionReadOnly    CompletionMode = "READ_ONLY"
	CompletionGaps        CompletionMode = "GAPS"
	CompletionFullRewrite CompletionMode = "FULL_REWRITE"
)

// GapStrategy filters which gaps are eligible for masking.
type GapStrategy string

const (
	StrategyAll          GapStrategy = "ALL"
	StrategyArticlesOnly GapStrategy = "ARTICLES_ONLY"
	StrategyKeywords     GapStrategy = "KEYWORDS"
)

// SectionKind labels the role a section plays inside a PV.
type SectionKind string

const (
	SectionEnTete             SectionKind = "en_tete"
	SectionCadreLegal         SectionKind = "cadre_legal"
	SectionIdentite           SectionKind = "identite"
	SectionDeroulement        SectionKind = "deroulement"
	SectionNotificationDroits SectionKind = "notification_droits"
	SectionCloture            SectionKind = "cloture"
)

// GenerateExerciseRequest is the payload for building an exercise from a document.
type GenerateExerciseRequest struct {
	Mode  string `json:"mode" binding:"required,oneof=TEXTE_TROU DICTEE EXAMEN"`
	Level int    `json:"level" binding:"omitempty,min=1,max=3"`
}

// CheckAnswersRequest is the payload for scoring blank-by-blank answers on a block.
type CheckAnswersRequest struct {
	Answers   map[string]string `json:"answers" binding:"required"`
	TargetIDs []string          `json:"target_ids"`
	Mode      string            `json:"mode" binding:"omitempty,oneof=TEXTE_TROU DICTEE EXAMEN"`
	Level     int               `json:"level" binding:"omitempty,min=1,max=3"`
}

// ReciteRequest is the payload for scoring a free-text recitation of a block.
type ReciteRequest struct {
	Text  string `json:"text" binding:"required"`
	Mode  string `json:"mode" binding:"omitempty,oneof=TEXTE_TROU DICTEE EXAMEN"`
	Level int    `json:"level" binding:"omitempty,min=1,max=3"`
}
