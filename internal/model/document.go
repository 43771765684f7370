package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus is the publication lifecycle of a PV.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "DRAFT"
	DocumentStatusPublished DocumentStatus = "PUBLISHED"
)

// Document is a procedural document (PV) users revise against.
type Document struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Reference string         `json:"reference"` // e.g. "PV d'audition libre"
	Status    DocumentStatus `json:"status"`
	AuthorID  int            `json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Sections  []Section      `json:"sections,omitempty"`
}

// Section groups ordered blocks under a section kind.
type Section struct {
	ID         uuid.UUID   `json:"id"`
	DocumentID uuid.UUID   `json:"document_id"`
	Kind       SectionKind `json:"kind"`
	Title      string      `json:"title"`
	Position   int         `json:"position"`
	Blocks     []Block     `json:"blocks,omitempty"`
}

// Block is the smallest addressable unit of template text. The template
// may contain [[expected text]] gap markers; markers are non-nested and
// non-overlapping.
type Block struct {
	ID             uuid.UUID `json:"id"`
	SectionID      uuid.UUID `json:"section_id"`
	Position       int       `json:"position"`
	Template       string    `json:"template"`
	Tags           []string  `json:"tags"`
	LegalFramework *string   `json:"legal_framework,omitempty"`
}

// CreateDocumentRequest is the payload for creating a document shell.
type CreateDocumentRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=200"`
	Reference string `json:"reference" binding:"required,min=1,max=200"`
}

// UpdateDocumentRequest is the payload for renaming a draft document.
type UpdateDocumentRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=200"`
	Reference string `json:"reference" binding:"required,min=1,max=200"`
}

// SectionRequest is one section in a bulk content replacement.
type SectionRequest struct {
	Kind     string         `json:"kind" binding:"required,oneof=en_tete cadre_legal identite deroulement notification_droits cloture"`
	Title    string         `json:"title" binding:"required,min=1,max=200"`
	Position int            `json:"position" binding:"min=0"`
	Blocks   []BlockRequest `json:"blocks" binding:"dive"`
}

// BlockRequest is one block in a bulk content replacement.
type BlockRequest struct {
	Position       int      `json:"position" binding:"min=0"`
	Template       string   `json:"template" binding:"required,min=1"`
	Tags           []string `json:"tags"`
	LegalFramework *string  `json:"legal_framework"`
}

// ReplaceContentRequest bulk-replaces a draft document's section tree.
type ReplaceContentRequest struct {
	Sections []SectionRequest `json:"sections" binding:"required,min=1,dive"`
}

// DocumentPayload is the Redis-cached reference rendering of a published
// document: every block's markers stripped to literal text.
type DocumentPayload struct {
	DocumentID uuid.UUID        `json:"document_id"`
	Title      string           `json:"title"`
	Reference  string           `json:"reference"`
	Sections   []SectionPayload `json:"sections"`
}

// SectionPayload is one section of a cached reference rendering.
type SectionPayload struct {
	SectionID uuid.UUID      `json:"section_id"`
	Kind      SectionKind    `json:"kind"`
	Title     string         `json:"title"`
	Blocks    []BlockPayload `json:"blocks"`
}

// BlockPayload is one block of a cached reference rendering.
type BlockPayload struct {
	BlockID uuid.UUID `json:"block_id"`
	Text    string    `json:"text"`
}
