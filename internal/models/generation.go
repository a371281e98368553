package models

import (
	"errors"
	"time"
)

// ToolKind selects which AI tool a generation request targets.
type ToolKind string

const (
	ToolExamMaker    ToolKind = "exam_maker"
	ToolClassPlanner ToolKind = "class_planner"
)

// ItemType is the closed set of question styles the exam maker supports.
type ItemType string

const (
	ItemMultipleChoice ItemType = "multiple_choice"
	ItemTrueFalse      ItemType = "true_false"
	ItemShortAnswer    ItemType = "short_answer"
	ItemOpenEnded      ItemType = "open_ended"
	ItemMixed          ItemType = "mixed"
)

// ValidItemType reports whether t belongs to the supported set.
func ValidItemType(t ItemType) bool {
	switch t {
	case ItemMultipleChoice, ItemTrueFalse, ItemShortAnswer, ItemOpenEnded, ItemMixed:
		return true
	}
	return false
}

// ScoringMode selects how points are distributed across questions.
type ScoringMode string

const (
	ScoringEqual  ScoringMode = "equal"
	ScoringCustom ScoringMode = "custom"
)

// GenerationRequest is the ephemeral, per-submission input of the
// generation pipeline. It is assembled from the form payload plus the
// extracted reference text and never persisted.
type GenerationRequest struct {
	Tool                   ToolKind
	Subject                string
	ArtifactName           string
	Quantity               int
	ItemType               ItemType
	ClassroomID            string
	ScoringMode            ScoringMode
	CustomDetails          string
	TotalPoints            int
	AdditionalInstructions string
	ModelID                string

	// Planner-only knobs.
	Theme            string
	PlayfulnessLevel int

	// Derived from the attached reference document; empty when none.
	ReferenceText string
}

// ReferenceOrigin tells where a reference document came from.
type ReferenceOrigin string

const (
	OriginUploaded       ReferenceOrigin = "uploaded"
	OriginClassroomStore ReferenceOrigin = "classroom_store"
)

// ReferenceDocument is the extracted text of a single source document.
type ReferenceDocument struct {
	SourceName    string          `json:"source_name"`
	ExtractedText string          `json:"extracted_text"`
	Origin        ReferenceOrigin `json:"origin"`
	OriginID      string          `json:"origin_id,omitempty"`
}

// ErrReferenceAttached is returned when a second document is attached to
// an occupied reference slot.
var ErrReferenceAttached = errors.New("a reference document is already attached; remove it first")

// ReferenceSlot holds at most one reference document. Attaching over an
// occupied slot fails; callers must Clear or Replace explicitly.
type ReferenceSlot struct {
	doc *ReferenceDocument
}

// Attach places a document into an empty slot.
func (s *ReferenceSlot) Attach(doc *ReferenceDocument) error {
	if doc == nil {
		return errors.New("nil reference document")
	}
	if s.doc != nil {
		return ErrReferenceAttached
	}
	s.doc = doc
	return nil
}

// Replace swaps the current document, occupied or not.
func (s *ReferenceSlot) Replace(doc *ReferenceDocument) {
	s.doc = doc
}

// Clear empties the slot.
func (s *ReferenceSlot) Clear() {
	s.doc = nil
}

// Get returns the attached document, or nil.
func (s *ReferenceSlot) Get() *ReferenceDocument {
	return s.doc
}

// Text returns the attached document's extracted text, or "".
func (s *ReferenceSlot) Text() string {
	if s.doc == nil {
		return ""
	}
	return s.doc.ExtractedText
}

// GeneratedArtifact is a successful generation result held in memory for
// the display/export step only.
type GeneratedArtifact struct {
	RawText      string    `json:"raw_text"`
	RenderedHTML string    `json:"rendered_html"`
	ModelID      string    `json:"model"`
	Tool         ToolKind  `json:"tool"`
	CreatedAt    time.Time `json:"created_at"`
}
