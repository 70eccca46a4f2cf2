package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Fixed envelope values of every generated document.
const (
	ResourceType    = "Questionnaire"
	QuestionnaireID = "GeneratedQuestionnaire"
	StatusActive    = "active"
)

// Questionnaire is the assembled document. Field order matches the
// serialized key order.
type Questionnaire struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
	Status       string `json:"status"`
	Item         []Item `json:"item"`
}

// Item is one question derived from one valid CSV row.
type Item struct {
	LinkID       string         `json:"linkId"`
	Text         string         `json:"text"`
	Type         string         `json:"type"`
	AnswerOption []AnswerOption `json:"answerOption,omitempty"`
	InputType    string         `json:"inputType,omitempty"`
}

// AnswerOption is one selectable answer of a choice-like item.
type AnswerOption struct {
	ValueCoding Coding `json:"valueCoding"`
}

// Coding carries an option's code and display text. Both hold the option
// text from the CSV cell.
type Coding struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// Assemble wraps items into a document with the fixed envelope fields.
// The item slice is never nil so the document always serializes "item".
func Assemble(items []Item) *Questionnaire {
	if items == nil {
		items = []Item{}
	}
	return &Questionnaire{
		ResourceType: ResourceType,
		ID:           QuestionnaireID,
		Status:       StatusActive,
		Item:         items,
	}
}

// MarshalIndent renders the document for display: two-space indentation,
// with non-ASCII and HTML characters left unescaped.
func (q *Questionnaire) MarshalIndent() ([]byte, error) {
	return encodeJSON(q, "  ")
}

// MarshalCompact renders the machine-readable carry-forward form.
func (q *Questionnaire) MarshalCompact() ([]byte, error) {
	return encodeJSON(q, "")
}

// encodeJSON encodes v without HTML escaping, trimming the encoder's
// trailing newline.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode questionnaire: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseQuestionnaire decodes a serialized document.
// Returns ErrNoPayload for blank input and ErrInvalidPayload when the data
// is not a single JSON object of the document's shape.
func ParseQuestionnaire(data string) (*Questionnaire, error) {
	if strings.TrimSpace(data) == "" {
		return nil, ErrNoPayload
	}

	dec := json.NewDecoder(strings.NewReader(data))
	var q Questionnaire
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidPayload)
	}
	if q.ResourceType == "" {
		return nil, fmt.Errorf("%w: missing resourceType", ErrInvalidPayload)
	}
	if q.Item == nil {
		q.Item = []Item{}
	}

	return &q, nil
}
