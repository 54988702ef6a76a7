package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RawFragment is one unit of raw source text handed to a parser.
// Empty strings mean "absent".
type RawFragment struct {
	EntryID         uuid.UUID
	Word            string
	Definition      string
	RawText         string
	Source          SourceCode
	SenseNumberHint int
}

// Text returns the text to parse: RawText when present, otherwise Definition.
func (f RawFragment) Text() string {
	if strings.TrimSpace(f.RawText) != "" {
		return f.RawText
	}
	return f.Definition
}

// Validate checks that the fragment can be routed to a parser.
func (f RawFragment) Validate() error {
	var errs []FieldError
	if !f.Source.IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: fmt.Sprintf("unknown source %q", f.Source)})
	}
	if strings.TrimSpace(f.Word) == "" && strings.TrimSpace(f.Text()) == "" {
		errs = append(errs, FieldError{Field: "text", Message: "word and text are both empty"})
	}
	if f.SenseNumberHint < 0 {
		errs = append(errs, FieldError{Field: "sense_number", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// CrossReference points from a sense to another headword.
type CrossReference struct {
	TargetWord string        `json:"target_word"`
	Type       ReferenceType `json:"type"`
}

// Etymon is a single source-language form named by an etymology.
type Etymon struct {
	Language string `json:"language"`
	Word     string `json:"word"`
}

// Etymology is entry-level origin text. LanguageCode is empty when the
// language could not be resolved.
type Etymology struct {
	Text         string   `json:"text"`
	LanguageCode string   `json:"language_code,omitempty"`
	Etymons      []Etymon `json:"etymons,omitempty"`
}

// ExtractionWarning records a field that could not be extracted cleanly.
type ExtractionWarning struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (w ExtractionWarning) String() string {
	return w.Field + ": " + w.Reason
}

// ParsedDefinition is the normalized output record for one sense.
type ParsedDefinition struct {
	MeaningTitle     string           `json:"meaning_title"`
	Definition       string           `json:"definition"`
	SenseNumber      int              `json:"sense_number"`
	PartOfSpeech     *PartOfSpeech    `json:"part_of_speech,omitempty"`
	Domain           *string          `json:"domain,omitempty"`
	SecondaryDomains []string         `json:"secondary_domains,omitempty"`
	UsageLabel       *string          `json:"usage_label,omitempty"`
	SecondaryLabels  []string         `json:"secondary_labels,omitempty"`
	Examples         []string         `json:"examples,omitempty"`
	Synonyms         []string         `json:"synonyms,omitempty"`
	CrossReferences  []CrossReference `json:"cross_references,omitempty"`
	Etymology        *Etymology       `json:"etymology,omitempty"`
	Alias            *string          `json:"alias,omitempty"`
	Pronunciation    *string          `json:"pronunciation,omitempty"`
	Variants         []string         `json:"variants,omitempty"`
	RawFragment      string           `json:"raw_fragment"`
	Fallback         bool             `json:"fallback,omitempty"`

	Warnings []ExtractionWarning `json:"warnings,omitempty"`
}

// HasContent reports whether the record carries anything worth keeping.
func (d *ParsedDefinition) HasContent() bool {
	return d.Definition != "" || len(d.Examples) > 0 || len(d.CrossReferences) > 0
}
