package extract

import (
	"fmt"
	"maps"
	"regexp"
	"slices"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// HeadwordClass is a family of lines that start a new entry block.
type HeadwordClass int

const (
	// ClassMarker is a grammar-specific explicit headword marker.
	ClassMarker HeadwordClass = iota + 1
	// ClassWordPOS is "Word, pos." as in "Aard·vark, n.".
	ClassWordPOS
	// ClassBracketVariant is "A (# emph. #).".
	ClassBracketVariant
	// ClassAllCaps is an upper-case headword line such as "AARDVARK".
	ClassAllCaps
	// ClassLiteral covers single-letter lines: "A", "A.", "A-", "A 1".
	ClassLiteral
)

func (c HeadwordClass) String() string {
	switch c {
	case ClassMarker:
		return "marker"
	case ClassWordPOS:
		return "word_pos"
	case ClassBracketVariant:
		return "bracket_variant"
	case ClassAllCaps:
		return "all_caps"
	case ClassLiteral:
		return "literal"
	}
	return fmt.Sprintf("HeadwordClass(%d)", int(c))
}

// Rewrite is a substitution applied to raw text before tag stripping.
type Rewrite struct {
	Pattern *regexp.Regexp
	Replace string
}

// Grammar describes one raw source format. A Grammar is built once and
// never mutated, so a Parser built on it is safe for concurrent use.
//
// Patterns document their capture groups; nil patterns disable the feature.
type Grammar struct {
	Code domain.SourceCode

	HTML     bool
	Rewrites []Rewrite

	// Classes lists the headword classes tried, in priority order.
	Classes        []HeadwordClass
	HeadwordMarker *regexp.Regexp // named group "word"
	StartMarkers   []*regexp.Regexp
	EndMarkers     []*regexp.Regexp
	// TitleCaseCaps title-cases upper-case headwords ("AARDVARK" -> "Aardvark").
	TitleCaseCaps bool

	SenseNumber      *regexp.Regexp // 1: number, 2: text
	DefinitionMarker *regexp.Regexp // 1: text
	LetteredSense    *regexp.Regexp // 1: text
	POSLine          *regexp.Regexp // 1: part of speech
	POSInline        *regexp.Regexp // 1: part of speech, anchored at sense start
	POS              POSTable

	EtymologyMarker    *regexp.Regexp // 1: text
	SynonymMarker      *regexp.Regexp // 1: text
	ExampleMarker      *regexp.Regexp // 1: example
	BilingualSeparator string

	Pronunciation *regexp.Regexp // 1: transcription

	RegisterSection *regexp.Regexp   // 1: label, free text accepted
	DomainSection   *regexp.Regexp   // 1: label, free text accepted
	Glyph           *regexp.Regexp   // 1: glyph, must map through Labels
	InlineLabels    []*regexp.Regexp // 1: candidate, must map through Labels
	Labels          LabelTable
	KeywordScan     bool
}

var (
	baseSenseNumberRe   = regexp.MustCompile(`^(\d{1,2})\.(?:\s+(.*))?$`)
	baseDefinitionRe    = regexp.MustCompile(`^(?:Defn|Definition):\s*(.*)$`)
	baseLetteredSenseRe = regexp.MustCompile(`^(?:\([a-h]\)|[a-h]\.)\s+(.+)$`)
)

// BaseGrammar returns the defaults shared by every source: numeric,
// "Defn:" and lettered sense markers, the shared POS and label tables.
func BaseGrammar(code domain.SourceCode) Grammar {
	return Grammar{
		Code:             code,
		SenseNumber:      baseSenseNumberRe,
		DefinitionMarker: baseDefinitionRe,
		LetteredSense:    baseLetteredSenseRe,
		POS:              SharedPOS,
		Labels:           SharedLabels,
		KeywordScan:      true,
	}
}

func (g *Grammar) has(c HeadwordClass) bool {
	return slices.Contains(g.Classes, c)
}

// Validate checks that the grammar is complete enough to drive a Parser.
func (g *Grammar) Validate() error {
	var errs []domain.FieldError
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	if !g.Code.IsValid() {
		add("code", fmt.Sprintf("unknown source %q", g.Code))
	}
	if len(g.Classes) == 0 {
		add("classes", "at least one headword class required")
	}
	if g.has(ClassMarker) {
		if g.HeadwordMarker == nil {
			add("headword_marker", "required by marker class")
		} else if g.HeadwordMarker.SubexpIndex("word") < 0 {
			add("headword_marker", `missing named group "word"`)
		}
	}
	if g.SenseNumber == nil || g.SenseNumber.NumSubexp() < 2 {
		add("sense_number", "pattern with number and text groups required")
	}

	groups := map[string]*regexp.Regexp{
		"definition_marker": g.DefinitionMarker,
		"lettered_sense":    g.LetteredSense,
		"pos_line":          g.POSLine,
		"pos_inline":        g.POSInline,
		"etymology_marker":  g.EtymologyMarker,
		"synonym_marker":    g.SynonymMarker,
		"example_marker":    g.ExampleMarker,
		"pronunciation":     g.Pronunciation,
		"register_section":  g.RegisterSection,
		"domain_section":    g.DomainSection,
		"glyph":             g.Glyph,
	}
	for _, field := range slices.Sorted(maps.Keys(groups)) {
		if re := groups[field]; re != nil && re.NumSubexp() < 1 {
			add(field, "pattern needs a capture group")
		}
	}
	for i, re := range g.InlineLabels {
		if re == nil || re.NumSubexp() < 1 {
			add(fmt.Sprintf("inline_labels[%d]", i), "pattern needs a capture group")
		}
	}
	if g.POS == nil {
		add("pos", "table required")
	}
	if g.Labels == nil {
		add("labels", "table required")
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
