package domain

import "strings"

// SourceCode identifies a raw dictionary source.
type SourceCode string

const (
	SourceCentury21        SourceCode = "CENTURY21"
	SourceCollins          SourceCode = "COLLINS"
	SourceOxford           SourceCode = "OXFORD"
	SourceEngChn           SourceCode = "ENG_CHN"
	SourceGutenbergWebster SourceCode = "GUT_WEBSTER"
)

func (s SourceCode) String() string { return string(s) }

func (s SourceCode) IsValid() bool {
	switch s {
	case SourceCentury21, SourceCollins, SourceOxford, SourceEngChn, SourceGutenbergWebster:
		return true
	}
	return false
}

// SourceCodes returns every known source in canonical import order.
func SourceCodes() []SourceCode {
	return []SourceCode{
		SourceGutenbergWebster,
		SourceCentury21,
		SourceCollins,
		SourceOxford,
		SourceEngChn,
	}
}

// ParseSourceCode accepts any letter case ("gut_webster", "Collins").
func ParseSourceCode(s string) (SourceCode, bool) {
	code := SourceCode(strings.ToUpper(strings.TrimSpace(s)))
	return code, code.IsValid()
}

// PartOfSpeech represents the grammatical category of a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechArticle      PartOfSpeech = "ARTICLE"
	PartOfSpeechAbbreviation PartOfSpeech = "ABBREVIATION"
	PartOfSpeechPrefix       PartOfSpeech = "PREFIX"
	PartOfSpeechSuffix       PartOfSpeech = "SUFFIX"
	PartOfSpeechPhrase       PartOfSpeech = "PHRASE"
	PartOfSpeechIdiom        PartOfSpeech = "IDIOM"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechArticle, PartOfSpeechAbbreviation,
		PartOfSpeechPrefix, PartOfSpeechSuffix, PartOfSpeechPhrase, PartOfSpeechIdiom,
		PartOfSpeechOther:
		return true
	}
	return false
}

// ReferenceType classifies a cross-reference between headwords.
type ReferenceType string

const (
	ReferenceSee             ReferenceType = "SEE"
	ReferenceVariant         ReferenceType = "VARIANT"
	ReferenceAlso            ReferenceType = "ALSO"
	ReferenceSynonym         ReferenceType = "SYNONYM"
	ReferenceAbbreviationFor ReferenceType = "ABBREVIATION_FOR"
)

func (r ReferenceType) String() string { return string(r) }

func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceSee, ReferenceVariant, ReferenceAlso, ReferenceSynonym, ReferenceAbbreviationFor:
		return true
	}
	return false
}
