package extract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// POSTable maps a part-of-speech token to the domain enum. Keys are in
// posKey form.
type POSTable map[string]domain.PartOfSpeech

// SharedPOS covers the abbreviations and names common to all sources.
var SharedPOS = POSTable{
	"n":            domain.PartOfSpeechNoun,
	"noun":         domain.PartOfSpeechNoun,
	"pl":           domain.PartOfSpeechNoun,
	"npl":          domain.PartOfSpeechNoun,
	"v":            domain.PartOfSpeechVerb,
	"vb":           domain.PartOfSpeechVerb,
	"verb":         domain.PartOfSpeechVerb,
	"phrasalverb":  domain.PartOfSpeechVerb,
	"vt":           domain.PartOfSpeechVerb,
	"vi":           domain.PartOfSpeechVerb,
	"pp":           domain.PartOfSpeechVerb,
	"ppr":          domain.PartOfSpeechVerb,
	"imp":          domain.PartOfSpeechVerb,
	"a":            domain.PartOfSpeechAdjective,
	"adj":          domain.PartOfSpeechAdjective,
	"adjective":    domain.PartOfSpeechAdjective,
	"pa":           domain.PartOfSpeechAdjective,
	"superl":       domain.PartOfSpeechAdjective,
	"compar":       domain.PartOfSpeechAdjective,
	"adv":          domain.PartOfSpeechAdverb,
	"adverb":       domain.PartOfSpeechAdverb,
	"prep":         domain.PartOfSpeechPreposition,
	"preposition":  domain.PartOfSpeechPreposition,
	"conj":         domain.PartOfSpeechConjunction,
	"conjunction":  domain.PartOfSpeechConjunction,
	"pron":         domain.PartOfSpeechPronoun,
	"pronoun":      domain.PartOfSpeechPronoun,
	"int":          domain.PartOfSpeechInterjection,
	"interj":       domain.PartOfSpeechInterjection,
	"interjection": domain.PartOfSpeechInterjection,
	"excl":         domain.PartOfSpeechInterjection,
	"exclamation":  domain.PartOfSpeechInterjection,
	"art":          domain.PartOfSpeechArticle,
	"article":      domain.PartOfSpeechArticle,
	"det":          domain.PartOfSpeechArticle,
	"determiner":   domain.PartOfSpeechArticle,
	"abbr":         domain.PartOfSpeechAbbreviation,
	"abbrev":       domain.PartOfSpeechAbbreviation,
	"abbreviation": domain.PartOfSpeechAbbreviation,
	"prefix":       domain.PartOfSpeechPrefix,
	"suffix":       domain.PartOfSpeechSuffix,
	"phr":          domain.PartOfSpeechPhrase,
	"phrase":       domain.PartOfSpeechPhrase,
	"idiom":        domain.PartOfSpeechIdiom,
}

// posKey lowercases and drops spaces and dots: "v. t." -> "vt".
func posKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Lookup maps a token, case-insensitively.
func (t POSTable) Lookup(s string) (domain.PartOfSpeech, bool) {
	p, ok := t[posKey(s)]
	return p, ok
}

// With returns a copy of t extended (and overridden) by other.
func (t POSTable) With(other POSTable) POSTable {
	out := maps.Clone(t)
	if out == nil {
		out = POSTable{}
	}
	maps.Copy(out, other)
	return out
}

// ExtractPOS maps an explicit part-of-speech token. An explicit token that
// is not in the table maps to OTHER with a warning.
func ExtractPOS(t POSTable, token string) Result[domain.PartOfSpeech] {
	return guard("part_of_speech", func() Result[domain.PartOfSpeech] {
		if strings.TrimSpace(token) == "" {
			return none[domain.PartOfSpeech]()
		}
		if p, ok := t.Lookup(token); ok {
			return found(p)
		}
		r := found(domain.PartOfSpeechOther)
		r.Warning = &domain.ExtractionWarning{
			Field:  "part_of_speech",
			Reason: fmt.Sprintf("unmapped part of speech %q", token),
		}
		return r
	})
}

// inlinePOS matches the grammar's POS pattern at the start of text and
// returns the part of speech and the text with the token removed.
func inlinePOS(g *Grammar, text string) (domain.PartOfSpeech, string, bool) {
	if g.POSInline == nil {
		return "", text, false
	}
	m := g.POSInline.FindStringSubmatchIndex(text)
	if m == nil || m[0] != 0 {
		return "", text, false
	}
	p, ok := g.POS.Lookup(text[m[2]:m[3]])
	if !ok {
		return "", text, false
	}
	return p, strings.TrimSpace(text[m[1]:]), true
}
