package source

import (
	"regexp"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// collinsGrammar reads the bracket-marked Collins COBUILD export, one
// field per line:
//
//	【Headword】leg it
//	【POS】phrasal verb
//	【Label】：informal
//	【Definition】：If you leg it, you run very quickly.
//	【Examples】»He legged it down the road.
func collinsGrammar() extract.Grammar {
	g := extract.BaseGrammar(domain.SourceCollins)
	g.Classes = []extract.HeadwordClass{extract.ClassMarker}
	g.HeadwordMarker = regexp.MustCompile(`^【Headword】\s*(?P<word>.+)$`)
	g.POSLine = regexp.MustCompile(`^【POS】\s*(.+)$`)
	g.DefinitionMarker = regexp.MustCompile(`^(?:【Definition】[：:]|Defn:|Definition:)\s*(.*)$`)
	g.RegisterSection = regexp.MustCompile(`^【Label】[：:]\s*(.+)$`)
	g.DomainSection = regexp.MustCompile(`^【Domain】[：:]\s*(.+)$`)
	g.ExampleMarker = regexp.MustCompile(`^(?:【Examples】[：:]?\s*[` + exampleBullets + `]?|[` + exampleBullets + `])\s*(.+)$`)
	g.SynonymMarker = regexp.MustCompile(`^【Synonyms】[：:]?\s*(.*)$`)
	g.InlineLabels = []*regexp.Regexp{
		regexp.MustCompile(`\[([A-Za-z ,\-]{2,30})\]`),
	}
	g.POS = extract.SharedPOS.With(extract.POSTable{
		"n-count":    domain.PartOfSpeechNoun,
		"n-uncount":  domain.PartOfSpeechNoun,
		"n-var":      domain.PartOfSpeechNoun,
		"n-sing":     domain.PartOfSpeechNoun,
		"n-plural":   domain.PartOfSpeechNoun,
		"n-proper":   domain.PartOfSpeechNoun,
		"n-title":    domain.PartOfSpeechNoun,
		"v-t":        domain.PartOfSpeechVerb,
		"v-i":        domain.PartOfSpeechVerb,
		"v-link":     domain.PartOfSpeechVerb,
		"v-erg":      domain.PartOfSpeechVerb,
		"v-recip":    domain.PartOfSpeechVerb,
		"phr-v":      domain.PartOfSpeechVerb,
		"adj-graded": domain.PartOfSpeechAdjective,
		"adv-graded": domain.PartOfSpeechAdverb,
		"convention": domain.PartOfSpeechPhrase,
		"quant":      domain.PartOfSpeechAdjective,
	})
	return g
}
