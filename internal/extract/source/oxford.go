package source

import (
	"regexp"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// oxfordGrammar reads the Oxford Dictionary of English text export:
//
//	serendipity /ˌsɛr(ə)nˈdɪpɪti/
//	noun
//	1 the occurrence of events by chance in a happy way. ◘ a stroke of serendipity.
//	ORIGIN 1754: coined by Horace Walpole.
//
// Labels appear both in parentheses and in square brackets; both are scanned.
func oxfordGrammar() extract.Grammar {
	g := extract.BaseGrammar(domain.SourceOxford)
	g.Rewrites = []extract.Rewrite{
		{Pattern: regexp.MustCompile(`[ \t]*◘[ \t]*`), Replace: "\n◘ "},
		// Grammatical notes are not labels.
		{Pattern: regexp.MustCompile(`\[(?:mass noun|count noun|with object|no object|as modifier|in singular|treated as singular or plural)\][ \t]*`), Replace: ""},
	}
	g.Classes = []extract.HeadwordClass{extract.ClassMarker}
	g.HeadwordMarker = regexp.MustCompile(`^(?P<word>[A-Za-z][A-Za-z'’\- ]*?)\s+/[^/\n]+/`)
	g.SenseNumber = regexp.MustCompile(`^(\d{1,2})[.)]?(?:\s+(.*))?$`)
	g.POSLine = regexp.MustCompile(`^(noun|verb|adjective|adverb|pronoun|preposition|conjunction|exclamation|interjection|abbreviation|prefix|suffix|determiner|phrasal verb|plural noun)$`)
	g.ExampleMarker = regexp.MustCompile(`^[◘` + exampleBullets + `]\s*(.+)$`)
	g.EtymologyMarker = regexp.MustCompile(`^ORIGIN\s+(.*)$`)
	g.SynonymMarker = regexp.MustCompile(`^SYNONYMS\s*(.*)$`)
	g.Pronunciation = slashPronRe
	g.InlineLabels = []*regexp.Regexp{
		parenLabelRe,
		regexp.MustCompile(`\[([^\[\]]{2,30})\]`),
	}
	g.POS = extract.SharedPOS.With(extract.POSTable{
		"pluralnoun": domain.PartOfSpeechNoun,
	})
	return g
}
