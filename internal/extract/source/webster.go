package source

import (
	"regexp"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// websterGrammar reads the Project Gutenberg plain-text transcription of
// Webster's 1913 dictionary:
//
//	AARDVARK
//	Aard"vark`, n. Etym: [D., earth-pig.]
//
//	Defn: (Zoöl.) An edentate mammal ...
//	Syn. -- ant bear, earth pig.
func websterGrammar() extract.Grammar {
	g := extract.BaseGrammar(domain.SourceGutenbergWebster)
	g.Rewrites = []extract.Rewrite{
		// Markers run into the previous line in many entries.
		{Pattern: regexp.MustCompile(`([^\s])[ \t]+((?:Defn|Definition|Etym):|Syn\.\s)`), Replace: "$1\n$2"},
	}
	g.Classes = []extract.HeadwordClass{
		extract.ClassWordPOS,
		extract.ClassBracketVariant,
		extract.ClassAllCaps,
		extract.ClassLiteral,
	}
	g.TitleCaseCaps = true
	g.StartMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\*{3}\s*START OF (?:THE|THIS) PROJECT GUTENBERG EBOOK`),
	}
	g.EndMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\*{3}\s*END OF (?:THE|THIS) PROJECT GUTENBERG EBOOK`),
		regexp.MustCompile(`^End of (?:the )?Project Gutenberg`),
	}
	g.ExampleMarker = bulletExampleRe
	g.EtymologyMarker = regexp.MustCompile(`^Etym:\s*(.*)$`)
	g.SynonymMarker = regexp.MustCompile(`^Syn\.\s*(?:--|—|–)?\s*(.*)$`)
	g.InlineLabels = []*regexp.Regexp{parenLabelRe}
	g.POS = extract.SharedPOS.With(extract.POSTable{
		"ppr":  domain.PartOfSpeechVerb,
		"vbn":  domain.PartOfSpeechVerb,
		"adva": domain.PartOfSpeechAdverb,
	})
	return g
}
