package source

import (
	"regexp"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// engChnGrammar reads the English-Chinese bilingual glossary:
//
//	abandon [əˈbændən] vt. 〔口〕放弃
//	He abandoned the car. ⬄ 他弃车而去。
func engChnGrammar() extract.Grammar {
	g := extract.BaseGrammar(domain.SourceEngChn)
	g.Classes = []extract.HeadwordClass{extract.ClassMarker}
	g.HeadwordMarker = regexp.MustCompile(`^(?P<word>[A-Za-z][A-Za-z'’\- ]*?)\s*\[[^\]]+\]`)
	g.POSInline = posInlineAbbrevRe
	g.Glyph = regexp.MustCompile(`〔([^〕]{1,6})〕`)
	g.Labels = extract.SharedLabels.With(chineseGlyphs)
	g.ExampleMarker = bulletExampleRe
	g.BilingualSeparator = "⬄"
	g.Pronunciation = regexp.MustCompile(`\[([^\]]+)\]`)
	return g
}
