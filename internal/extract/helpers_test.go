package extract

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// testGrammar is a small Webster-like grammar with example, glyph and
// explicit label markers enabled so every extractor can be exercised.
func testGrammar() Grammar {
	g := BaseGrammar(domain.SourceGutenbergWebster)
	g.Classes = []HeadwordClass{ClassWordPOS, ClassBracketVariant, ClassAllCaps, ClassLiteral}
	g.TitleCaseCaps = true
	g.StartMarkers = []*regexp.Regexp{regexp.MustCompile(`^\*\*\* START`)}
	g.EndMarkers = []*regexp.Regexp{regexp.MustCompile(`^\*\*\* END`)}
	g.EtymologyMarker = regexp.MustCompile(`^Etym:\s*(.*)$`)
	g.SynonymMarker = regexp.MustCompile(`^Syn\.\s*(?:--)?\s*(.*)$`)
	g.ExampleMarker = regexp.MustCompile(`^[»•⇒]\s*(.+)$`)
	g.RegisterSection = regexp.MustCompile(`^【Label】[：:]\s*(.+)$`)
	g.BilingualSeparator = "⬄"
	g.Pronunciation = regexp.MustCompile(`/([^/\s][^/]*)/`)
	g.InlineLabels = []*regexp.Regexp{regexp.MustCompile(`\(([^()]{2,30})\)`)}
	g.Glyph = regexp.MustCompile(`〔([^〕]{1,6})〕`)
	g.POSInline = regexp.MustCompile(`^((?:n|vt|vi|adj|adv)\.)\s*`)
	g.Labels = SharedLabels.With(NewLabelTable(LabelRegister, map[string][]string{
		"informal": {"口"},
	}))
	return g
}

func lines(s string) []string {
	return strings.Split(s, "\n")
}
