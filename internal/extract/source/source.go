// Package source holds the grammars of the supported dictionary sources
// and a registry of ready-to-use parsers built from them.
package source

import (
	"fmt"
	"regexp"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

var parsers = map[domain.SourceCode]*extract.Parser{
	domain.SourceGutenbergWebster: extract.MustParser(websterGrammar()),
	domain.SourceCentury21:        extract.MustParser(century21Grammar()),
	domain.SourceCollins:          extract.MustParser(collinsGrammar()),
	domain.SourceOxford:           extract.MustParser(oxfordGrammar()),
	domain.SourceEngChn:           extract.MustParser(engChnGrammar()),
}

// Parser returns the parser for code.
func Parser(code domain.SourceCode) (*extract.Parser, error) {
	p, ok := parsers[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSource, code)
	}
	return p, nil
}

// Grammar returns the grammar for code. The grammar is shared and must not
// be modified.
func Grammar(code domain.SourceCode) (*extract.Grammar, error) {
	p, err := Parser(code)
	if err != nil {
		return nil, err
	}
	return p.Grammar(), nil
}

// Parse routes a fragment to the parser of its source.
func Parse(f domain.RawFragment) ([]domain.ParsedDefinition, error) {
	p, err := Parser(f.Source)
	if err != nil {
		return nil, err
	}
	return p.Parse(f), nil
}

// Bullet and arrow glyphs that open an example line in every source.
const exampleBullets = "»•⇒"

// Shared POS patterns of the abbreviation-style sources.
const posAbbrev = `(?:n|v|vt|vi|adj|adv|prep|conj|pron|int|abbr|art|num|pl)\.`

var (
	posInlineAbbrevRe = regexp.MustCompile(`^(` + posAbbrev + `)\s*`)
	posLineAbbrevRe   = regexp.MustCompile(`^(` + posAbbrev + `)$`)
	bulletExampleRe   = regexp.MustCompile(`^[` + exampleBullets + `]\s*(.+)$`)
	slashPronRe       = regexp.MustCompile(`/([^/\s][^/]*)/`)
	parenLabelRe      = regexp.MustCompile(`\(([^()]{2,30})\)`)
)

// chineseGlyphs maps the one-character usage glyphs of the Chinese
// bilingual sources, written as 〔口〕 or 〈医〉, to English tags.
var chineseGlyphs = extract.NewLabelTable(extract.LabelRegister, map[string][]string{
	"informal":  {"口"},
	"slang":     {"俚"},
	"archaic":   {"古"},
	"obsolete":  {"废"},
	"dialect":   {"方"},
	"formal":    {"正式"},
	"literary":  {"书"},
	"offensive": {"贬"},
	"humorous":  {"谑"},
	"british":   {"英"},
	"us":        {"美"},
}).With(extract.NewLabelTable(extract.LabelDomain, map[string][]string{
	"medicine":    {"医"},
	"law":         {"律"},
	"chemistry":   {"化"},
	"mathematics": {"数"},
	"physics":     {"物"},
	"zoology":     {"动"},
	"botany":      {"植"},
	"computing":   {"计"},
	"economics":   {"经"},
	"military":    {"军"},
	"music":       {"音"},
	"biology":     {"生"},
	"geology":     {"地"},
	"astronomy":   {"天"},
	"religion":    {"宗"},
	"nautical":    {"海"},
	"commerce":    {"商"},
	"sport":       {"体"},
	"linguistics": {"语"},
	"anatomy":     {"解"},
}))
