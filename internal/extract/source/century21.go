package source

import (
	"regexp"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// century21Grammar reads the HTML glosses of the 21st Century
// English-Chinese dictionary. Spans carry the structure:
//
//	<span class="hw">abandon</span> <span class="pr">/əˈbændən/</span>
//	<span class="ps">vt.</span> <b>1.</b> 〈医〉放弃 <span class="eg">...</span>
//
// Rewrites turn the spans into lines before tags are stripped.
func century21Grammar() extract.Grammar {
	g := extract.BaseGrammar(domain.SourceCentury21)
	g.HTML = true
	g.Rewrites = []extract.Rewrite{
		{Pattern: regexp.MustCompile(`(?i)<span\s+class="hw"\s*>\s*(.*?)\s*</span>`), Replace: "\n⟦$1⟧\n"},
		{Pattern: regexp.MustCompile(`(?i)<span\s+class="ps"\s*>\s*(.*?)\s*</span>`), Replace: "\n$1\n"},
		{Pattern: regexp.MustCompile(`(?i)<span\s+class="eg"\s*>\s*(.*?)\s*</span>`), Replace: "\n» $1\n"},
		{Pattern: regexp.MustCompile(`(?i)<b>\s*(\d{1,2})\.\s*</b>`), Replace: "\n$1. "},
	}
	g.Classes = []extract.HeadwordClass{extract.ClassMarker}
	g.HeadwordMarker = regexp.MustCompile(`^⟦(?P<word>[^⟧]+)⟧`)
	g.POSLine = posLineAbbrevRe
	g.POSInline = posInlineAbbrevRe
	g.ExampleMarker = bulletExampleRe
	g.Glyph = regexp.MustCompile(`〈([^〉]{1,6})〉`)
	g.Labels = extract.SharedLabels.With(chineseGlyphs)
	g.Pronunciation = slashPronRe
	return g
}
