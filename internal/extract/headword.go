package extract

import (
	"regexp"
	"strings"
)

var (
	syllableMarks  = strings.NewReplacer("·", "", "\"", "", "`", "", "*", "", "″", "", "′", "", "ˈ", "", "ˌ", "")
	parenAsideRe   = regexp.MustCompile(`\s*\([^()]*\)`)
	bareHeadRe     = regexp.MustCompile(`^[A-Za-z][A-Za-z'’\- ]*(?:(?:\s*[;,]\s*|\s+(?i:or)\s+)[A-Za-z][A-Za-z'’\- ]*)*$`)
	variantSplitRe = regexp.MustCompile(`\s*[;,]\s*|\s+(?i:or)\s+`)
	alphaTokenRe   = regexp.MustCompile(`[A-Za-z][A-Za-z'’\-]*`)
)

// Headword is the resolved canonical headword of a block.
type Headword struct {
	Word     string
	Variants []string
	// POS is the raw part-of-speech token captured with a "Word, pos." line.
	POS string
}

// ResolveHeadword extracts the headword from a block's leading lines. It
// tries an explicit marker, then a "Word, pos." capture on the first few
// lines, then a bare alphabetic headword line, then the first alphabetic
// token.
func ResolveHeadword(g *Grammar, lines []string) (Headword, bool) {
	var scan []string
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			scan = append(scan, t)
			if len(scan) == headwordScanLines {
				break
			}
		}
	}
	if len(scan) == 0 {
		return Headword{}, false
	}
	first := scan[0]

	var h Headword
	if g.HeadwordMarker != nil {
		if m := g.HeadwordMarker.FindStringSubmatch(first); m != nil {
			h.Word = m[g.HeadwordMarker.SubexpIndex("word")]
		}
	}
	if h.Word == "" {
		for _, l := range scan {
			if m := wordPOSRe.FindStringSubmatch(l); m != nil {
				h.Word, h.POS = m[1], m[2]
				break
			}
		}
	}

	bare := strings.TrimRight(parenAsideRe.ReplaceAllString(first, ""), ".,;: ")
	if bareHeadRe.MatchString(bare) {
		parts := variantSplitRe.Split(bare, -1)
		if h.Word == "" {
			h.Word = parts[0]
		}
		for _, p := range parts[1:] {
			if v := normalizeHeadword(g, p); v != "" {
				h.Variants = append(h.Variants, v)
			}
		}
	}
	if h.Word == "" {
		h.Word = alphaTokenRe.FindString(first)
	}

	h.Word = normalizeHeadword(g, h.Word)
	h.Variants = DedupFold(removeFold(h.Variants, h.Word))
	return h, h.Word != ""
}

// normalizeHeadword strips syllabification marks and parenthetical asides,
// trims punctuation and normalizes case.
func normalizeHeadword(g *Grammar, s string) string {
	s = syllableMarks.Replace(s)
	s = parenAsideRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, ".,;:!?-–— ")
	s = truncateRunes(s, MaxHeadwordChars)
	if s == "" {
		return ""
	}

	multiWord := strings.Contains(s, " ")
	switch {
	case isAllCaps(s):
		// Acronyms stay upper-case unless the source writes every headword in capitals.
		if g.TitleCaseCaps {
			return titleCase(s)
		}
		return s
	case multiWord:
		return titleCase(s)
	}
	return s
}

func removeFold(items []string, word string) []string {
	out := items[:0:0]
	for _, it := range items {
		if !strings.EqualFold(it, word) {
			out = append(out, it)
		}
	}
	return out
}
