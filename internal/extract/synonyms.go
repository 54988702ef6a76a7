package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	synStopRe   = regexp.MustCompile(`(?i)\bsee(?:\s+also)?\b|\bDefn:|\bEtym:`)
	synLeadRe   = regexp.MustCompile(`^\s*(?:--|—|–|:)\s*`)
	synSplitRe  = regexp.MustCompile(`\s*[,;]\s*|\s+and\s+`)
	citationRe  = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]`)
	sameAsRe    = regexp.MustCompile(`(?i)\b(?:same as|also called)\s+([\p{L}][\p{L}'’\-]*(?:\s+[\p{L}][\p{L}'’\-]*){0,2}?)(?:[.;,:)]|\s*$)`)
	synStopWord = map[string]bool{
		"etc": true, "the": true, "a": true, "an": true, "or": true,
		"and": true, "see": true, "also": true, "syn": true, "cf": true,
	}
)

// ExtractSynonyms reads a synonym section up to its stop boundary (an
// all-caps headword line, "see"/"see also", or a "Defn:"/"Etym:" marker)
// and adds single-target "same as X" / "also called X" forms from body.
// Tokens are title-cased.
func ExtractSynonyms(section []string, body string) Result[[]string] {
	return guard("synonyms", func() Result[[]string] {
		var out []string

		text := synonymSection(section)
		text = citationRe.ReplaceAllString(text, " ")
		for _, tok := range synSplitRe.Split(text, -1) {
			if s, ok := acceptSynonym(tok); ok {
				out = append(out, s)
			}
		}
		for _, m := range sameAsRe.FindAllStringSubmatch(body, -1) {
			if s, ok := acceptSynonym(m[1]); ok {
				out = append(out, s)
			}
		}

		out = DedupFold(out)
		if len(out) == 0 {
			return none[[]string]()
		}
		return found(out)
	})
}

// synonymSection joins section lines up to the first stop boundary.
func synonymSection(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			break
		}
		if i > 0 && utf8.RuneCountInString(l) >= 2 && allCapsRe.MatchString(l) {
			break
		}
		if i == 0 {
			l = synLeadRe.ReplaceAllString(l, "")
		}
		if loc := synStopRe.FindStringIndex(l); loc != nil {
			b.WriteString(l[:loc[0]])
			break
		}
		b.WriteString(l)
		b.WriteString(", ")
	}
	return b.String()
}

func acceptSynonym(tok string) (string, bool) {
	tok = strings.Trim(tok, " \t.:;,-–—\"'‘’“”")
	tok = synLeadRe.ReplaceAllString(tok, "")
	words := strings.Fields(tok)
	if len(words) == 0 || len(words) > MaxSynonymWords {
		return "", false
	}
	tok = strings.Join(words, " ")
	if utf8.RuneCountInString(tok) < 2 || synStopWord[strings.ToLower(tok)] || !hasAlnum(tok) {
		return "", false
	}
	return titleCase(tok), true
}
