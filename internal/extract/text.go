package extract

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	htmlBreakRe = regexp.MustCompile(`(?i)<\s*(?:br\s*/?|/p|/div|/li|/tr|/h\d)\s*>`)
	newlineRe   = regexp.MustCompile(`\r\n?`)
)

// Lines turns raw source text into normalized, capped lines: newlines
// unified, NFC applied, grammar rewrites run, and for HTML sources tags
// stripped and entities decoded.
func (g *Grammar) Lines(raw string) []string {
	text := truncateRunes(raw, MaxFragmentChars)
	text = newlineRe.ReplaceAllString(text, "\n")
	text = norm.NFC.String(text)

	for _, rw := range g.Rewrites {
		text = rw.Pattern.ReplaceAllString(text, rw.Replace)
	}
	if g.HTML {
		text = htmlBreakRe.ReplaceAllString(text, "\n")
		text = htmlTagRe.ReplaceAllString(text, "")
		text = html.UnescapeString(text)
	}

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = truncateRunes(strings.TrimRightFunc(l, unicode.IsSpace), MaxLineChars)
	}
	return lines
}

// truncateRunes cuts s to at most n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters > 0
}

// titleCase title-cases every word. A Caser keeps state, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// joinTrimmed joins the non-blank trimmed lines with sep.
func joinTrimmed(lines []string, sep string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, sep)
}
