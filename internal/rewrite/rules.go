package rewrite

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

var (
	wordRe          = regexp.MustCompile(`\p{L}+`)
	articleRe       = regexp.MustCompile(`\b([Aa])(\s+)([\p{L}]+)`)
	spaceBeforeRe   = regexp.MustCompile(`\s+([,.;:!?])`)
	lonelyIRe       = regexp.MustCompile(`(^|\s)i(\s|'|’|$)`)
	sentenceStartRe = regexp.MustCompile(`(\p{L}{3,}[.!?]\s+)(\p{Ll})`)
)

// Vowel-initial words read with a consonant sound keep "a".
var consonantSound = []string{"uni", "use", "usu", "uti", "ure", "eu", "one", "once", "ewe"}

var legitDoubles = map[string]bool{"that": true, "had": true}

// RuleCorrector is a deterministic English corrector built from a fixed
// list of substitutions. Locales other than English pass through.
type RuleCorrector struct {
	rules []func(string) string
}

// NewRuleCorrector returns the default rule set.
func NewRuleCorrector() *RuleCorrector {
	return &RuleCorrector{rules: []func(string) string{
		dropDoubledWords,
		fixArticles,
		func(s string) string { return spaceBeforeRe.ReplaceAllString(s, "$1") },
		func(s string) string { return lonelyIRe.ReplaceAllString(s, "${1}I${2}") },
		capitalizeSentences,
	}}
}

// AutoCorrect applies each rule in order, checking ctx between rules.
func (c *RuleCorrector) AutoCorrect(ctx context.Context, text, locale string) (string, error) {
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return text, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		if base, _ := tag.Base(); base.String() != "en" {
			return text, nil
		}
	}

	out := text
	for _, rule := range c.rules {
		if err := ctx.Err(); err != nil {
			return text, err
		}
		out = rule(out)
	}
	return out, nil
}

// dropDoubledWords removes an immediately repeated word ("the the").
func dropDoubledWords(s string) string {
	locs := wordRe.FindAllStringIndex(s, -1)
	if len(locs) < 2 {
		return s
	}
	var b strings.Builder
	last := 0
	for i := 1; i < len(locs); i++ {
		prev, cur := locs[i-1], locs[i]
		gap := s[prev[1]:cur[0]]
		if gap == "" || strings.TrimSpace(gap) != "" {
			continue
		}
		word := s[cur[0]:cur[1]]
		if !strings.EqualFold(s[prev[0]:prev[1]], word) || legitDoubles[strings.ToLower(word)] {
			continue
		}
		b.WriteString(s[last:prev[1]])
		last = cur[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func fixArticles(s string) string {
	return articleRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := articleRe.FindStringSubmatch(m)
		art, space, word := sub[1], sub[2], sub[3]
		if !startsWithVowel(word) {
			return m
		}
		lower := strings.ToLower(word)
		for _, p := range consonantSound {
			if strings.HasPrefix(lower, p) {
				return m
			}
		}
		return art + "n" + space + word
	})
}

func startsWithVowel(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return strings.ContainsRune("aeiouAEIOU", r)
}

func capitalizeSentences(s string) string {
	s = sentenceStartRe.ReplaceAllStringFunc(s, func(m string) string {
		r, size := utf8.DecodeLastRuneInString(m)
		return m[:len(m)-size] + string(unicode.ToUpper(r))
	})
	r, size := utf8.DecodeRuneInString(s)
	if unicode.IsLower(r) {
		return string(unicode.ToUpper(r)) + s[size:]
	}
	return s
}
