package extract

import (
	"regexp"
	"strings"
)

const maxPronunciationChars = 100

var alsoSpelledRe = regexp.MustCompile(`(?i)\balso\s+(?:spelled|spelt|written)\s+` + targetPat)

// ExtractPronunciation returns the first transcription matched by the
// grammar's pronunciation pattern in lines.
func ExtractPronunciation(g *Grammar, lines []string) Result[string] {
	return guard("pronunciation", func() Result[string] {
		if g.Pronunciation == nil {
			return none[string]()
		}
		for _, l := range lines {
			if m := g.Pronunciation.FindStringSubmatch(l); m != nil {
				if p := strings.TrimSpace(m[1]); p != "" {
					return found(truncateRunes(p, maxPronunciationChars))
				}
			}
		}
		return none[string]()
	})
}

// ExtractVariants merges headword variants ("COLOR; COLOUR") with
// "also spelled X" / "also written X" forms in text.
func ExtractVariants(head Headword, text string) Result[[]string] {
	return guard("variants", func() Result[[]string] {
		out := append([]string(nil), head.Variants...)
		for _, m := range alsoSpelledRe.FindAllStringSubmatch(text, -1) {
			if v := cleanTarget(m[1]); v != "" {
				out = append(out, v)
			}
		}
		out = DedupFold(removeFold(out, head.Word))
		if len(out) == 0 {
			return none[[]string]()
		}
		return found(out)
	})
}
