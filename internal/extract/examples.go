package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	quotedRe      = regexp.MustCompile(`"([^"\n]{6,300})"|“([^”\n]{6,300})”`)
	egClauseRe    = regexp.MustCompile(`(?i)(?:\be\.g\.|\bsuch as)\s*,?\s*([^.;:()]+)`)
	defLikeLeadRe = regexp.MustCompile(`^(?:If|A|An|The|You|To|When)\b`)
)

const exampleTrim = " \t\"“”‘’«»◘•⇒»:-–—"

// ExtractExamples collects usage examples from marker lines (example
// markers and bilingual separator lines) and from quoted spans and
// "e.g." / "such as" clauses of the definition body.
func ExtractExamples(g *Grammar, meta []string, body string) Result[[]string] {
	return guard("examples", func() Result[[]string] {
		var cands []string
		for _, line := range meta {
			text, ok := exampleFromLine(g, line)
			if ok {
				cands = append(cands, text)
			}
		}
		for _, m := range quotedRe.FindAllStringSubmatch(body, -1) {
			cands = append(cands, m[1]+m[2])
		}
		for _, m := range egClauseRe.FindAllStringSubmatch(body, -1) {
			cands = append(cands, m[1])
		}

		var out []string
		for _, c := range cands {
			if ex, ok := acceptExample(c); ok {
				out = append(out, ex)
			}
		}
		out = DedupFold(out)
		if len(out) == 0 {
			return none[[]string]()
		}
		return found(out)
	})
}

func exampleFromLine(g *Grammar, line string) (string, bool) {
	text, ok := "", false
	if m := submatch(g.ExampleMarker, line); m != nil {
		text, ok = m[1], true
	}
	if sep := g.BilingualSeparator; sep != "" && strings.Contains(line, sep) {
		if !ok {
			text = line
		}
		text, _, _ = strings.Cut(text, sep)
		ok = true
	}
	return text, ok
}

// acceptExample trims an example candidate and applies the length filters
// and the second-definition heuristic.
func acceptExample(s string) (string, bool) {
	s = strings.Join(strings.Fields(strings.Trim(s, exampleTrim)), " ")
	n := utf8.RuneCountInString(s)
	if n < MinExampleChars || n > MaxExampleChars {
		return "", false
	}
	if n > secondDefinitionChars && defLikeLeadRe.MatchString(s) {
		return "", false
	}
	return s, true
}
