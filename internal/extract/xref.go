package extract

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// targetPat captures one to three words ending at punctuation or end of text.
const targetPat = `([\p{L}][\p{L}'’\-]*(?:\s+[\p{L}][\p{L}'’\-]*){0,2}?)(?:[.,;:)\]]|\s*$)`

var (
	seeRe       = regexp.MustCompile(`(?i)\bsee(\s+also)?\s+(?:under\s+)?` + targetPat)
	variantOfRe = regexp.MustCompile(`(?i)\b(?:variant|var\.)\s+(?:spelling\s+)?of\s+` + targetPat)
	alsoParenRe = regexp.MustCompile(`(?i)\(also\s+([\p{L}][\p{L}'’\- ]{0,40})\)`)
	synonymOfRe = regexp.MustCompile(`(?i)\bsynonym\s+(?:of|for)\s+` + targetPat)
	abbrevForRe = regexp.MustCompile(`(?i)\b(?:abbreviation|abbr\.|abbrev\.)\s+(?:of|for)\s+` + targetPat)
)

var nonTargets = map[string]bool{
	"the": true, "a": true, "an": true, "also": true, "above": true, "below": true,
	"under": true, "page": true, "p": true, "pp": true, "infra": true, "supra": true,
}

type xrefHit struct {
	at  int
	ref domain.CrossReference
}

// ExtractCrossReferences finds "see X", "see also X", "variant of X",
// "(also X)", "synonym of X" and "abbreviation of/for X" references, in
// order of appearance.
func ExtractCrossReferences(text string) Result[[]domain.CrossReference] {
	return guard("cross_references", func() Result[[]domain.CrossReference] {
		var hits []xrefHit
		collect := func(re *regexp.Regexp, group int, typ func(m []string) domain.ReferenceType) {
			for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
				m := make([]string, len(loc)/2)
				for i := range m {
					if loc[2*i] >= 0 {
						m[i] = text[loc[2*i]:loc[2*i+1]]
					}
				}
				target := cleanTarget(m[group])
				if target == "" {
					continue
				}
				hits = append(hits, xrefHit{at: loc[0], ref: domain.CrossReference{TargetWord: target, Type: typ(m)}})
			}
		}

		collect(seeRe, 2, func(m []string) domain.ReferenceType {
			if m[1] != "" {
				return domain.ReferenceAlso
			}
			return domain.ReferenceSee
		})
		collect(variantOfRe, 1, constRef(domain.ReferenceVariant))
		collect(alsoParenRe, 1, constRef(domain.ReferenceAlso))
		collect(synonymOfRe, 1, constRef(domain.ReferenceSynonym))
		collect(abbrevForRe, 1, constRef(domain.ReferenceAbbreviationFor))

		slices.SortStableFunc(hits, func(a, b xrefHit) int { return cmp.Compare(a.at, b.at) })

		seen := make(map[string]bool, len(hits))
		var out []domain.CrossReference
		for _, h := range hits {
			key := strings.ToLower(h.ref.TargetWord) + "|" + string(h.ref.Type)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, h.ref)
		}
		if len(out) == 0 {
			return none[[]domain.CrossReference]()
		}
		return found(out)
	})
}

func constRef(t domain.ReferenceType) func([]string) domain.ReferenceType {
	return func([]string) domain.ReferenceType { return t }
}

func cleanTarget(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " .,;:-'’")
	if s == "" {
		return ""
	}
	first, _, _ := strings.Cut(s, " ")
	if nonTargets[strings.ToLower(first)] {
		return ""
	}
	return s
}
