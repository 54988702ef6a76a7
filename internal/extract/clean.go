package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sectionMarkerRe = regexp.MustCompile(`【[^】]{0,20}】[：:]?`)
	defnMarkerRe    = regexp.MustCompile(`(?i)\b(?:Defn|Definition):\s*`)
	glyphMarkerRe   = regexp.MustCompile(`[〔〈][^〕〉]{1,6}[〕〉]`)
	leadBulletRe    = regexp.MustCompile(`^[\s»◘•⇒]+`)
	leadNumberRe    = regexp.MustCompile(`^\s*(?:\(?\d{1,3}[.)]|\(\s*[a-h]\s*\)|[a-h]\.)\s+`)
	slashPronRe     = regexp.MustCompile(`(?:^|\s)/[^/\s][^/\n]{0,40}/`)
	spacePunctRe    = regexp.MustCompile(`\s+([.,;:!?])`)
	dotRunRe        = regexp.MustCompile(`\.{2,}`)
	doubleSepRe     = regexp.MustCompile(`([,;:])[,;:]+`)
	doubleBangRe    = regexp.MustCompile(`([!?])[!?]+`)
	mergedSentRe    = regexp.MustCompile(`\b([a-z]{2,})\s+(The|This|It|These|They|He|She|See|Compare)\s`)
)

const (
	cleanPasses   = 4
	ellipsis      = "..."
	minCleanerMax = 10
)

// Cleaner normalizes definition text. Clean is idempotent.
type Cleaner struct {
	max int
}

// NewCleaner returns a Cleaner truncating output past limit runes.
func NewCleaner(limit int) *Cleaner {
	return &Cleaner{max: max(limit, minCleanerMax)}
}

// Clean strips markup, section markers, leading sense numbers and slash
// pronunciations, collapses doubled punctuation, repairs merged sentences
// and enforces terminal punctuation and the length cap. It returns "" when
// nothing alphanumeric is left.
func (c *Cleaner) Clean(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	for range cleanPasses {
		next := cleanPass(s)
		if next == s {
			break
		}
		s = next
	}

	s = strings.TrimRight(s, " ,;:-–—")
	if !hasAlnum(s) {
		return ""
	}
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	if utf8.RuneCountInString(s) > c.max {
		s = strings.TrimRight(truncateRunes(s, c.max-len(ellipsis)), " ,;:-–—.") + ellipsis
	}
	return s
}

func cleanPass(s string) string {
	s = sectionMarkerRe.ReplaceAllString(s, " ")
	s = defnMarkerRe.ReplaceAllString(s, "")
	s = glyphMarkerRe.ReplaceAllString(s, "")
	s = slashPronRe.ReplaceAllString(s, " ")

	for {
		next := leadNumberRe.ReplaceAllString(leadBulletRe.ReplaceAllString(s, ""), "")
		if next == s {
			break
		}
		s = next
	}

	s = strings.Join(strings.Fields(s), " ")
	s = spacePunctRe.ReplaceAllString(s, "$1")
	s = dotRunRe.ReplaceAllStringFunc(s, func(run string) string {
		if len(run) == 2 {
			return "."
		}
		return ellipsis
	})
	s = doubleSepRe.ReplaceAllString(s, "$1")
	s = doubleBangRe.ReplaceAllString(s, "$1")
	return mergedSentRe.ReplaceAllString(s, "$1. $2 ")
}
