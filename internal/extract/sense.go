package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Sense is one sense of a block as found by SplitSenses.
type Sense struct {
	Number int
	// Source is the number printed in the source, 0 when absent.
	Source     int
	Renumbered bool
	// POS is the raw part of speech of the POS line governing this sense.
	POS      string
	Body     []string
	Meta     []string
	Synonyms []string
}

// Lines returns every raw line attributed to the sense.
func (s Sense) Lines() []string {
	out := make([]string, 0, len(s.Body)+len(s.Meta)+len(s.Synonyms))
	out = append(out, s.Body...)
	out = append(out, s.Meta...)
	return append(out, s.Synonyms...)
}

// Split is the result of dividing a block body into senses. Etymology and
// entry-level synonyms are kept apart from the senses.
type Split struct {
	Preamble     []string
	PreambleMeta []string
	PreamblePOS  string
	Senses       []Sense
	Etymology    []string
	Synonyms     []string
}

type section int

const (
	sectionNone section = iota
	sectionEtymology
	sectionSynonyms
)

type splitter struct {
	g   *Grammar
	out Split

	cur      *Sense
	last     int
	pos      string
	sec      section
	synOwner int
}

// SplitSenses divides a block body into ordered senses. Source numbers are
// kept while they increase; otherwise senses are numbered sequentially.
// When no marker occurs the whole body is a single sense numbered 1.
func SplitSenses(g *Grammar, body []string) Split {
	sp := splitter{g: g, synOwner: -1}
	for _, line := range body {
		sp.line(line)
	}
	sp.closeSense()

	if len(sp.out.Senses) == 0 {
		sp.out.Senses = []Sense{{
			Number:   1,
			POS:      sp.out.PreamblePOS,
			Body:     sp.out.Preamble,
			Meta:     sp.out.PreambleMeta,
			Synonyms: sp.out.Synonyms,
		}}
		sp.out.Preamble, sp.out.PreambleMeta, sp.out.Synonyms = nil, nil, nil
	}
	return sp.out
}

func (sp *splitter) line(raw string) {
	g := sp.g
	t := strings.TrimSpace(raw)
	if t == "" {
		sp.sec = sectionNone
		return
	}

	if m := submatch(g.POSLine, t); m != nil {
		sp.closeSense()
		sp.pos = m[1]
		if len(sp.out.Senses) == 0 {
			sp.out.PreamblePOS = m[1]
		}
		return
	}
	if m := submatch(g.EtymologyMarker, t); m != nil {
		sp.closeSense()
		sp.out.Etymology = appendNonBlank(sp.out.Etymology, m[1])
		sp.sec = sectionEtymology
		return
	}
	if m := submatch(g.SynonymMarker, t); m != nil {
		sp.closeSense()
		sp.synOwner = len(sp.out.Senses) - 1
		sp.addSynonym(m[1])
		sp.sec = sectionSynonyms
		return
	}
	if m := submatch(g.SenseNumber, t); m != nil {
		n, _ := strconv.Atoi(m[1])
		sp.open(n, m[2])
		return
	}
	if m := submatch(g.DefinitionMarker, t); m != nil {
		// "1." followed by "Defn: ..." is one sense.
		if sp.cur != nil && len(sp.cur.Body) == 0 {
			sp.cur.Body = appendNonBlank(sp.cur.Body, m[1])
			return
		}
		sp.open(0, m[1])
		return
	}
	if m := submatch(g.LetteredSense, t); m != nil {
		sp.open(0, m[1])
		return
	}
	if sp.isMeta(t) {
		sp.sec = sectionNone
		switch {
		case sp.cur != nil:
			sp.cur.Meta = append(sp.cur.Meta, t)
		case len(sp.out.Senses) > 0:
			s := &sp.out.Senses[len(sp.out.Senses)-1]
			s.Meta = append(s.Meta, t)
		default:
			sp.out.PreambleMeta = append(sp.out.PreambleMeta, t)
		}
		return
	}

	switch sp.sec {
	case sectionEtymology:
		sp.out.Etymology = append(sp.out.Etymology, t)
	case sectionSynonyms:
		sp.addSynonym(t)
	default:
		switch {
		case sp.cur != nil:
			sp.cur.Body = append(sp.cur.Body, t)
		case len(sp.out.Senses) > 0:
			s := &sp.out.Senses[len(sp.out.Senses)-1]
			s.Body = append(s.Body, t)
		default:
			sp.out.Preamble = append(sp.out.Preamble, t)
		}
	}
}

func (sp *splitter) isMeta(t string) bool {
	g := sp.g
	for _, re := range []*regexp.Regexp{g.ExampleMarker, g.RegisterSection, g.DomainSection} {
		if re != nil && re.MatchString(t) {
			return true
		}
	}
	return g.BilingualSeparator != "" && strings.Contains(t, g.BilingualSeparator)
}

func (sp *splitter) open(source int, text string) {
	sp.closeSense()
	num := sp.last + 1
	renumbered := source != 0
	if source > sp.last {
		num, renumbered = source, false
	}
	sp.last = num
	sp.cur = &Sense{Number: num, Source: source, Renumbered: renumbered, POS: sp.pos}
	sp.cur.Body = appendNonBlank(sp.cur.Body, text)
}

func (sp *splitter) closeSense() {
	if sp.cur != nil {
		sp.out.Senses = append(sp.out.Senses, *sp.cur)
		sp.cur = nil
	}
	sp.sec = sectionNone
}

func (sp *splitter) addSynonym(t string) {
	if strings.TrimSpace(t) == "" {
		return
	}
	if sp.synOwner >= 0 && sp.synOwner < len(sp.out.Senses) {
		s := &sp.out.Senses[sp.synOwner]
		s.Synonyms = append(s.Synonyms, t)
		return
	}
	sp.out.Synonyms = append(sp.out.Synonyms, t)
}

func appendNonBlank(lines []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(lines, s)
	}
	return lines
}

func submatch(re *regexp.Regexp, s string) []string {
	if re == nil {
		return nil
	}
	return re.FindStringSubmatch(s)
}
