package extract

import (
	"maps"
	"regexp"
	"strings"
	"unicode"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// LabelKind separates subject-domain labels from register labels.
type LabelKind int

const (
	LabelDomain LabelKind = iota + 1
	LabelRegister
)

// Label is a normalized English tag such as "zoology" or "informal".
type Label struct {
	Tag  string
	Kind LabelKind
}

// LabelTable maps folded source labels (see domain.FoldKey) to tags.
type LabelTable map[string]Label

// Lookup maps a raw label, ignoring case, dots and diacritics.
func (t LabelTable) Lookup(s string) (Label, bool) {
	l, ok := t[domain.FoldKey(s)]
	return l, ok
}

// With returns a copy of t extended (and overridden) by other.
func (t LabelTable) With(other LabelTable) LabelTable {
	out := maps.Clone(t)
	if out == nil {
		out = LabelTable{}
	}
	maps.Copy(out, other)
	return out
}

// NewLabelTable builds a table from tag -> source spellings.
func NewLabelTable(kind LabelKind, spellings map[string][]string) LabelTable {
	t := make(LabelTable)
	for tag, keys := range spellings {
		t[domain.FoldKey(tag)] = Label{Tag: tag, Kind: kind}
		for _, k := range keys {
			t[domain.FoldKey(k)] = Label{Tag: tag, Kind: kind}
		}
	}
	return t
}

// SharedLabels holds register and domain labels used by English sources,
// including the abbreviations of the Webster 1913 text.
var SharedLabels = NewLabelTable(LabelRegister, map[string][]string{
	"informal":    {"colloq", "colloquial", "inf", "infml", "low"},
	"formal":      {"fml"},
	"slang":       {"sl", "cant"},
	"archaic":     {"archaism"},
	"obsolete":    {"obs"},
	"rare":        nil,
	"dialect":     {"dial", "prov", "prov eng", "provincial"},
	"literary":    {"lit"},
	"poetic":      {"poet", "poetical"},
	"humorous":    {"humor", "jocular"},
	"offensive":   {"derogatory", "derog"},
	"vulgar":      {"vulg"},
	"dated":       {"old-fashioned"},
	"technical":   {"tech"},
	"british":     {"brit", "chiefly british"},
	"us":          {"american", "amer", "chiefly us"},
	"scottish":    {"scot"},
	"euphemistic": {"euphemism", "euph"},
}).With(NewLabelTable(LabelDomain, map[string][]string{
	"zoology":        {"zool"},
	"botany":         {"bot"},
	"anatomy":        {"anat"},
	"architecture":   {"arch"},
	"law":            {"legal", "jur"},
	"medicine":       {"med", "medical"},
	"chemistry":      {"chem"},
	"mathematics":    {"math", "maths"},
	"music":          {"mus"},
	"nautical":       {"naut"},
	"military":       {"mil"},
	"geology":        {"geol"},
	"astronomy":      {"astron"},
	"physiology":     {"physiol"},
	"grammar":        {"gram"},
	"heraldry":       {"her"},
	"ecclesiastical": {"eccl", "eccles"},
	"mineralogy":     {"min", "mineral"},
	"electricity":    {"elec"},
	"commerce":       {"com", "business"},
	"theology":       {"theol"},
	"rhetoric":       {"rhet"},
	"geometry":       {"geom"},
	"mechanics":      {"mech"},
	"printing":       {"print"},
	"surgery":        {"surg"},
	"pharmacy":       {"pharm"},
	"mythology":      {"myth"},
	"biology":        {"biol"},
	"physics":        {"phys"},
	"philosophy":     {"philos"},
	"agriculture":    {"agric"},
	"computing":      {"comput", "computer"},
	"economics":      {"econ"},
	"religion":       {"relig"},
	"logic":          nil,
	"linguistics":    {"ling"},
	"finance":        {"fin"},
	"sport":          {"sports"},
	"cookery":        {"cooking"},
}))

// Words that look like labels in brackets but describe morphology.
var morphologyWords = map[string]bool{
	"plural": true, "pl": true, "singular": true, "sing": true,
	"comparative": true, "superlative": true, "past": true, "pp": true,
	"p p": true, "p pr": true, "imp": true, "vb n": true, "usually plural": true,
	"countable": true, "uncountable": true, "transitive": true, "intransitive": true,
	"also": true, "see": true, "eg": true, "ie": true,
}

var numericLabelRe = regexp.MustCompile(`^[\d\s.,/%-]+(?:[a-z]{1,3})?$`)

// rejectLabel reports candidates that are never labels: morphology terms,
// numeric or unit values, and anything shorter than two characters.
func rejectLabel(s string) bool {
	k := domain.FoldKey(s)
	if len([]rune(k)) < 2 {
		return true
	}
	return morphologyWords[k] || numericLabelRe.MatchString(k)
}

// Labels are the domain and register tags of a sense in priority order.
type Labels struct {
	Domains   []string
	Registers []string
}

func (l *Labels) add(lab Label) {
	switch lab.Kind {
	case LabelDomain:
		l.Domains = append(l.Domains, lab.Tag)
	case LabelRegister:
		l.Registers = append(l.Registers, lab.Tag)
	}
}

func (l Labels) empty() bool { return len(l.Domains) == 0 && len(l.Registers) == 0 }

var labelSplitRe = regexp.MustCompile(`\s*(?:[,;/&]|\band\b)\s*`)

// ExtractLabels collects domain and register labels from text. Explicit
// section markers win over inline brackets, which win over a keyword scan
// of the first words. Inline and keyword candidates must map through the
// grammar's table; explicit sections also accept free text.
func ExtractLabels(g *Grammar, text string) Result[Labels] {
	return guard("labels", func() Result[Labels] {
		var out Labels

		explicit := func(re *regexp.Regexp, kind LabelKind) {
			if re == nil {
				return
			}
			for _, line := range strings.Split(text, "\n") {
				m := re.FindStringSubmatch(strings.TrimSpace(line))
				if m == nil {
					continue
				}
				for _, c := range labelSplitRe.Split(m[1], -1) {
					c = strings.TrimSpace(c)
					if rejectLabel(c) {
						continue
					}
					if lab, ok := g.Labels.Lookup(c); ok {
						out.add(lab)
						continue
					}
					out.add(Label{Tag: domain.NormalizeText(strings.Trim(c, ".:")), Kind: kind})
				}
			}
		}
		explicit(g.RegisterSection, LabelRegister)
		explicit(g.DomainSection, LabelDomain)

		// Glyphs are single characters, so only bracket candidates go
		// through rejectLabel.
		mapped := func(re *regexp.Regexp, glyph bool) {
			if re == nil {
				return
			}
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				for _, c := range labelSplitRe.Split(m[1], -1) {
					if !glyph && rejectLabel(c) {
						continue
					}
					if lab, ok := g.Labels.Lookup(c); ok {
						out.add(lab)
					}
				}
			}
		}
		mapped(g.Glyph, true)
		for _, re := range g.InlineLabels {
			mapped(re, false)
		}

		if g.KeywordScan {
			for _, lab := range keywordLabels(g, text) {
				out.add(lab)
			}
		}

		out.Domains = DedupFold(out.Domains)
		out.Registers = DedupFold(out.Registers)
		if out.empty() {
			return none[Labels]()
		}
		return found(out)
	})
}

// keywordLabels scans the first words of text for labels written out in
// full: a register word opening the sense ("Informal word for ..."), or
// any label word followed by punctuation ("Zoology. An animal ...").
func keywordLabels(g *Grammar, text string) []Label {
	words := strings.Fields(firstLine(text))
	if len(words) > keywordScanWords {
		words = words[:keywordScanWords]
	}
	var out []Label
	for i, w := range words {
		bare := strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) })
		if len([]rune(bare)) < 4 {
			continue
		}
		lab, ok := g.Labels.Lookup(bare)
		if !ok || !strings.EqualFold(lab.Tag, bare) {
			continue
		}
		punctuated := strings.HasSuffix(w, ".") || strings.HasSuffix(w, ":") || strings.HasSuffix(w, ",")
		if (lab.Kind == LabelRegister && i == 0) || punctuated {
			out = append(out, lab)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// stripLeadingLabels removes mapped inline labels and glyphs from the start
// of a definition: "(Zoöl.) An animal" -> "An animal".
func stripLeadingLabels(g *Grammar, text string) string {
	patterns := make([]*regexp.Regexp, 0, len(g.InlineLabels)+1)
	patterns = append(patterns, g.InlineLabels...)
	if g.Glyph != nil {
		patterns = append(patterns, g.Glyph)
	}
	for range 4 {
		text = strings.TrimSpace(text)
		stripped := false
		for _, re := range patterns {
			m := re.FindStringSubmatchIndex(text)
			if m == nil || m[0] != 0 {
				continue
			}
			if _, ok := g.Labels.Lookup(text[m[2]:m[3]]); ok {
				text = text[m[1]:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.TrimSpace(text)
}
