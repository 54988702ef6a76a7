package extract

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// Parser turns raw fragments of one source into ParsedDefinitions. It is
// stateless apart from its immutable grammar and safe for concurrent use.
type Parser struct {
	g     *Grammar
	clean *Cleaner
}

// NewParser validates g and builds a Parser on a private copy of it.
func NewParser(g Grammar) (*Parser, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("grammar %s: %w", g.Code, err)
	}
	return &Parser{g: &g, clean: NewCleaner(MaxDefinitionChars)}, nil
}

// MustParser is like NewParser but panics on an invalid grammar. It is
// meant for package-level grammar tables.
func MustParser(g Grammar) *Parser {
	p, err := NewParser(g)
	if err != nil {
		panic(err)
	}
	return p
}

// Grammar returns the parser's grammar. Callers must not modify it.
func (p *Parser) Grammar() *Grammar { return p.g }

// Source returns the source code the parser handles.
func (p *Parser) Source() domain.SourceCode { return p.g.Code }

// Parse extracts every sense of the fragment. It never panics and always
// returns at least one record: when nothing usable is extracted a
// deterministic fallback record built from the word and raw text is
// returned instead.
func (p *Parser) Parse(f domain.RawFragment) (defs []domain.ParsedDefinition) {
	defer func() {
		if r := recover(); r != nil {
			defs = []domain.ParsedDefinition{p.fallback(f, nil, fmt.Sprintf("parser panic: %v", r))}
		}
	}()

	text := f.Text()
	if strings.TrimSpace(text) == "" {
		return []domain.ParsedDefinition{p.fallback(f, nil, "empty fragment")}
	}

	var ws warnings
	blocks := SegmentText(p.g, text)
	if len(blocks) == 0 {
		return []domain.ParsedDefinition{p.fallback(f, nil, "no content lines")}
	}
	b := blocks[0]
	for _, cand := range blocks {
		if cand.Head > 0 {
			b = cand
			break
		}
	}
	if len(blocks) > 1 {
		ws.add(&domain.ExtractionWarning{
			Field:  "segment",
			Reason: fmt.Sprintf("%d blocks in fragment, parsed the first headword block", len(blocks)),
		})
	}
	if b.Truncated {
		ws.add(&domain.ExtractionWarning{Field: "segment", Reason: "block truncated at size cap"})
	}

	defs = p.parseBlock(f, b, ws)
	if len(defs) == 0 {
		return []domain.ParsedDefinition{p.fallback(f, ws, "no sense with content")}
	}
	return defs
}

// ParseBlock extracts the senses of a block already produced by a
// Segmenter over a stream, skipping re-segmentation of f's text. The
// fallback guarantees of Parse apply.
func (p *Parser) ParseBlock(f domain.RawFragment, b Block) (defs []domain.ParsedDefinition) {
	defer func() {
		if r := recover(); r != nil {
			defs = []domain.ParsedDefinition{p.fallback(f, nil, fmt.Sprintf("parser panic: %v", r))}
		}
	}()

	var ws warnings
	if b.Truncated {
		ws.add(&domain.ExtractionWarning{Field: "segment", Reason: "block truncated at size cap"})
	}
	if len(b.Lines) > 0 {
		defs = p.parseBlock(f, b, ws)
	}
	if len(defs) == 0 {
		return []domain.ParsedDefinition{p.fallback(f, ws, "no sense with content")}
	}
	return defs
}

// entry holds the fields shared by every sense of a block.
type entry struct {
	title         string
	pos           string
	etymology     *domain.Etymology
	pronunciation *string
	variants      []string
	labels        Labels
	synonyms      []string
}

func (p *Parser) parseBlock(f domain.RawFragment, b Block, ws warnings) []domain.ParsedDefinition {
	g := p.g
	var e entry

	head, ok := Headword{}, false
	if b.Head > 0 {
		head, ok = ResolveHeadword(g, b.HeadLines())
	}
	e.title = head.Word
	if !ok {
		e.title = normalizeHeadword(g, f.Word)
		if e.title == "" {
			e.title = normalizeHeadword(g, alphaTokenRe.FindString(b.Text()))
		}
	}

	split := SplitSenses(g, b.Body())
	e.pos = head.POS
	if e.pos == "" {
		e.pos = split.PreamblePOS
	}

	blockText := joinTrimmed(b.Lines, " ")
	etym := ExtractEtymology(split.Etymology, joinTrimmed(b.Body(), " "))
	pron := ExtractPronunciation(g, b.Lines)
	vars := ExtractVariants(head, blockText)
	pre := ExtractLabels(g, strings.Join(append(append([]string(nil), split.Preamble...), split.PreambleMeta...), "\n"))
	syn := ExtractSynonyms(split.Synonyms, "")
	ws.add(etym.Warning, pron.Warning, vars.Warning, pre.Warning, syn.Warning)

	if v, ok := etym.Get(); ok {
		e.etymology = &v
	}
	if v, ok := pron.Get(); ok {
		e.pronunciation = &v
	}
	e.variants = vars.Value
	e.labels = pre.Value
	e.synonyms = syn.Value

	start := max(1, f.SenseNumberHint)
	var out []domain.ParsedDefinition
	renumbered := false
	for _, s := range split.Senses {
		d, ok := p.parseSense(s, &e)
		if !ok {
			continue
		}
		if len(out) == 0 && len(e.synonyms) > 0 {
			d.Synonyms = DedupFold(append(d.Synonyms, e.synonyms...))
		}
		if want := start + len(out); d.SenseNumber != want {
			if s.Source != 0 {
				renumbered = true
			}
			d.SenseNumber = want
		}
		if s.Renumbered {
			renumbered = true
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil
	}

	if renumbered {
		ws.add(&domain.ExtractionWarning{Field: "sense_number", Reason: "source numbering not increasing, renumbered"})
	}
	if len(ws) > 0 {
		out[0].Warnings = append(append([]domain.ExtractionWarning(nil), ws...), out[0].Warnings...)
	}
	return out
}

func (p *Parser) parseSense(s Sense, e *entry) (domain.ParsedDefinition, bool) {
	g := p.g
	var ws warnings

	d := domain.ParsedDefinition{
		MeaningTitle:  e.title,
		SenseNumber:   s.Number,
		Etymology:     e.etymology,
		Pronunciation: e.pronunciation,
		Variants:      e.variants,
		RawFragment:   truncateRunes(joinTrimmed(s.Lines(), "\n"), MaxRawFragment),
	}
	if len(e.variants) > 0 {
		alias := e.variants[0]
		d.Alias = &alias
	}

	body := joinTrimmed(s.Body, " ")

	posToken := s.POS
	inline, rest, hasInline := inlinePOS(g, body)
	if hasInline {
		body = rest
	}
	switch {
	case posToken != "":
		r := ExtractPOS(g.POS, posToken)
		ws.add(r.Warning)
		if v, ok := r.Get(); ok {
			d.PartOfSpeech = &v
		}
	case hasInline:
		d.PartOfSpeech = &inline
	case e.pos != "":
		r := ExtractPOS(g.POS, e.pos)
		ws.add(r.Warning)
		if v, ok := r.Get(); ok {
			d.PartOfSpeech = &v
		}
	}

	labelText := strings.Join(append([]string{body}, s.Meta...), "\n")
	labels := ExtractLabels(g, labelText)
	ws.add(labels.Warning)
	lv := labels.Value
	if lv.empty() {
		lv = e.labels
	}
	d.Domain, d.SecondaryDomains = SelectPrimary(lv.Domains)
	d.UsageLabel, d.SecondaryLabels = SelectPrimary(lv.Registers)

	d.Definition = p.clean.Clean(stripLeadingLabels(g, body))

	examples := ExtractExamples(g, s.Meta, body)
	synonyms := ExtractSynonyms(s.Synonyms, body)
	xrefs := ExtractCrossReferences(joinTrimmed(append(append([]string{body}, s.Synonyms...), s.Meta...), " "))
	ws.add(examples.Warning, synonyms.Warning, xrefs.Warning)
	d.Examples = examples.Value
	d.Synonyms = synonyms.Value
	d.CrossReferences = xrefs.Value
	d.Warnings = ws

	return d, d.HasContent()
}

// fallback builds the deterministic record returned when nothing usable
// was extracted.
func (p *Parser) fallback(f domain.RawFragment, ws warnings, reason string) domain.ParsedDefinition {
	text := f.Text()
	title := normalizeHeadword(p.g, f.Word)
	if title == "" {
		title = normalizeHeadword(p.g, alphaTokenRe.FindString(truncateRunes(text, MaxLineChars)))
	}
	def := guard("definition", func() Result[string] {
		return found(p.clean.Clean(truncateRunes(text, MaxFragmentChars)))
	})
	ws.add(&domain.ExtractionWarning{Field: "fragment", Reason: reason}, def.Warning)
	return domain.ParsedDefinition{
		MeaningTitle: title,
		Definition:   def.Value,
		SenseNumber:  max(1, f.SenseNumberHint),
		RawFragment:  truncateRunes(text, MaxRawFragment),
		Fallback:     true,
		Warnings:     ws,
	}
}
