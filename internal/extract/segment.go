package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	wordPOSRe        = regexp.MustCompile(`^([A-Za-z][A-Za-z·"*\x60'’ \-]{0,60}?),\s*((?:n|a|adj|adv|prep|conj|pron|interj|v\.\s*[ti]|v|p\.\s*[pa]|imp|pl|superl|compar)\.)`)
	bracketVariantRe = regexp.MustCompile(`^([A-Z][A-Za-z'’\-]*)\s*\(#[^)]*#\)\.?$`)
	allCapsRe        = regexp.MustCompile(`^[A-Z][A-Z'’\-]*(?:(?:[;,]\s*|\s+(?:OR\s+)?)[A-Z][A-Z'’\-]*)*$`)
	literalRe        = regexp.MustCompile(`^(?:[A-Z]\.?|[A-Z]-|[A-Z] \d)$`)
)

// Lines fed before the first start marker are held back this long in case
// a start marker follows and the preamble must be dropped.
const startHoldLines = 1000

// Block is the run of lines belonging to one headword occurrence.
// The first Head lines are headword lines (headword plus an optional
// companion form line); Head is 0 for blocks without a headword line.
type Block struct {
	Lines     []string
	Head      int
	Class     HeadwordClass
	Truncated bool
}

// HeadLines returns the headword lines.
func (b Block) HeadLines() []string { return b.Lines[:b.Head] }

// Body returns the lines after the headword lines.
func (b Block) Body() []string { return b.Lines[b.Head:] }

// Text joins all lines of the block.
func (b Block) Text() string { return strings.Join(b.Lines, "\n") }

type headMatch struct {
	class HeadwordClass
	end   int
}

// classify tests line against the grammar's headword classes in order.
func (g *Grammar) classify(line string) (headMatch, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return headMatch{}, false
	}
	short := utf8.RuneCountInString(trimmed) <= maxHeadLineChars

	for _, c := range g.Classes {
		switch c {
		case ClassMarker:
			if g.HeadwordMarker == nil {
				continue
			}
			if loc := g.HeadwordMarker.FindStringIndex(trimmed); loc != nil && loc[0] == 0 {
				return headMatch{class: c, end: loc[1]}, true
			}
		case ClassWordPOS:
			if short && wordPOSRe.MatchString(trimmed) {
				return headMatch{class: c, end: len(trimmed)}, true
			}
		case ClassBracketVariant:
			if short && bracketVariantRe.MatchString(trimmed) {
				return headMatch{class: c, end: len(trimmed)}, true
			}
		case ClassAllCaps:
			if short && utf8.RuneCountInString(trimmed) >= 2 && allCapsRe.MatchString(trimmed) {
				return headMatch{class: c, end: len(trimmed)}, true
			}
		case ClassLiteral:
			if literalRe.MatchString(trimmed) {
				return headMatch{class: c, end: len(trimmed)}, true
			}
		}
	}
	return headMatch{}, false
}

// Segmenter partitions a line stream into blocks, one per headword.
// It holds O(block) state, so arbitrarily large dumps can be streamed
// through Feed followed by a final Flush.
type Segmenter struct {
	g    *Grammar
	emit func(Block)

	cur  *Block
	size int

	started bool
	ended   bool
	held    []Block
	fed     int
}

// NewSegmenter returns a Segmenter that calls emit for every completed block.
func NewSegmenter(g *Grammar, emit func(Block)) *Segmenter {
	return &Segmenter{
		g:       g,
		emit:    emit,
		started: len(g.StartMarkers) == 0,
	}
}

// FeedRaw normalizes a raw line with the grammar and feeds the result.
// Grammar rewrites may turn one raw line into several.
func (s *Segmenter) FeedRaw(raw string) {
	for _, l := range s.g.Lines(raw) {
		s.Feed(l)
	}
}

// Feed consumes one normalized line.
func (s *Segmenter) Feed(line string) {
	if s.ended {
		return
	}
	s.fed++
	trimmed := strings.TrimSpace(line)

	if matchAny(s.g.StartMarkers, trimmed) {
		s.cur, s.size = nil, 0
		s.held = nil
		s.started = true
		return
	}
	if matchAny(s.g.EndMarkers, trimmed) {
		s.flush()
		s.release()
		s.ended = true
		return
	}
	if !s.started && s.fed > startHoldLines {
		s.started = true
		s.release()
	}

	if m, ok := s.g.classify(line); ok {
		// A headword-class line right after a lone headword line is its companion form.
		if s.cur != nil && s.cur.Head == 1 && len(s.cur.Lines) == 1 {
			s.add(trimmed)
			s.cur.Head = 2
			return
		}
		s.flush()
		s.cur = &Block{Class: m.class, Head: 1}
		s.add(trimmed[:m.end])
		if rest := strings.TrimSpace(trimmed[m.end:]); rest != "" {
			s.add(rest)
		}
		return
	}

	if s.cur == nil {
		if trimmed == "" {
			return
		}
		s.cur = &Block{}
	}
	if trimmed == "" && len(s.cur.Lines) == s.cur.Head {
		return
	}
	s.add(line)
}

// Flush emits the pending block and any blocks held back waiting for a
// start marker that never came.
func (s *Segmenter) Flush() {
	s.flush()
	s.release()
}

func (s *Segmenter) add(line string) {
	if s.size+len(line) > MaxFragmentChars {
		s.cur.Truncated = true
		return
	}
	s.cur.Lines = append(s.cur.Lines, line)
	s.size += len(line) + 1
}

func (s *Segmenter) flush() {
	b := s.cur
	s.cur, s.size = nil, 0
	if b == nil {
		return
	}
	for len(b.Lines) > b.Head && strings.TrimSpace(b.Lines[len(b.Lines)-1]) == "" {
		b.Lines = b.Lines[:len(b.Lines)-1]
	}
	if len(b.Lines) == 0 {
		return
	}
	if !s.started {
		s.held = append(s.held, *b)
		return
	}
	s.emit(*b)
}

func (s *Segmenter) release() {
	for _, b := range s.held {
		s.emit(b)
	}
	s.held = nil
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// SegmentText splits a whole text into blocks.
func SegmentText(g *Grammar, text string) []Block {
	var blocks []Block
	seg := NewSegmenter(g, func(b Block) { blocks = append(blocks, b) })
	for _, l := range g.Lines(text) {
		seg.Feed(l)
	}
	seg.Flush()
	return blocks
}
