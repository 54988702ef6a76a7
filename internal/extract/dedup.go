package extract

import (
	"strings"

	"golang.org/x/text/cases"
)

// DedupFold removes case-insensitive duplicates and blank items, keeping
// the first spelling seen and the original order. Nil in, nil out.
func DedupFold(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	fold := cases.Fold()
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := fold.String(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SelectPrimary picks the highest-priority candidate; the rest are
// secondary. Candidates must already be in extractor-priority order.
func SelectPrimary(cands []string) (*string, []string) {
	cands = DedupFold(cands)
	if len(cands) == 0 {
		return nil, nil
	}
	primary := cands[0]
	if len(cands) == 1 {
		return &primary, nil
	}
	return &primary, cands[1:]
}
