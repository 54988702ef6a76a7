package extract

// Size caps applied to every source. Regexp matching is linear in input
// size, so these bound total work per fragment.
const (
	MaxFragmentChars   = 250_000
	MaxLineChars       = 4_000
	MaxDefinitionChars = 1_000
	MaxRawFragment     = 4_000
	MaxHeadwordChars   = 100

	MinExampleChars = 6
	MaxExampleChars = 300

	// Examples opening like a definition and longer than this are dropped.
	secondDefinitionChars = 100

	MaxSynonymWords = 3

	// Words at the head of a sense scanned for label keywords.
	keywordScanWords = 6

	// Lines a headword-class line may span before it is treated as content.
	maxHeadLineChars = 80

	// Leading lines of a block scanned for a "Word, pos." capture.
	headwordScanLines = 3
)
