package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// DefinitionWriter persists one parsed record and returns its ID.
type DefinitionWriter interface {
	WriteDefinition(ctx context.Context, entryID uuid.UUID, source domain.SourceCode, d domain.ParsedDefinition) (uuid.UUID, error)
}

// ExampleWriter attaches a usage example to a parsed record.
type ExampleWriter interface {
	WriteExample(ctx context.Context, parsedID uuid.UUID, text string) error
}

// SynonymWriter attaches synonyms to a parsed record.
type SynonymWriter interface {
	WriteSynonyms(ctx context.Context, parsedID uuid.UUID, texts []string) error
}

// EtymologyWriter stores entry-level etymology.
type EtymologyWriter interface {
	WriteEtymology(ctx context.Context, entryID uuid.UUID, text, languageCode string) error
}

// CrossReferenceWriter attaches a cross-reference to a parsed record.
type CrossReferenceWriter interface {
	WriteCrossReference(ctx context.Context, parsedID uuid.UUID, target string, refType domain.ReferenceType) error
}

// AliasWriter attaches an alternate spelling to a parsed record.
type AliasWriter interface {
	WriteAlias(ctx context.Context, parsedID uuid.UUID, alias string) error
}

// TxRunner runs fn in one transaction carried by ctx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Sink is everything the pipeline writes through.
type Sink interface {
	TxRunner
	DefinitionWriter
	ExampleWriter
	SynonymWriter
	EtymologyWriter
	CrossReferenceWriter
	AliasWriter
}

// Rewriter corrects record text in place and reports how many strings
// changed. *rewrite.Guard satisfies it.
type Rewriter interface {
	Definitions(ctx context.Context, defs []domain.ParsedDefinition, locale string) int
}
