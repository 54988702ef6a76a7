// Package parsed persists parsed definitions and their child rows in
// PostgreSQL. Every write is idempotent: definitions upsert on
// (entry_id, source_code, sense_number), an updated definition drops its
// old child rows, and child rows ignore duplicates, so a source can be
// re-imported over itself.
package parsed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/dictionary-importer/internal/adapter/postgres"
	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var definitionColumns = []string{
	"id", "entry_id", "source_code", "sense_number", "meaning_title", "definition",
	"part_of_speech", "domain", "secondary_domains", "usage_label", "secondary_labels",
	"pronunciation", "variants", "raw_fragment", "fallback", "warnings",
}

const upsertDefinitionSuffix = `ON CONFLICT (entry_id, source_code, sense_number) DO UPDATE SET
    meaning_title     = EXCLUDED.meaning_title,
    definition        = EXCLUDED.definition,
    part_of_speech    = EXCLUDED.part_of_speech,
    domain            = EXCLUDED.domain,
    secondary_domains = EXCLUDED.secondary_domains,
    usage_label       = EXCLUDED.usage_label,
    secondary_labels  = EXCLUDED.secondary_labels,
    pronunciation     = EXCLUDED.pronunciation,
    variants          = EXCLUDED.variants,
    raw_fragment      = EXCLUDED.raw_fragment,
    fallback          = EXCLUDED.fallback,
    warnings          = EXCLUDED.warnings,
    updated_at        = now()
RETURNING id, (xmax = 0) AS inserted`

const clearChildrenSQL = `WITH ex AS (DELETE FROM parsed_examples WHERE parsed_definition_id = $1),
     sy AS (DELETE FROM parsed_synonyms WHERE parsed_definition_id = $1),
     xr AS (DELETE FROM parsed_cross_references WHERE parsed_definition_id = $1)
DELETE FROM parsed_aliases WHERE parsed_definition_id = $1`

const upsertEtymologySuffix = `ON CONFLICT (entry_id) DO UPDATE SET
    text          = EXCLUDED.text,
    language_code = EXCLUDED.language_code,
    updated_at    = now()`

// Repo provides parsed-definition persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new parsed-definition repository. Writes join the
// transaction carried by ctx when there is one.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// WriteDefinition upserts one record and returns its ID. A re-import keeps
// the ID of the existing row and clears its examples, synonyms,
// cross-references and aliases so they can be written afresh.
func (r *Repo) WriteDefinition(ctx context.Context, entryID uuid.UUID, source domain.SourceCode, d domain.ParsedDefinition) (uuid.UUID, error) {
	key := fmt.Sprintf("%s/%s/%d", entryID, source, d.SenseNumber)

	warnings, err := json.Marshal(nonNilWarnings(d.Warnings))
	if err != nil {
		return uuid.Nil, fmt.Errorf("definition %s: encode warnings: %w", key, err)
	}

	var pos *string
	if d.PartOfSpeech != nil {
		s := d.PartOfSpeech.String()
		pos = &s
	}

	query := psql.Insert("parsed_definitions").
		Columns(definitionColumns...).
		Values(
			uuid.New(), entryID, source.String(), d.SenseNumber, d.MeaningTitle, d.Definition,
			pos, d.Domain, nonNil(d.SecondaryDomains), d.UsageLabel, nonNil(d.SecondaryLabels),
			d.Pronunciation, nonNil(d.Variants), d.RawFragment, d.Fallback, warnings,
		).
		Suffix(upsertDefinitionSuffix)

	sql, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build definition upsert: %w", err)
	}

	var (
		id       uuid.UUID
		inserted bool
	)
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, sql, args...).Scan(&id, &inserted); err != nil {
		return uuid.Nil, postgres.MapError(err, "definition", key)
	}
	if !inserted {
		if _, err := q.Exec(ctx, clearChildrenSQL, id); err != nil {
			return uuid.Nil, postgres.MapError(err, "definition children", key)
		}
	}
	return id, nil
}

// WriteExample attaches a usage example.
func (r *Repo) WriteExample(ctx context.Context, parsedID uuid.UUID, text string) error {
	query := psql.Insert("parsed_examples").
		Columns("parsed_definition_id", "text").
		Values(parsedID, text).
		Suffix("ON CONFLICT (parsed_definition_id, text) DO NOTHING")
	return r.exec(ctx, query, "example", parsedID)
}

// WriteSynonyms attaches synonyms in one statement.
func (r *Repo) WriteSynonyms(ctx context.Context, parsedID uuid.UUID, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	query := psql.Insert("parsed_synonyms").Columns("parsed_definition_id", "text")
	for _, s := range texts {
		query = query.Values(parsedID, s)
	}
	query = query.Suffix("ON CONFLICT (parsed_definition_id, text) DO NOTHING")
	return r.exec(ctx, query, "synonyms", parsedID)
}

// WriteEtymology stores entry-level etymology, replacing an earlier one.
func (r *Repo) WriteEtymology(ctx context.Context, entryID uuid.UUID, text, languageCode string) error {
	var lang *string
	if languageCode != "" {
		lang = &languageCode
	}
	query := psql.Insert("entry_etymologies").
		Columns("entry_id", "text", "language_code").
		Values(entryID, text, lang).
		Suffix(upsertEtymologySuffix)
	return r.exec(ctx, query, "etymology", entryID)
}

// WriteCrossReference attaches a cross-reference.
func (r *Repo) WriteCrossReference(ctx context.Context, parsedID uuid.UUID, target string, refType domain.ReferenceType) error {
	if !refType.IsValid() {
		return fmt.Errorf("cross reference %s: %w", parsedID, domain.NewValidationError("ref_type", fmt.Sprintf("unknown type %q", refType)))
	}
	query := psql.Insert("parsed_cross_references").
		Columns("parsed_definition_id", "target_word", "ref_type").
		Values(parsedID, target, refType.String()).
		Suffix("ON CONFLICT (parsed_definition_id, target_word, ref_type) DO NOTHING")
	return r.exec(ctx, query, "cross reference", parsedID)
}

// WriteAlias attaches an alternate spelling.
func (r *Repo) WriteAlias(ctx context.Context, parsedID uuid.UUID, alias string) error {
	query := psql.Insert("parsed_aliases").
		Columns("parsed_definition_id", "alias").
		Values(parsedID, alias).
		Suffix("ON CONFLICT (parsed_definition_id, alias) DO NOTHING")
	return r.exec(ctx, query, "alias", parsedID)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// CountBySource returns the number of stored records per source.
func (r *Repo) CountBySource(ctx context.Context) (map[domain.SourceCode]int, error) {
	sql, args, err := psql.Select("source_code", "count(*)").
		From("parsed_definitions").
		GroupBy("source_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("count definitions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.SourceCode]int)
	for rows.Next() {
		var (
			code string
			n    int64
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[domain.SourceCode(code)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count definitions: %w", err)
	}
	return counts, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) exec(ctx context.Context, query squirrel.InsertBuilder, entity string, id uuid.UUID) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", entity, err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, entity, id.String())
	}
	return nil
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilWarnings(w []domain.ExtractionWarning) []domain.ExtractionWarning {
	if w == nil {
		return []domain.ExtractionWarning{}
	}
	return w
}
