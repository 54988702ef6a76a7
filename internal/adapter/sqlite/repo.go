package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// squirrel's default placeholder is "?", which is what SQLite takes.
var builder = squirrel.StatementBuilder

var definitionColumns = []string{
	"id", "entry_id", "source_code", "sense_number", "meaning_title", "definition",
	"part_of_speech", "domain", "secondary_domains", "usage_label", "secondary_labels",
	"pronunciation", "variants", "raw_fragment", "fallback", "warnings",
}

const upsertDefinitionSuffix = `ON CONFLICT (entry_id, source_code, sense_number) DO UPDATE SET
    meaning_title     = excluded.meaning_title,
    definition        = excluded.definition,
    part_of_speech    = excluded.part_of_speech,
    domain            = excluded.domain,
    secondary_domains = excluded.secondary_domains,
    usage_label       = excluded.usage_label,
    secondary_labels  = excluded.secondary_labels,
    pronunciation     = excluded.pronunciation,
    variants          = excluded.variants,
    raw_fragment      = excluded.raw_fragment,
    fallback          = excluded.fallback,
    warnings          = excluded.warnings,
    updated_at        = CURRENT_TIMESTAMP
RETURNING id`

// WriteDefinition upserts one record and returns its ID. List columns are
// stored as JSON arrays. Re-writing an existing record keeps its ID and
// drops its child rows.
func (d *DB) WriteDefinition(ctx context.Context, entryID uuid.UUID, source domain.SourceCode, def domain.ParsedDefinition) (uuid.UUID, error) {
	key := fmt.Sprintf("%s/%s/%d", entryID, source, def.SenseNumber)

	lists := make([]string, 0, 4)
	for _, v := range []any{def.SecondaryDomains, def.SecondaryLabels, def.Variants, def.Warnings} {
		s, err := jsonArray(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("definition %s: %w", key, err)
		}
		lists = append(lists, s)
	}

	var pos *string
	if def.PartOfSpeech != nil {
		s := def.PartOfSpeech.String()
		pos = &s
	}

	newID := uuid.New()
	query := builder.Insert("parsed_definitions").
		Columns(definitionColumns...).
		Values(
			newID.String(), entryID.String(), source.String(), def.SenseNumber, def.MeaningTitle, def.Definition,
			pos, def.Domain, lists[0], def.UsageLabel, lists[1],
			def.Pronunciation, lists[2], def.RawFragment, def.Fallback, lists[3],
		).
		Suffix(upsertDefinitionSuffix)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build definition upsert: %w", err)
	}

	var id uuid.UUID
	if err := d.querier(ctx).QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		return uuid.Nil, mapError(err, "definition", key)
	}
	if id != newID {
		if err := d.clearChildren(ctx, id); err != nil {
			return uuid.Nil, mapError(err, "definition children", key)
		}
	}
	return id, nil
}

// childTables hold the per-record rows replaced when a definition is
// re-imported.
var childTables = []string{"parsed_examples", "parsed_synonyms", "parsed_cross_references", "parsed_aliases"}

func (d *DB) clearChildren(ctx context.Context, parsedID uuid.UUID) error {
	for _, table := range childTables {
		sqlStr, args, err := builder.Delete(table).
			Where(squirrel.Eq{"parsed_definition_id": parsedID.String()}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build %s delete: %w", table, err)
		}
		if _, err := d.querier(ctx).ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return nil
}

// WriteExample attaches a usage example.
func (d *DB) WriteExample(ctx context.Context, parsedID uuid.UUID, text string) error {
	query := builder.Insert("parsed_examples").
		Columns("parsed_definition_id", "text").
		Values(parsedID.String(), text).
		Suffix("ON CONFLICT DO NOTHING")
	return d.exec(ctx, query, "example", parsedID)
}

// WriteSynonyms attaches synonyms in one statement.
func (d *DB) WriteSynonyms(ctx context.Context, parsedID uuid.UUID, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	query := builder.Insert("parsed_synonyms").Columns("parsed_definition_id", "text")
	for _, s := range texts {
		query = query.Values(parsedID.String(), s)
	}
	return d.exec(ctx, query.Suffix("ON CONFLICT DO NOTHING"), "synonyms", parsedID)
}

// WriteEtymology stores entry-level etymology, replacing an earlier one.
func (d *DB) WriteEtymology(ctx context.Context, entryID uuid.UUID, text, languageCode string) error {
	var lang *string
	if languageCode != "" {
		lang = &languageCode
	}
	query := builder.Insert("entry_etymologies").
		Columns("entry_id", "text", "language_code").
		Values(entryID.String(), text, lang).
		Suffix(`ON CONFLICT (entry_id) DO UPDATE SET
    text = excluded.text, language_code = excluded.language_code, updated_at = CURRENT_TIMESTAMP`)
	return d.exec(ctx, query, "etymology", entryID)
}

// WriteCrossReference attaches a cross-reference.
func (d *DB) WriteCrossReference(ctx context.Context, parsedID uuid.UUID, target string, refType domain.ReferenceType) error {
	if !refType.IsValid() {
		return fmt.Errorf("cross reference %s: %w", parsedID, domain.NewValidationError("ref_type", fmt.Sprintf("unknown type %q", refType)))
	}
	query := builder.Insert("parsed_cross_references").
		Columns("parsed_definition_id", "target_word", "ref_type").
		Values(parsedID.String(), target, refType.String()).
		Suffix("ON CONFLICT DO NOTHING")
	return d.exec(ctx, query, "cross reference", parsedID)
}

// WriteAlias attaches an alternate spelling.
func (d *DB) WriteAlias(ctx context.Context, parsedID uuid.UUID, alias string) error {
	query := builder.Insert("parsed_aliases").
		Columns("parsed_definition_id", "alias").
		Values(parsedID.String(), alias).
		Suffix("ON CONFLICT DO NOTHING")
	return d.exec(ctx, query, "alias", parsedID)
}

// CountBySource returns the number of stored records per source.
func (d *DB) CountBySource(ctx context.Context) (map[domain.SourceCode]int, error) {
	sqlStr, args, err := builder.Select("source_code", "count(*)").
		From("parsed_definitions").
		GroupBy("source_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	rows, err := d.querier(ctx).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("count definitions: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.SourceCode]int)
	for rows.Next() {
		var (
			code string
			n    int
		)
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[domain.SourceCode(code)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count definitions: %w", err)
	}
	return counts, nil
}

func (d *DB) exec(ctx context.Context, query squirrel.InsertBuilder, entity string, id uuid.UUID) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", entity, err)
	}
	if _, err := d.querier(ctx).ExecContext(ctx, sqlStr, args...); err != nil {
		return mapError(err, entity, id.String())
	}
	return nil
}

// jsonArray encodes a slice as a JSON array, never as null.
func jsonArray(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// mapError converts sqlite errors to domain errors, mirroring the
// PostgreSQL adapter.
func mapError(err error, entity, key string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
