package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/dictionary-importer/internal/config"
	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// maxLineSize is the buffer size for bufio.Scanner (16 MB).
const maxLineSize = 16 << 20

// entryNamespace seeds deterministic entry IDs for rows that carry none.
var entryNamespace = uuid.MustParse("6f1f3c1e-3d55-4b8e-9a55-9c1f0b7f2d41")

// EntryID derives a stable entry ID from a headword, so re-imports of the
// same word land on the same entry.
func EntryID(word string) uuid.UUID {
	return uuid.NewSHA1(entryNamespace, []byte(domain.FoldKey(word)))
}

// ReadStats counts what a reader saw.
type ReadStats struct {
	Lines     int
	Malformed int
	Blocks    int
}

// stagingRow is one line of a JSONL staging file.
type stagingRow struct {
	EntryID     string `json:"entry_id"`
	Word        string `json:"word"`
	Definition  string `json:"definition"`
	RawText     string `json:"raw_text"`
	SenseNumber int    `json:"sense_number"`
}

// job is one fragment handed to the workers. block is set when the
// fragment came out of a streamed dump and is already segmented.
type job struct {
	seq   int
	frag  domain.RawFragment
	block *extract.Block
}

// ReadJSONL streams staging rows for one source. Undecodable rows and
// rows failing validation are counted as malformed and skipped.
func ReadJSONL(ctx context.Context, r io.Reader, code domain.SourceCode, emit func(domain.RawFragment) error) (ReadStats, error) {
	var stats ReadStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var row stagingRow
		if err := json.Unmarshal(line, &row); err != nil {
			stats.Malformed++
			continue
		}

		f := domain.RawFragment{
			Word:            strings.TrimSpace(row.Word),
			Definition:      row.Definition,
			RawText:         row.RawText,
			Source:          code,
			SenseNumberHint: row.SenseNumber,
		}
		switch id, err := uuid.Parse(row.EntryID); {
		case err == nil:
			f.EntryID = id
		case f.Word != "":
			f.EntryID = EntryID(f.Word)
		default:
			f.EntryID = uuid.NewSHA1(entryNamespace, []byte(f.Text()))
		}
		if err := f.Validate(); err != nil {
			stats.Malformed++
			continue
		}

		if err := emit(f); err != nil {
			return stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan jsonl: %w", err)
	}
	return stats, nil
}

// ReadDump streams a plain-text dump through the grammar's segmenter and
// emits one fragment per block, with the headword resolved up front.
func ReadDump(ctx context.Context, r io.Reader, g *extract.Grammar, emit func(domain.RawFragment, extract.Block) error) (ReadStats, error) {
	var (
		stats   ReadStats
		emitErr error
	)

	seg := extract.NewSegmenter(g, func(b extract.Block) {
		if emitErr != nil {
			return
		}
		stats.Blocks++
		f := domain.RawFragment{RawText: b.Text(), Source: g.Code}
		if b.Head > 0 {
			if hw, ok := extract.ResolveHeadword(g, b.HeadLines()); ok {
				f.Word = hw.Word
			}
		}
		if f.Word != "" {
			f.EntryID = EntryID(f.Word)
		} else {
			f.EntryID = uuid.NewSHA1(entryNamespace, []byte(f.RawText))
		}
		emitErr = emit(f, b)
	})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineSize)

	for scanner.Scan() {
		if emitErr != nil {
			return stats, emitErr
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		seg.FeedRaw(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan dump: %w", err)
	}
	seg.Flush()
	return stats, emitErr
}

// formatOf resolves the input format, inferring it from the extension
// when unset.
func formatOf(in config.SourceInput) string {
	if in.Format != "" {
		return in.Format
	}
	switch strings.ToLower(filepath.Ext(in.Path)) {
	case ".jsonl", ".ndjson", ".json":
		return config.FormatJSONL
	}
	return config.FormatDump
}
