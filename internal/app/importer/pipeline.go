// Package importer runs the per-source import phases: read raw fragments,
// parse them on a worker pool, correct the text and write the records in
// batched transactions.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/dictionary-importer/internal/config"
	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
	"github.com/heartmarshall/dictionary-importer/internal/extract/source"
)

const defaultBatchSize = 200

// Config holds pipeline settings.
type Config struct {
	Workers   int
	BatchSize int
	DryRun    bool
	Locale    string
	Inputs    map[domain.SourceCode]config.SourceInput
}

// NewConfig builds pipeline settings from the loaded configuration.
func NewConfig(ic config.ImportConfig, rc config.RewriteConfig) Config {
	inputs := make(map[domain.SourceCode]config.SourceInput)
	for _, code := range domain.SourceCodes() {
		if in, ok := ic.Input(code); ok {
			inputs[code] = in
		}
	}
	return Config{
		Workers:   ic.Workers,
		BatchSize: ic.BatchSize,
		DryRun:    ic.DryRun,
		Locale:    rc.Locale,
		Inputs:    inputs,
	}
}

// PhaseResult holds the outcome of a single import phase.
type PhaseResult struct {
	Fragments   int
	Definitions int
	Written     int
	Fallbacks   int
	Warnings    int
	Rewrites    int
	Malformed   int
	Skipped     bool
	Duration    time.Duration
	Err         error
}

func (r *PhaseResult) account(o outcome) {
	r.Fragments++
	r.Definitions += len(o.defs)
	r.Rewrites += o.rewrites
	for _, d := range o.defs {
		if d.Fallback {
			r.Fallbacks++
		}
		r.Warnings += len(d.Warnings)
	}
}

// outcome is the parsed form of one job.
type outcome struct {
	job
	defs     []domain.ParsedDefinition
	rewrites int
}

// readFunc feeds fragments to emit in input order. A nil block means the
// fragment still has to be segmented.
type readFunc func(ctx context.Context, emit func(domain.RawFragment, *extract.Block) error) (ReadStats, error)

// Pipeline orchestrates the import phases, one per source.
type Pipeline struct {
	log     *slog.Logger
	sink    Sink
	rw      Rewriter
	cfg     Config
	observe func(outcome) error
	results map[domain.SourceCode]PhaseResult
}

// NewPipeline creates a new Pipeline. A nil sink behaves like dry-run;
// a nil rewriter leaves text as extracted.
func NewPipeline(log *slog.Logger, sink Sink, rw Rewriter, cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Pipeline{
		log:     log,
		sink:    sink,
		rw:      rw,
		cfg:     cfg,
		results: make(map[domain.SourceCode]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[domain.SourceCode]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the phases in canonical source order. If phases is
// non-empty, only the listed phases run and each must have an input;
// otherwise every source with a configured input runs.
func (p *Pipeline) Run(ctx context.Context, phases []domain.SourceCode) error {
	toRun := domain.SourceCodes()
	explicit := len(phases) > 0
	if explicit {
		filter := make(map[domain.SourceCode]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []domain.SourceCode
		for _, ph := range toRun {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	ran := 0
	for _, phase := range toRun {
		in, ok := p.cfg.Inputs[phase]
		if !ok {
			result := PhaseResult{Skipped: true}
			if explicit {
				result.Err = fmt.Errorf("%s: no input configured", phase)
				p.log.Warn("phase skipped", slog.String("phase", phase.String()), slog.String("error", result.Err.Error()))
			}
			p.results[phase] = result
			continue
		}

		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase.String()), slog.String("path", in.Path))

		result := p.runPhase(ctx, phase, in)
		result.Duration = time.Since(start)
		p.results[phase] = result
		ran++

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase.String()),
				slog.String("error", result.Err.Error()),
				slog.Int("fragments", result.Fragments),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase.String()),
				slog.Int("fragments", result.Fragments),
				slog.Int("definitions", result.Definitions),
				slog.Int("written", result.Written),
				slog.Int("fallbacks", result.Fallbacks),
				slog.Int("warnings", result.Warnings),
				slog.Int("rewrites", result.Rewrites),
				slog.Int("malformed", result.Malformed),
				slog.Duration("duration", result.Duration),
			)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", ran))
	return nil
}

// Dump parses one input and writes every record as a JSON line to w in
// input order. Nothing is persisted.
func (p *Pipeline) Dump(ctx context.Context, code domain.SourceCode, in config.SourceInput, w io.Writer) (PhaseResult, error) {
	q := *p
	q.cfg.DryRun = true
	enc := json.NewEncoder(w)
	q.observe = func(o outcome) error {
		for _, d := range o.defs {
			rec := struct {
				EntryID uuid.UUID         `json:"entry_id"`
				Source  domain.SourceCode `json:"source"`
				domain.ParsedDefinition
			}{o.frag.EntryID, o.frag.Source, d}
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
		}
		return nil
	}
	res := q.runPhase(ctx, code, in)
	return res, res.Err
}

func (p *Pipeline) runPhase(ctx context.Context, code domain.SourceCode, in config.SourceInput) PhaseResult {
	parser, err := source.Parser(code)
	if err != nil {
		return PhaseResult{Err: err}
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open %s: %w", in.Path, err)}
	}
	defer f.Close()

	var read readFunc
	switch formatOf(in) {
	case config.FormatJSONL:
		read = func(ctx context.Context, emit func(domain.RawFragment, *extract.Block) error) (ReadStats, error) {
			return ReadJSONL(ctx, f, code, func(fr domain.RawFragment) error { return emit(fr, nil) })
		}
	default:
		read = func(ctx context.Context, emit func(domain.RawFragment, *extract.Block) error) (ReadStats, error) {
			return ReadDump(ctx, f, parser.Grammar(), func(fr domain.RawFragment, b extract.Block) error { return emit(fr, &b) })
		}
	}

	res, err := p.process(ctx, parser, read)
	res.Err = err
	return res
}

// process runs reader, workers and writer concurrently. The writer
// restores input order before writing, so output is deterministic
// regardless of the worker count.
func (p *Pipeline) process(ctx context.Context, parser *extract.Parser, read readFunc) (PhaseResult, error) {
	var res PhaseResult

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job, p.cfg.Workers)
	results := make(chan outcome, p.cfg.Workers)

	g.Go(func() error {
		defer close(jobs)
		seq := 0
		stats, err := read(gctx, func(f domain.RawFragment, b *extract.Block) error {
			select {
			case jobs <- job{seq: seq, frag: f, block: b}:
				seq++
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
		res.Malformed = stats.Malformed
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer close(results)
		workers, wctx := errgroup.WithContext(gctx)
		workers.SetLimit(p.cfg.Workers)
		for j := range jobs {
			if wctx.Err() != nil {
				break
			}
			workers.Go(func() error {
				o, err := p.parse(wctx, parser, j)
				if err != nil {
					return err
				}
				select {
				case results <- o:
					return nil
				case <-wctx.Done():
					return wctx.Err()
				}
			})
		}
		return workers.Wait()
	})

	g.Go(func() error {
		return p.write(gctx, results, &res)
	})

	err := g.Wait()
	return res, err
}

func (p *Pipeline) parse(ctx context.Context, parser *extract.Parser, j job) (outcome, error) {
	var defs []domain.ParsedDefinition
	if j.block != nil {
		defs = parser.ParseBlock(j.frag, *j.block)
	} else {
		defs = parser.Parse(j.frag)
	}

	if j.frag.SenseNumberHint > 0 && len(defs) != 1 {
		return outcome{}, fmt.Errorf("%w: %s %q sense %d produced %d records",
			domain.ErrInvariantViolation, j.frag.Source, j.frag.Word, j.frag.SenseNumberHint, len(defs))
	}

	o := outcome{job: j, defs: defs}
	if p.rw != nil {
		o.rewrites = p.rw.Definitions(ctx, defs, p.cfg.Locale)
	}
	return o, nil
}

func (p *Pipeline) write(ctx context.Context, results <-chan outcome, res *PhaseResult) error {
	pending := make(map[int]outcome)
	next := 0
	batch := make([]outcome, 0, p.cfg.BatchSize)
	etymology := make(map[uuid.UUID]bool)
	senses := make(map[uuid.UUID]int)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		defer func() { batch = batch[:0] }()
		if p.cfg.DryRun || p.sink == nil {
			return nil
		}

		written := 0
		err := p.sink.RunInTx(ctx, func(ctx context.Context) error {
			written = 0
			for _, o := range batch {
				if err := p.writeOutcome(ctx, o, etymology); err != nil {
					return err
				}
				written += len(o.defs)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
		res.Written += written
		return nil
	}

	for o := range results {
		pending[o.seq] = o
		for {
			cur, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			continueSenses(&cur, senses)
			res.account(cur)
			if p.observe != nil {
				if err := p.observe(cur); err != nil {
					return err
				}
			}
			batch = append(batch, cur)
			if len(batch) >= p.cfg.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return flush()
}

// continueSenses numbers the records of a fragment after those already
// seen for the same entry in this phase, so homograph blocks and unnumbered
// rows of one headword do not overwrite each other. Fragments carrying a
// sense-number hint keep their numbers. last holds the highest sense
// number per entry.
func continueSenses(o *outcome, last map[uuid.UUID]int) {
	if len(o.defs) == 0 {
		return
	}
	id := o.frag.EntryID
	if prev := last[id]; o.frag.SenseNumberHint == 0 && o.defs[0].SenseNumber <= prev {
		shift := prev - o.defs[0].SenseNumber + 1
		for i := range o.defs {
			o.defs[i].SenseNumber += shift
		}
	}
	last[id] = max(last[id], o.defs[len(o.defs)-1].SenseNumber)
}

// writeOutcome writes the records of one fragment. Etymology is
// entry-level and written once per entry per phase.
func (p *Pipeline) writeOutcome(ctx context.Context, o outcome, etymology map[uuid.UUID]bool) error {
	entryID := o.frag.EntryID
	for _, d := range o.defs {
		parsedID, err := p.sink.WriteDefinition(ctx, entryID, o.frag.Source, d)
		if err != nil {
			return fmt.Errorf("definition %q sense %d: %w", d.MeaningTitle, d.SenseNumber, err)
		}

		for _, ex := range d.Examples {
			if err := p.sink.WriteExample(ctx, parsedID, ex); err != nil {
				return fmt.Errorf("example: %w", err)
			}
		}
		if len(d.Synonyms) > 0 {
			if err := p.sink.WriteSynonyms(ctx, parsedID, d.Synonyms); err != nil {
				return fmt.Errorf("synonyms: %w", err)
			}
		}
		for _, x := range d.CrossReferences {
			if err := p.sink.WriteCrossReference(ctx, parsedID, x.TargetWord, x.Type); err != nil {
				return fmt.Errorf("cross reference: %w", err)
			}
		}
		if d.Alias != nil {
			if err := p.sink.WriteAlias(ctx, parsedID, *d.Alias); err != nil {
				return fmt.Errorf("alias: %w", err)
			}
		}
		if d.Etymology != nil && !etymology[entryID] {
			if err := p.sink.WriteEtymology(ctx, entryID, d.Etymology.Text, d.Etymology.LanguageCode); err != nil {
				return fmt.Errorf("etymology: %w", err)
			}
			etymology[entryID] = true
		}
	}
	return nil
}
