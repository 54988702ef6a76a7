// Package rewrite runs grammar correction over extracted text. Guard wraps
// a Corrector so that a slow or broken correction never loses text.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
	"github.com/heartmarshall/dictionary-importer/internal/extract"
)

// DefaultTimeout bounds a single correction when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// Corrector rewrites text for the given locale.
type Corrector interface {
	AutoCorrect(ctx context.Context, text, locale string) (string, error)
}

// CorrectorFunc adapts a function to Corrector.
type CorrectorFunc func(ctx context.Context, text, locale string) (string, error)

func (f CorrectorFunc) AutoCorrect(ctx context.Context, text, locale string) (string, error) {
	return f(ctx, text, locale)
}

// Stats counts what a Guard did since it was created.
type Stats struct {
	Rewrites int64
	Timeouts int64
	Failures int64
}

// Guard wraps a Corrector with a per-call deadline and panic recovery.
// AutoCorrect on a Guard never returns an error: any failure yields the
// original text. Safe for concurrent use.
type Guard struct {
	inner   Corrector
	timeout time.Duration
	log     *slog.Logger

	rewrites atomic.Int64
	timeouts atomic.Int64
	failures atomic.Int64
}

// NewGuard creates a Guard. A non-positive timeout means DefaultTimeout.
func NewGuard(inner Corrector, timeout time.Duration, log *slog.Logger) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Guard{inner: inner, timeout: timeout, log: log}
}

type reply struct {
	text string
	err  error
}

// AutoCorrect returns the corrected text, or text itself when the inner
// corrector errors, panics, runs past the deadline, returns blank output
// or drops the terminal punctuation of the input.
func (g *Guard) AutoCorrect(ctx context.Context, text, locale string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("corrector panic: %v", r)}
			}
		}()
		out, err := g.inner.AutoCorrect(ctx, text, locale)
		done <- reply{text: out, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, context.DeadlineExceeded) {
				g.timeouts.Add(1)
			} else {
				g.failures.Add(1)
			}
			g.log.DebugContext(ctx, "rewrite failed, keeping original",
				slog.String("locale", locale),
				slog.String("error", r.err.Error()),
			)
			return text, nil
		}
		if !acceptable(text, r.text) {
			g.failures.Add(1)
			return text, nil
		}
		if r.text != text {
			g.rewrites.Add(1)
		}
		return r.text, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			g.timeouts.Add(1)
			g.log.DebugContext(ctx, "rewrite timed out, keeping original",
				slog.String("locale", locale),
				slog.Duration("timeout", g.timeout),
			)
		}
		return text, nil
	}
}

func acceptable(in, out string) bool {
	if strings.TrimSpace(out) == "" {
		return false
	}
	return !endsSentence(in) || endsSentence(out)
}

func endsSentence(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && strings.ContainsAny(s[len(s)-1:], ".!?")
}

// Definitions corrects Definition and Examples of every record in place
// and returns how many strings changed.
func (g *Guard) Definitions(ctx context.Context, defs []domain.ParsedDefinition, locale string) int {
	changed := 0
	fix := func(s string) string {
		out, _ := g.AutoCorrect(ctx, s, locale)
		if out != s {
			changed++
		}
		return out
	}
	for i := range defs {
		if defs[i].Definition != "" {
			defs[i].Definition = fix(defs[i].Definition)
		}
		for j, ex := range defs[i].Examples {
			defs[i].Examples[j] = fix(ex)
		}
		if len(defs[i].Examples) > 1 {
			defs[i].Examples = extract.DedupFold(defs[i].Examples)
		}
	}
	return changed
}

// Stats returns a snapshot of the counters.
func (g *Guard) Stats() Stats {
	return Stats{
		Rewrites: g.rewrites.Load(),
		Timeouts: g.timeouts.Load(),
		Failures: g.failures.Load(),
	}
}
