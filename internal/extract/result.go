package extract

import (
	"fmt"

	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

// Result is the outcome of one field extractor: a value, whether it was
// found, and an optional warning when extraction degraded.
type Result[T any] struct {
	Value   T
	Found   bool
	Warning *domain.ExtractionWarning
}

// Get returns the value and the found flag.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.Found
}

func found[T any](v T) Result[T] {
	return Result[T]{Value: v, Found: true}
}

func none[T any]() Result[T] {
	return Result[T]{}
}

func warn[T any](field, reason string) Result[T] {
	return Result[T]{Warning: &domain.ExtractionWarning{Field: field, Reason: reason}}
}

// guard runs fn and turns a panic into a "not found" result with a warning.
// Sibling extractors keep running.
func guard[T any](field string, fn func() Result[T]) (r Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = warn[T](field, fmt.Sprintf("extractor panic: %v", p))
		}
	}()
	return fn()
}

// warnings collects the non-nil warnings of several results.
type warnings []domain.ExtractionWarning

func (w *warnings) add(ws ...*domain.ExtractionWarning) {
	for _, x := range ws {
		if x != nil {
			*w = append(*w, *x)
		}
	}
}
