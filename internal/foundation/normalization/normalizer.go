// Package normalization maps loosely written configuration strings onto enum values.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Normalizer maps case-folded, trimmed strings (and their aliases) onto an enum.
type Normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
	canonical    []string
}

// NewNormalizer creates a normalizer. Keys of values are the canonical
// spellings; an empty input normalizes to defaultValue.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	n := &Normalizer[T]{values: make(map[string]T, len(values)), defaultValue: defaultValue}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.canonical = append(n.canonical, key)
	}
	slices.Sort(n.canonical)
	return n
}

// WithAliases registers extra spellings for existing values.
func (n *Normalizer[T]) WithAliases(aliases map[string]T) *Normalizer[T] {
	for k, v := range aliases {
		n.values[clean(k)] = v
	}
	return n
}

// Normalize returns the enum for raw, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithError returns the enum for raw. Empty input yields the
// default; unknown input is an error listing the canonical spellings.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %s", raw, strings.Join(n.canonical, ", "))
}

// ValidKeys returns the canonical spellings in sorted order.
func (n *Normalizer[T]) ValidKeys() []string {
	return slices.Clone(n.canonical)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
