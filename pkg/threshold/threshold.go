// Package threshold implements ordered band tables that map a numeric value
// onto a category, score or any other value.
//
// A table is a list of bands with increasing upper bounds. Classification
// walks the bands in order and returns the value of the first band whose
// bound admits the input. The last band is open-ended and catches everything
// else, so every value, NaN included, lands in exactly one band.
package threshold

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTable is returned when a table definition cannot classify
// values unambiguously.
var ErrInvalidTable = errors.New("invalid threshold table")

// Band is one row of a table. A value belongs to the band when it is at most
// Upper, or strictly below Upper when Exclusive is set. The Upper bound of the
// last band is ignored.
type Band[V any] struct {
	Upper     float64
	Exclusive bool
	Value     V
}

// Below returns a band admitting values strictly below upper.
func Below[V any](upper float64, value V) Band[V] {
	return Band[V]{Upper: upper, Exclusive: true, Value: value}
}

// AtMost returns a band admitting values up to and including upper.
func AtMost[V any](upper float64, value V) Band[V] {
	return Band[V]{Upper: upper, Value: value}
}

// Otherwise returns the open-ended band that terminates a table.
func Otherwise[V any](value V) Band[V] {
	return Band[V]{Upper: math.Inf(1), Value: value}
}

// Table is an immutable, validated list of bands.
type Table[V any] struct {
	bands []Band[V]
}

// New validates the bands and builds a table. Bounds must be finite and
// increasing; equal bounds are only allowed as an exclusive band followed by
// an inclusive one, which isolates a single point.
func New[V any](bands ...Band[V]) (*Table[V], error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrInvalidTable)
	}

	for i := 0; i < len(bands)-1; i++ {
		b := bands[i]
		if math.IsNaN(b.Upper) || math.IsInf(b.Upper, 0) {
			return nil, fmt.Errorf("%w: band %d has non-finite bound %v", ErrInvalidTable, i, b.Upper)
		}
		if i == 0 {
			continue
		}
		prev := bands[i-1]
		switch {
		case b.Upper > prev.Upper:
		case b.Upper == prev.Upper && prev.Exclusive && !b.Exclusive:
		default:
			return nil, fmt.Errorf("%w: band %d bound %v does not follow %v", ErrInvalidTable, i, b.Upper, prev.Upper)
		}
	}

	owned := make([]Band[V], len(bands))
	copy(owned, bands)
	return &Table[V]{bands: owned}, nil
}

// MustNew is like New but panics on an invalid table. It is meant for
// package-level tables declared as data.
func MustNew[V any](bands ...Band[V]) *Table[V] {
	t, err := New(bands...)
	if err != nil {
		panic(err)
	}
	return t
}

// Classify returns the value of the band the input falls into.
func (t *Table[V]) Classify(value float64) V {
	last := len(t.bands) - 1
	for _, b := range t.bands[:last] {
		if b.admits(value) {
			return b.Value
		}
	}
	return t.bands[last].Value
}

// Index returns the position of the band the input falls into.
func (t *Table[V]) Index(value float64) int {
	last := len(t.bands) - 1
	for i, b := range t.bands[:last] {
		if b.admits(value) {
			return i
		}
	}
	return last
}

// Len returns the number of bands.
func (t *Table[V]) Len() int {
	return len(t.bands)
}

// Bounds returns the upper bounds of every band but the last, in order.
// Tests use them to check each breakpoint.
func (t *Table[V]) Bounds() []float64 {
	out := make([]float64, 0, len(t.bands)-1)
	for _, b := range t.bands[:len(t.bands)-1] {
		out = append(out, b.Upper)
	}
	return out
}

// Values returns the band values in order.
func (t *Table[V]) Values() []V {
	out := make([]V, len(t.bands))
	for i, b := range t.bands {
		out[i] = b.Value
	}
	return out
}

func (b Band[V]) admits(value float64) bool {
	if b.Exclusive {
		return value < b.Upper
	}
	return value <= b.Upper
}
