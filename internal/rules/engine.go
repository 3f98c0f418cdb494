// Package rules implements the ordered interpretation and recommendation
// rule engine shared by the calculators.
//
// An engine holds a declaration-ordered list of rules. Every rule whose
// predicate holds contributes all of its entries, in order; rules are not
// mutually exclusive. When no rule fires the engine emits its fallback
// entries instead.
package rules

import (
	"errors"
	"fmt"
)

// ErrDuplicateRule is returned when two rules share an ID.
var ErrDuplicateRule = errors.New("duplicate rule id")

// Rule is one (predicate, effect) pair over the facts F, emitting entries E.
type Rule[F, E any] struct {
	ID   string
	When func(F) bool
	Then func(F) []E
}

// Emit returns a Then function that always emits the given entries.
func Emit[F, E any](entries ...E) func(F) []E {
	return func(F) []E {
		return entries
	}
}

// Engine evaluates a fixed rule list against facts.
type Engine[F, E any] struct {
	rules    []Rule[F, E]
	fallback []E
}

// Option configures an Engine.
type Option[F, E any] func(*Engine[F, E])

// WithFallback sets the entries emitted when no rule fires.
func WithFallback[F, E any](entries ...E) Option[F, E] {
	return func(e *Engine[F, E]) {
		e.fallback = entries
	}
}

// NewEngine creates a new rule engine. Rule IDs must be unique and every rule
// needs both a predicate and an effect.
func NewEngine[F, E any](rules []Rule[F, E], opts ...Option[F, E]) (*Engine[F, E], error) {
	engine := &Engine[F, E]{
		rules: make([]Rule[F, E], 0, len(rules)),
	}

	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if rule.ID == "" || rule.When == nil || rule.Then == nil {
			return nil, fmt.Errorf("rule %q is incomplete", rule.ID)
		}
		if _, exists := seen[rule.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.ID)
		}
		seen[rule.ID] = struct{}{}
		engine.rules = append(engine.rules, rule)
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// MustNewEngine is like NewEngine but panics on an invalid rule list.
func MustNewEngine[F, E any](rules []Rule[F, E], opts ...Option[F, E]) *Engine[F, E] {
	engine, err := NewEngine(rules, opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Evaluate runs every rule in declaration order and returns the emitted
// entries. The returned slice is never nil.
func (e *Engine[F, E]) Evaluate(facts F) []E {
	out, _ := e.Trace(facts)
	return out
}

// Trace is Evaluate that also reports the IDs of the rules that fired.
func (e *Engine[F, E]) Trace(facts F) ([]E, []string) {
	out := make([]E, 0)
	var fired []string

	for _, rule := range e.rules {
		if !rule.When(facts) {
			continue
		}
		fired = append(fired, rule.ID)
		out = append(out, rule.Then(facts)...)
	}

	if len(fired) == 0 {
		out = append(out, e.fallback...)
	}

	return out, fired
}

// RuleIDs lists the rule IDs in declaration order.
func (e *Engine[F, E]) RuleIDs() []string {
	ids := make([]string, len(e.rules))
	for i, rule := range e.rules {
		ids[i] = rule.ID
	}
	return ids
}
