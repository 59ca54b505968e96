// Package csp implements a small generic finite-domain constraint
// satisfaction engine: variables with integer domains, constraints that
// tolerate partial assignments, and a lazy, depth-first backtracking solver.
//
// The engine is intentionally "pruning-free": it does not run forward
// checking or arc consistency. Every constraint is re-evaluated on each
// placement and is expected to abstain (return true) until all of its
// referenced variables are bound. This keeps the search simple; tight
// domains established by the caller do the heavy lifting instead.
package csp

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync/atomic"
)

// ErrDuplicateVariable is returned by AddVariable when the id already exists.
var ErrDuplicateVariable = errors.New("csp: duplicate variable")

// ErrUnknownVariable is returned when an operation names a variable that
// hasn't been added (or has since been removed).
var ErrUnknownVariable = errors.New("csp: unknown variable")

// VarID identifies a variable. The engine treats it as an opaque comparable
// value; callers (e.g. the harmony/builder packages) are free to encode
// richer identity into the string, such as voice.Var.String().
type VarID string

// Assignment is a (partial or complete) mapping from variable id to the
// pitch number currently bound to it.
type Assignment map[VarID]int

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	cp := make(Assignment, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}

// Constraint is a named predicate over a fixed set of variables. Check must
// tolerate partial assignments: if any of Vars is absent from the
// assignment it is passed, Check must return true (abstain).
type Constraint struct {
	Label string
	Vars  []VarID
	Check func(Assignment) bool
}

// Arity is the number of variables the constraint refers to.
func (c Constraint) Arity() int { return len(c.Vars) }

type variableEntry struct {
	domain []int
	index  int
}

// Engine owns a set of variables and constraints and can enumerate complete
// assignments satisfying all of them. An Engine is not safe for concurrent
// use; run independent instances for parallelism.
type Engine struct {
	vars        map[VarID]*variableEntry
	order       []VarID
	constraints []Constraint
	nextIndex   int
	halt        atomic.Bool
}

// NewEngine returns an empty engine ready to accept variables.
func NewEngine() *Engine {
	return &Engine{vars: make(map[VarID]*variableEntry)}
}

// AddVariable installs a new variable with the given domain. Domain order is
// preserved and is the order values are tried during search.
func (e *Engine) AddVariable(id VarID, domain []int) error {
	if _, exists := e.vars[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVariable, id)
	}
	cp := append([]int(nil), domain...)
	e.vars[id] = &variableEntry{domain: cp, index: e.nextIndex}
	e.order = append(e.order, id)
	e.nextIndex++
	return nil
}

// ReplaceVariable swaps an existing variable's domain, preserving its
// insertion order. A caller can use it to pin a voice to a fixed pitch or to
// re-specify a voice's range between searches.
func (e *Engine) ReplaceVariable(id VarID, domain []int) error {
	entry, ok := e.vars[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, id)
	}
	entry.domain = append([]int(nil), domain...)
	return nil
}

// RemoveVariable deletes a variable and every constraint that mentions it.
func (e *Engine) RemoveVariable(id VarID) error {
	if _, ok := e.vars[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, id)
	}
	delete(e.vars, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	kept := e.constraints[:0]
	for _, c := range e.constraints {
		if !mentions(c, id) {
			kept = append(kept, c)
		}
	}
	e.constraints = kept
	return nil
}

func mentions(c Constraint, id VarID) bool {
	for _, v := range c.Vars {
		if v == id {
			return true
		}
	}
	return false
}

// AddConstraint installs a constraint, failing if any of its variables is
// not already known to the engine.
func (e *Engine) AddConstraint(c Constraint) error {
	for _, v := range c.Vars {
		if _, ok := e.vars[v]; !ok {
			return fmt.Errorf("%w: %s (constraint %s)", ErrUnknownVariable, v, c.Label)
		}
	}
	e.constraints = append(e.constraints, c)
	return nil
}

// Halt requests that any in-progress or future Solutions iteration stop at
// the next assignment boundary. It is safe to call from another goroutine.
func (e *Engine) Halt() {
	e.halt.Store(true)
}

// Domain returns a copy of a variable's current domain, for inspection or
// testing.
func (e *Engine) Domain(id VarID) ([]int, error) {
	entry, ok := e.vars[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, id)
	}
	return append([]int(nil), entry.domain...), nil
}

// Solutions returns a lazy, pull-driven sequence of complete assignments
// satisfying every installed constraint. Variables are tried in
// smallest-remaining-domain order (MRV), tie-broken by insertion order,
// per spec.md §4.4; since the engine performs no propagation, this order is
// fixed for the lifetime of one search and computed once up front.
//
// Iteration stops early if ctx is cancelled or Halt is called; in either
// case the sequence simply ends, it never panics or returns an error.
func (e *Engine) Solutions(ctx context.Context) iter.Seq[Assignment] {
	return func(yield func(Assignment) bool) {
		order := e.searchOrder()
		assignment := make(Assignment, len(order))
		e.search(ctx, order, 0, assignment, yield)
	}
}

func (e *Engine) searchOrder() []VarID {
	order := append([]VarID(nil), e.order...)
	sort.SliceStable(order, func(i, j int) bool {
		return len(e.vars[order[i]].domain) < len(e.vars[order[j]].domain)
	})
	return order
}

// search returns false when the caller should stop exploring entirely
// (cancellation, halt, or the consumer returned false from yield).
func (e *Engine) search(ctx context.Context, order []VarID, depth int, assignment Assignment, yield func(Assignment) bool) bool {
	if e.halt.Load() {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	default:
	}

	if depth == len(order) {
		return yield(assignment.Clone())
	}

	id := order[depth]
	entry := e.vars[id]
	for _, value := range entry.domain {
		if e.halt.Load() {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		default:
		}

		assignment[id] = value
		if e.satisfiesAll(assignment) {
			if !e.search(ctx, order, depth+1, assignment, yield) {
				delete(assignment, id)
				return false
			}
		}
		delete(assignment, id)
	}
	return true
}

// satisfiesAll evaluates every installed constraint against the partial
// assignment. Constraints are themselves responsible for abstaining
// (returning true) when one of their variables is still unbound, so no
// separate "is this constraint applicable yet" filtering is needed here.
func (e *Engine) satisfiesAll(a Assignment) bool {
	for _, c := range e.constraints {
		if !c.Check(a) {
			return false
		}
	}
	return true
}
