// Package qtable implements a tabular action-value function mapping
// discrete state codes to vectors of action values.
//
// Every code that has ever been looked up has a full vector with one
// value per action. Entries are only created through GetOrInsert, which
// stores a zero vector for codes that have not been seen before, so that
// repeated accesses to the same code always reference the same vector.
package qtable

import (
	"sort"

	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/state"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Table is a tabular action-value function. The zero Table is not
// usable, use New.
//
// Table is not safe for concurrent use.
type Table struct {
	actions game.ActionSet
	values  map[state.Code]*mat.VecDense
}

// New returns a new empty Table with one value per action in actions
func New(actions game.ActionSet) *Table {
	if actions.Len() == 0 {
		panic("new: cannot create table with no actions")
	}
	return &Table{
		actions: actions,
		values:  make(map[state.Code]*mat.VecDense),
	}
}

// Actions returns the action set the table is indexed by
func (t *Table) Actions() game.ActionSet {
	return t.actions
}

// Width returns the number of values per code
func (t *Table) Width() int {
	return t.actions.Len()
}

// Len returns the number of codes in the table
func (t *Table) Len() int {
	return len(t.values)
}

// GetOrInsert returns the action values of code c. If c is not in the
// table, a zero vector is inserted for c first. The returned vector is
// the table's own storage: writes to it are writes to the table.
func (t *Table) GetOrInsert(c state.Code) *mat.VecDense {
	v, ok := t.values[c]
	if !ok {
		v = mat.NewVecDense(t.Width(), nil)
		t.values[c] = v
	}
	return v
}

// Lookup returns the action values of code c without inserting it. The
// boolean reports whether c was in the table.
func (t *Table) Lookup(c state.Code) (mat.Vector, bool) {
	v, ok := t.values[c]
	if !ok {
		return nil, false
	}
	return v, true
}

// Contains returns whether c has an entry in the table
func (t *Table) Contains(c state.Code) bool {
	_, ok := t.values[c]
	return ok
}

// Max returns the maximum action value of code c, inserting c if needed
func (t *Table) Max(c state.Code) float64 {
	return floats.Max(t.GetOrInsert(c).RawVector().Data)
}

// Greedy returns the index of the action with the largest value in code
// c, inserting c if needed. Ties are broken in favour of the lowest
// index.
func (t *Table) Greedy(c state.Code) int {
	return floats.MaxIdx(t.GetOrInsert(c).RawVector().Data)
}

// Codes returns all codes in the table in lexicographic order
func (t *Table) Codes() []state.Code {
	codes := make([]state.Code, 0, len(t.values))
	for c := range t.values {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Less(codes[j]) })

	return codes
}

// Range calls f for each code in the table in lexicographic order. If f
// returns false, Range stops.
func (t *Table) Range(f func(c state.Code, values mat.Vector) bool) {
	for _, c := range t.Codes() {
		if !f(c, t.values[c]) {
			return
		}
	}
}
