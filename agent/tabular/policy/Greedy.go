package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/flappyq/agent/tabular/qtable"
)

// NewGreedy creates a new Greedy policy
func NewGreedy(table *qtable.Table) *EGreedy {
	p, err := NewEGreedy(0.0, rand.NewSource(0), table)
	if err != nil {
		panic(err)
	}
	return p
}
