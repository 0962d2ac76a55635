// Package state implements the discretization of continuous game
// observations into small discrete codes used to index value tables.
//
// The discretization is fixed. Any persisted value table, and any
// function approximator fit to one, is only meaningful together with
// exactly this mapping, so thresholds and feature order must not change.
package state

import "fmt"

// Features is the number of discretized features in a Code
const Features = 5

// Indices of each feature in a Code
const (
	PlayerPos = iota
	VelocityBin
	TerrainTrend
	RelativeZone
	DistanceZone
)

// Number of values each feature can take. Feature i of a valid Code lies
// in [0, Cardinality[i]).
var Cardinality = [Features]int{2, 4, 2, 3, 3}

// Code is the discrete summary of an Observation. Codes compare by
// value and can be used directly as map keys.
type Code [Features]int

// Valid returns whether each feature of the code is within its range
func (c Code) Valid() bool {
	for i, v := range c {
		if v < 0 || v >= Cardinality[i] {
			return false
		}
	}
	return true
}

// Less orders codes lexicographically
func (c Code) Less(other Code) bool {
	for i := range c {
		if c[i] != other[i] {
			return c[i] < other[i]
		}
	}
	return false
}

// Floats returns the features of the code as float64s, in order
func (c Code) Floats() []float64 {
	out := make([]float64, Features)
	for i, v := range c {
		out[i] = float64(v)
	}
	return out
}

func (c Code) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d, %d)", c[0], c[1], c[2], c[3], c[4])
}

// NumCodes returns the number of distinct valid codes
func NumCodes() int {
	n := 1
	for _, card := range Cardinality {
		n *= card
	}
	return n
}

// AllCodes returns every valid code in lexicographic order
func AllCodes() []Code {
	codes := make([]Code, 0, NumCodes())

	var c Code
	for {
		codes = append(codes, c)

		// Increment the last feature, carrying into earlier ones
		i := Features - 1
		for ; i >= 0; i-- {
			c[i]++
			if c[i] < Cardinality[i] {
				break
			}
			c[i] = 0
		}
		if i < 0 {
			return codes
		}
	}
}
