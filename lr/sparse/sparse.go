/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is a short list of int32 values; more than one value
at a position denotes a conflict in a parser table.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted by (row, column) for binary search.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     vals := M.Values(2, 3)         // returns [4711 123]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	values   []int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the index of the first triplet not stored left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

func (m *IntMatrix) find(i, j int) (int, bool) {
	k := m.search(i, j)
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, ok := m.find(i, j); ok {
		return m.values[k].values[0]
	}
	return m.nullval
}

// Values returns all the values at position (i,j) in the order they have been
// added, or nil for an empty position. The result is a copy.
func (m *IntMatrix) Values(i, j int) []int32 {
	if k, ok := m.find(i, j); ok {
		return append([]int32(nil), m.values[k].values...)
	}
	return nil
}

// Set a value in the matrix at position (i,j), replacing all values present.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.check(i, j)
	k, ok := m.find(i, j)
	if ok {
		m.values[k].values = []int32{value}
		return m
	}
	m.insert(k, triplet{row: i, col: j, values: []int32{value}})
	return m
}

// Add a value in the matrix at position (i,j). Adding a value already present
// at (i,j) has no effect.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	m.check(i, j)
	k, ok := m.find(i, j)
	if !ok {
		m.insert(k, triplet{row: i, col: j, values: []int32{value}})
		return m
	}
	for _, v := range m.values[k].values {
		if v == value {
			return m
		}
	}
	m.values[k].values = append(m.values[k].values, value)
	return m
}

// Each calls f for every position set, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, values []int32)) {
	for _, t := range m.values {
		f(t.row, t.col, append([]int32(nil), t.values...))
	}
}

func (m *IntMatrix) insert(at int, t triplet) {
	m.values = append(m.values, triplet{}) // make room
	copy(m.values[at+1:], m.values[at:])    // copy remainder values one index to right
	m.values[at] = t
}

func (m *IntMatrix) check(i, j int) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse: index (%d,%d) out of range %d x %d", i, j, m.rowcnt, m.colcnt))
	}
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}
