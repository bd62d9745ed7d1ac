package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(9, 0, 2)
	assert.Equal(t, int32(4711), M.Value(2, 3))
	assert.Equal(t, int32(1), M.Value(0, 9))
	assert.Equal(t, int32(2), M.Value(9, 0))
	assert.Equal(t, M.NullValue(), M.Value(3, 2))
	assert.Nil(t, M.Values(5, 5))
	assert.Equal(t, 3, M.ValueCount())
}

func TestMatrixAddCollectsValues(t *testing.T) {
	M := NewIntMatrix(4, 4, -1)
	M.Add(1, 1, 5).Add(1, 1, 7).Add(1, 1, 5)
	assert.Equal(t, []int32{5, 7}, M.Values(1, 1))
	assert.Equal(t, int32(5), M.Value(1, 1))
	assert.Equal(t, 1, M.ValueCount())
	M.Set(1, 1, 9)
	assert.Equal(t, []int32{9}, M.Values(1, 1))
}

func TestMatrixEachIsRowMajor(t *testing.T) {
	M := NewIntMatrix(5, 5, -1)
	M.Set(3, 1, 1)
	M.Set(0, 4, 2)
	M.Set(3, 0, 3)
	M.Set(1, 2, 4)
	var order []int32
	M.Each(func(i, j int, values []int32) {
		order = append(order, values[0])
	})
	assert.Equal(t, []int32{2, 4, 3, 1}, order)
}

func TestMatrixIndexOutOfRange(t *testing.T) {
	M := NewIntMatrix(2, 2, -1)
	assert.Panics(t, func() { M.Set(2, 0, 1) })
	assert.Panics(t, func() { M.Add(0, -1, 1) })
	assert.Equal(t, int32(-1), M.Value(7, 7))
}
