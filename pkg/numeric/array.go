package numeric

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when a shape does not describe the data it is
// paired with.
var ErrShapeMismatch = errors.New("shape does not match data")

// An Array is an n-dimensional view over a flat, row-major backing slice.
//
// The last dimension varies fastest, so a 2-D Array with shape (rows, cols)
// stores element (r, c) at index r*cols + c.
type Array[T any] struct {
	shape []int
	data  []T
}

// New wraps data in an Array of the given shape. The data is not copied.
func New[T any](data []T, shape ...int) (Array[T], error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return Array[T]{}, fmt.Errorf("%w: negative dimension in %v", ErrShapeMismatch, shape)
		}
		n *= d
	}
	if len(shape) == 0 {
		shape = []int{len(data)}
		n = len(data)
	}
	if n != len(data) {
		return Array[T]{}, fmt.Errorf("%w: shape %v holds %d elements, got %d", ErrShapeMismatch, shape, n, len(data))
	}

	return Array[T]{shape: append([]int(nil), shape...), data: data}, nil
}

// Full returns a new Array of the given shape with every element set to v.
func Full[T any](v T, shape ...int) Array[T] {
	n := 1
	for _, d := range shape {
		n *= d
	}

	data := make([]T, n)
	for i := range data {
		data[i] = v
	}

	return Array[T]{shape: append([]int(nil), shape...), data: data}
}

// FromRows copies a rectangular slice of rows into a 2-D Array.
func FromRows[T any](rows [][]T) (Array[T], error) {
	if len(rows) == 0 {
		return Array[T]{shape: []int{0, 0}}, nil
	}

	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Array[T]{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}

	return Array[T]{shape: []int{len(rows), cols}, data: data}, nil
}

// Shape returns a copy of the dimensions of a.
func (a Array[T]) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Len is the total number of elements.
func (a Array[T]) Len() int {
	return len(a.data)
}

// Data returns the backing slice. Writes through it are visible in a.
func (a Array[T]) Data() []T {
	return a.data
}

// At returns the element at the given multi-dimensional index.
// It panics if the index has the wrong rank or is out of range.
func (a Array[T]) At(idx ...int) T {
	return a.data[a.offset(idx)]
}

// Set stores v at the given multi-dimensional index.
func (a Array[T]) Set(v T, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a Array[T]) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("numeric: index %v has rank %d, array has rank %d", idx, len(idx), len(a.shape)))
	}

	off := 0
	for i, d := range a.shape {
		if idx[i] < 0 || idx[i] >= d {
			panic(fmt.Sprintf("numeric: index %v out of range for shape %v", idx, a.shape))
		}
		off = off*d + idx[i]
	}
	return off
}

// Rows returns a 2-D Array as a slice of rows sharing the backing storage.
// It panics if a is not 2-D.
func (a Array[T]) Rows() [][]T {
	if len(a.shape) != 2 {
		panic(fmt.Sprintf("numeric: Rows on array of shape %v", a.shape))
	}

	h, w := a.shape[0], a.shape[1]
	rows := make([][]T, h)
	for y := range rows {
		rows[y] = a.data[y*w : (y+1)*w : (y+1)*w]
	}
	return rows
}

// Clone returns a deep copy of a.
func (a Array[T]) Clone() Array[T] {
	return Array[T]{
		shape: append([]int(nil), a.shape...),
		data:  append([]T(nil), a.data...),
	}
}

// SameShape reports whether a and b have identical dimensions.
func SameShape[T, U any](a Array[T], b Array[U]) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	return true
}
