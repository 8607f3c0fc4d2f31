// Package encoder turns feature sets into sparse numeric matrices over a
// fixed feature vocabulary, and authors into class labels.
package encoder

import (
	"slices"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Matrix is an immutable compressed sparse row matrix. Row i holds the
// columns indices[indptr[i]:indptr[i+1]] in ascending order.
type Matrix struct {
	rows, cols int
	indptr     []int
	indices    []int
	values     []float64
}

type matrixBuilder struct {
	m *Matrix
}

func newMatrixBuilder(cols, rowsHint int) *matrixBuilder {
	return &matrixBuilder{m: &Matrix{cols: cols, indptr: make([]int, 1, rowsHint+1)}}
}

// appendRow adds one row. Entries are sorted by column; zero values are
// not stored.
func (b *matrixBuilder) appendRow(cols []int, vals []float64) {
	order := make([]int, len(cols))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(x, y int) int { return cols[x] - cols[y] })
	for _, i := range order {
		if vals[i] == 0 {
			continue
		}
		b.m.indices = append(b.m.indices, cols[i])
		b.m.values = append(b.m.values, vals[i])
	}
	b.m.rows++
	b.m.indptr = append(b.m.indptr, len(b.m.indices))
}

func (b *matrixBuilder) build() *Matrix { return b.m }

// NewDenseMatrix compresses row-major dense rows of equal width.
func NewDenseMatrix(rows [][]float64) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	b := newMatrixBuilder(cols, len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, "row %d has %d columns, want %d", i, len(row), cols)
		}
		idx := make([]int, len(row))
		for j := range idx {
			idx[j] = j
		}
		b.appendRow(idx, row)
	}
	return b.build(), nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) Shape() (rows, cols int) { return m.rows, m.cols }

// NNZ is the number of stored non-zero entries.
func (m *Matrix) NNZ() int { return len(m.values) }

func (m *Matrix) Sum() float64 {
	var sum float64
	for _, v := range m.values {
		sum += v
	}
	return sum
}

func (m *Matrix) checkRow(i int) error {
	if i < 0 || i >= m.rows {
		return apperrors.Newf(apperrors.ErrIndexOutOfRange, "row %d outside [0, %d)", i, m.rows)
	}
	return nil
}

// At returns the entry at (i, j), zero when it is not stored.
func (m *Matrix) At(i, j int) (float64, error) {
	if err := m.checkRow(i); err != nil {
		return 0, err
	}
	if j < 0 || j >= m.cols {
		return 0, apperrors.Newf(apperrors.ErrIndexOutOfRange, "column %d outside [0, %d)", j, m.cols)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	if k, ok := slices.BinarySearch(m.indices[lo:hi], j); ok {
		return m.values[lo+k], nil
	}
	return 0, nil
}

// Row returns copies of the column indices and values stored in row i.
func (m *Matrix) Row(i int) (cols []int, vals []float64, err error) {
	if err := m.checkRow(i); err != nil {
		return nil, nil, err
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	return slices.Clone(m.indices[lo:hi]), slices.Clone(m.values[lo:hi]), nil
}

// RowVector expands row i into a dense gonum vector.
func (m *Matrix) RowVector(i int) (*mat.VecDense, error) {
	if err := m.checkRow(i); err != nil {
		return nil, err
	}
	if m.cols == 0 {
		return &mat.VecDense{}, nil
	}
	v := mat.NewVecDense(m.cols, nil)
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		v.SetVec(m.indices[k], m.values[k])
	}
	return v, nil
}

// Dense expands the matrix. An empty matrix gives an empty *mat.Dense.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			d.Set(i, m.indices[k], m.values[k])
		}
	}
	return d
}
