package matrix

import "fmt"

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int
	data []float64
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("At", row, col, ErrIndexOutOfBounds)
	}
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns value v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep copy of the Dense matrix.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	s := ""
	for i := 0; i < m.r; i++ {
		s += "["
		for j := 0; j < m.c; j++ {
			s += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}
	return s
}
