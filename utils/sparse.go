package utils

import (
	"fmt"
	"sync"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// DOK wraps a sparse dictionary-of-keys matrix for use as a global
// stiffness matrix under assembly. All insertion is additive, because
// elements sharing nodes contribute to the same entries, and block
// insertion is serialized so concurrent element workers never interleave
// partial element contributions.
type DOK struct {
	M        *sparse.DOK
	mu       *sync.Mutex
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		&sync.Mutex{},
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix      { return m.M.T() }
func (m DOK) NNZ() int           { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

// Accumulate adds val into entry (i,j), never overwrites.
func (m DOK) Accumulate(i, j int, val float64) {
	m.checkWritable()
	var (
		nr, nc = m.Dims()
	)
	if i < 0 || i >= nr || j < 0 || j >= nc {
		err := fmt.Errorf("index out of range: i,j = %d,%d, dims = %d,%d", i, j, nr, nc)
		panic(err)
	}
	m.M.Set(i, j, m.M.At(i, j)+val)
}

// AccumulateBlock adds the dense block K into the global entries addressed
// by the row and column index maps, K(i,j) -> (RI[i], CI[j]). The whole
// block goes in under one lock so an element's contribution is never
// partially visible to other workers.
func (m DOK) AccumulateBlock(RI, CI Index, K Matrix) {
	m.checkWritable()
	var (
		nr, nc = m.Dims()
		kr, kc = K.Dims()
	)
	if len(RI) != kr || len(CI) != kc {
		err := fmt.Errorf("index map does not match block: len(RI),len(CI) = %d,%d, block = %d,%d",
			len(RI), len(CI), kr, kc)
		panic(err)
	}
	if !RI.Clean(nr) || !CI.Clean(nc) {
		err := fmt.Errorf("index out of range in local-to-global map: RI = %v, CI = %v, dims = %d,%d",
			RI, CI, nr, nc)
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, I := range RI {
		for j, J := range CI {
			m.M.Set(I, J, m.M.At(I, J)+K.At(i, j))
		}
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

// CSR is the compressed post-assembly form, used for matrix-vector
// products after the element loop completes.
type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }

// MulVec computes y = A*x over the stored non-zeros.
func (m CSR) MulVec(x Vector) (y Vector) {
	var (
		nr, nc = m.Dims()
	)
	if x.Len() != nc {
		err := fmt.Errorf("dimension mismatch in MulVec: nc = %d, len(x) = %d", nc, x.Len())
		panic(err)
	}
	y = NewVector(nr)
	var (
		yD = y.Data()
		xD = x.Data()
	)
	m.M.DoNonZero(func(i, j int, val float64) {
		yD[i] += val * xD[j]
	})
	return
}
