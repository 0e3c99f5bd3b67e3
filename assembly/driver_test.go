package assembly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/rotdof/femesh"
	"github.com/notargets/rotdof/fields"
	"github.com/notargets/rotdof/utils"
)

func TestAssembleAll(t *testing.T) {
	var (
		tol = 1.e-12
	)
	// The assembled matrix is independent of worker count and element
	// order: contributions only ever add
	{
		msh := femesh.StripMesh2D(6) // 12 elements, shared vertices
		radial := fields.NewRadialField(-1, -1)
		normal := fields.NewConstantField(0, 1)

		serial := utils.NewDOK(msh.NumDofs(2), msh.NumDofs(2))
		assert.NoError(t, AssembleAll(newTestTerm(msh, radial, normal), serial, 1))

		parallel := utils.NewDOK(msh.NumDofs(2), msh.NumDofs(2))
		assert.NoError(t, AssembleAll(newTestTerm(msh, radial, normal), parallel, 4))

		assert.Equal(t, serial.NNZ(), parallel.NNZ())
		nr, nc := serial.Dims()
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				assert.InDelta(t, serial.At(i, j), parallel.At(i, j), tol)
			}
		}
	}
	// Manually permuted element order agrees with the driver's order
	{
		msh := femesh.TwoTriangleQuad()
		radial := fields.NewRadialField(-0.5, -0.5)
		normal := fields.NewConstantField(1, 2)

		forward := utils.NewDOK(8, 8)
		assert.NoError(t, AssembleAll(newTestTerm(msh, radial, normal), forward, 1))

		backward := utils.NewDOK(8, 8)
		term := newTestTerm(msh, radial, normal)
		for k := msh.K - 1; k >= 0; k-- {
			dofMap := msh.DofMap(k, 2)
			assert.NoError(t, term.AssembleElement(k, backward, dofMap, dofMap))
		}
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				assert.InDelta(t, forward.At(i, j), backward.At(i, j), tol)
			}
		}
	}
	// A degenerate node surfaces as an element error from the pass
	{
		msh := femesh.TwoTriangleQuad()
		term := newTestTerm(msh, fields.NewConstantField(0, 1), fields.NewConstantField(0, 1))
		global := utils.NewDOK(8, 8)
		err := AssembleAll(term, global, 2)
		assert.True(t, errors.Is(err, ErrDegenerateBasis))
	}
	// Worker counts beyond the element count degrade to one element per
	// worker rather than failing
	{
		msh := femesh.SingleTriangle()
		term := newTestTerm(msh, fields.NewConstantField(1, 0), fields.NewConstantField(0, 1))
		global := utils.NewDOK(6, 6)
		assert.NoError(t, AssembleAll(term, global, 16))
		assert.True(t, global.NNZ() > 0)
	}
}
