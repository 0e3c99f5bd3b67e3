package assembly

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/rotdof/fields"
	"github.com/notargets/rotdof/utils"
)

func TestBuildBasis(t *testing.T) {
	var (
		tol = 1.e-10
	)
	// Aligned fields give the identity basis
	{
		mc := fields.MeshCoordinate{Element: 0, LocalNode: 0, X: []float64{0.5, 0.5}}
		R, err := BuildBasis(mc, fields.NewConstantField(1, 0), fields.NewConstantField(0, 1))
		assert.NoError(t, err)
		assert.InDelta(t, 1, R.At(0, 0), tol)
		assert.InDelta(t, 0, R.At(0, 1), tol)
		assert.InDelta(t, 0, R.At(1, 0), tol)
		assert.InDelta(t, 1, R.At(1, 1), tol)
	}
	// 45 degree normal produces the 45 degree rotation
	{
		s := 1. / math.Sqrt(2)
		mc := fields.MeshCoordinate{X: []float64{1, 0}}
		R, err := BuildBasis(mc, fields.NewConstantField(s, -s), fields.NewConstantField(s, s))
		assert.NoError(t, err)
		// columns: tangent (s,-s), normal (s,s)
		assert.InDelta(t, s, R.At(0, 0), tol)
		assert.InDelta(t, -s, R.At(1, 0), tol)
		assert.InDelta(t, s, R.At(0, 1), tol)
		assert.InDelta(t, s, R.At(1, 1), tol)
	}
	// Orthonormality holds for arbitrary non-degenerate pairs, with the
	// field magnitudes scaled away by normalization
	{
		cases := [][2][]float64{
			{{3, 0.2}, {-0.5, 2}},
			{{-1, 4}, {2, 2}},
			{{0.1, -0.7}, {5, 0.01}},
		}
		for _, c := range cases {
			mc := fields.MeshCoordinate{X: []float64{0.3, -2}}
			R, err := BuildBasis(mc, fields.NewConstantField(c[0]...), fields.NewConstantField(c[1]...))
			assert.NoError(t, err)
			checkOrthonormal(t, R, tol)
		}
	}
	// 3D: aligned fields give identity, arbitrary pairs give a
	// right-handed orthonormal triad
	{
		mc := fields.MeshCoordinate{X: []float64{1, 2, 3}}
		R, err := BuildBasis(mc, fields.NewConstantField(1, 0, 0), fields.NewConstantField(0, 0, 1))
		assert.NoError(t, err)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.
				if i == j {
					want = 1
				}
				assert.InDelta(t, want, R.At(i, j), tol)
			}
		}

		R, err = BuildBasis(mc, fields.NewConstantField(1, 2, 0.3), fields.NewConstantField(-0.2, 1, 4))
		assert.NoError(t, err)
		checkOrthonormal(t, R, tol)
		assert.InDelta(t, 1, det3(R), tol) // right handed
	}
	// Near-zero normal fails
	{
		mc := fields.MeshCoordinate{X: []float64{0, 1}}
		_, err := BuildBasis(mc, fields.NewConstantField(1, 0), fields.NewConstantField(0, 1.e-14))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerateBasis))
	}
	// Parallel radial and normal fail
	{
		mc := fields.MeshCoordinate{X: []float64{0, 1}}
		_, err := BuildBasis(mc, fields.NewConstantField(0, 2), fields.NewConstantField(0, 1))
		assert.True(t, errors.Is(err, ErrDegenerateBasis))

		mc = fields.MeshCoordinate{X: []float64{0, 1, 2}}
		_, err = BuildBasis(mc, fields.NewConstantField(1, 1, 1), fields.NewConstantField(-2, -2, -2))
		assert.True(t, errors.Is(err, ErrDegenerateBasis))
	}
	// Field evaluation failures propagate
	{
		bad := fields.FieldFunc(func(x []float64) ([]float64, error) {
			return nil, errors.New("no value here")
		})
		mc := fields.MeshCoordinate{X: []float64{0, 1}}
		_, err := BuildBasis(mc, fields.NewConstantField(1, 0), bad)
		var evalErr *fields.EvaluationError
		assert.True(t, errors.As(err, &evalErr))
	}
}

func checkOrthonormal(t *testing.T, R utils.Matrix, tol float64) {
	t.Helper()
	var (
		n, _ = R.Dims()
	)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var dot float64
			for i := 0; i < n; i++ {
				dot += R.At(i, a) * R.At(i, b)
			}
			want := 0.
			if a == b {
				want = 1
			}
			assert.InDelta(t, want, dot, tol)
		}
	}
}

func det3(R utils.Matrix) float64 {
	return R.At(0, 0)*(R.At(1, 1)*R.At(2, 2)-R.At(1, 2)*R.At(2, 1)) -
		R.At(0, 1)*(R.At(1, 0)*R.At(2, 2)-R.At(1, 2)*R.At(2, 0)) +
		R.At(0, 2)*(R.At(1, 0)*R.At(2, 1)-R.At(1, 1)*R.At(2, 0))
}
