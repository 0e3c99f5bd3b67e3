package assembly

import (
	"fmt"
	"math"

	"github.com/notargets/rotdof/fields"
	"github.com/notargets/rotdof/utils"
)

const (
	// BasisTol bounds how close to zero or to parallel the evaluated
	// field vectors may be before basis construction is refused.
	BasisTol = 1.e-10
)

// BuildBasis evaluates the radial and normal fields at the coordinate and
// returns the local orthonormal rotation basis as an Nsd x Nsd matrix.
// Columns are the local directions expressed in global coordinates, with
// the constrained (normal) direction last:
//
//	2D: [ t, n ]       t = 90 degree rotation of n
//	3D: [ t1, t2, n ]  t1 = radial with its normal component removed,
//	                   t2 = n x t1, making the triad right handed
//
// A node whose normal and radial directions line up with the global axes
// therefore gets the identity basis, and its stiffness block passes
// through assembly unchanged.
func BuildBasis(mc fields.MeshCoordinate, radialFn, normalFn fields.VectorField) (R utils.Matrix, err error) {
	var (
		nsd  = mc.Dim()
		r, n []float64
	)
	if nsd != 2 && nsd != 3 {
		err = fmt.Errorf("space dimension must be 2 or 3, got %d", nsd)
		return
	}
	if n, err = normalFn.Evaluate(mc); err != nil {
		return
	}
	if r, err = radialFn.Evaluate(mc); err != nil {
		return
	}
	if len(n) != nsd || len(r) != nsd {
		err = fmt.Errorf("field evaluation dimension mismatch: len(n),len(r) = %d,%d, nsd = %d",
			len(n), len(r), nsd)
		return
	}
	nMag := norm(n)
	if nMag < BasisTol {
		err = fmt.Errorf("%w: normal vector is near zero at element %d, node %d",
			ErrDegenerateBasis, mc.Element, mc.LocalNode)
		return
	}
	for i := range n {
		n[i] /= nMag
	}
	// Remove the normal component of the radial direction. What remains
	// is the usable tangential complement; if nothing remains the two
	// fields are parallel at this node.
	dot := 0.
	for i := range r {
		dot += r[i] * n[i]
	}
	for i := range r {
		r[i] -= dot * n[i]
	}
	rMag := norm(r)
	if rMag < BasisTol {
		err = fmt.Errorf("%w: radial and normal vectors are parallel at element %d, node %d",
			ErrDegenerateBasis, mc.Element, mc.LocalNode)
		return
	}
	for i := range r {
		r[i] /= rMag
	}
	R = utils.NewMatrix(nsd, nsd)
	switch nsd {
	case 2:
		// t is n rotated by -90 degrees, so aligned fields give identity
		R.Set(0, 0, n[1])
		R.Set(1, 0, -n[0])
		R.Set(0, 1, n[0])
		R.Set(1, 1, n[1])
	case 3:
		t2 := cross(n, r)
		for i := 0; i < 3; i++ {
			R.Set(i, 0, r[i])
			R.Set(i, 1, t2[i])
			R.Set(i, 2, n[i])
		}
	}
	return
}

func norm(v []float64) (mag float64) {
	for _, val := range v {
		mag += val * val
	}
	mag = math.Sqrt(mag)
	return
}

func cross(a, b []float64) (c []float64) {
	c = []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
	return
}
