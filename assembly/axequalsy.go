package assembly

import (
	"fmt"

	"github.com/notargets/rotdof/utils"
)

// AXequalsY computes y = A*x for a solution vector carried in the rotated
// basis. A is typically the term's materialized rotation operator (or any
// matrix assembled under the same basis convention); applying it maps
// rotated components back to physical ones so the result can be combined
// with unrotated vectors or written out.
func AXequalsY(A utils.CSR, x, y utils.Vector) (err error) {
	var (
		nr, nc = A.Dims()
	)
	if x.Len() != nc || y.Len() != nr {
		err = fmt.Errorf("dimension mismatch: A is %dx%d, len(x) = %d, len(y) = %d",
			nr, nc, x.Len(), y.Len())
		return
	}
	r := A.MulVec(x)
	copy(y.Data(), r.Data())
	return
}

// RotationMatrix materializes the global block-diagonal rotation operator
// R: one basis block per rotated vertex, identity elsewhere. Columns of R
// are the local directions, so R maps local (rotated) components to
// global physical components and R^T maps the other way. The bases come
// from the same fields the assembly pass evaluates, which keeps the
// operator consistent with every matrix this term assembled; building it
// from different field evaluations would silently break that coupling.
//
// Vertices shared between elements are evaluated once, at their first
// incident element, and the fields are functions of position only, so
// the choice of incident element does not matter.
func (t *RotationDofTerm) RotationMatrix() (R utils.CSR, err error) {
	if err = t.checkConfigured(); err != nil {
		return
	}
	var (
		msh  = t.GeometryMesh
		nd   = t.DofPerNode
		nDof = msh.NumDofs(nd)
		dok  = utils.NewDOK(nDof, nDof)
		done = make([]bool, msh.Nv)
	)
	for k := 0; k < msh.K; k++ {
		verts := msh.ElementVerts(k)
		for n, vid := range verts {
			if done[vid] {
				continue
			}
			done[vid] = true
			if t.RotatedNodes != nil && !t.RotatedNodes[vid] {
				continue
			}
			var B utils.Matrix
			if B, err = BuildBasis(msh.Coordinate(k, n), t.RadialFn, t.NormalFn); err != nil {
				return
			}
			for a := 0; a < nd; a++ {
				for b := 0; b < nd; b++ {
					dok.Accumulate(vid*nd+a, vid*nd+b, B.At(a, b))
				}
			}
		}
	}
	// Non-rotated vertices keep the identity
	for vid := 0; vid < msh.Nv; vid++ {
		if t.RotatedNodes == nil || t.RotatedNodes[vid] {
			continue
		}
		for a := 0; a < nd; a++ {
			dok.Accumulate(vid*nd+a, vid*nd+a, 1)
		}
	}
	R = dok.ToCSR()
	return
}

// UnrotateVector maps a rotated-basis vector x to physical components,
// the post-solve companion of an assembly pass that rotated the matrix.
func (t *RotationDofTerm) UnrotateVector(x utils.Vector) (y utils.Vector, err error) {
	var (
		R utils.CSR
	)
	if R, err = t.RotationMatrix(); err != nil {
		return
	}
	y = utils.NewVector(x.Len())
	err = AXequalsY(R, x, y)
	return
}

// RotateVector maps a physical vector to the rotated basis using R^T.
func (t *RotationDofTerm) RotateVector(x utils.Vector) (y utils.Vector, err error) {
	var (
		R utils.CSR
	)
	if R, err = t.RotationMatrix(); err != nil {
		return
	}
	if x.Len() != t.GeometryMesh.NumDofs(t.DofPerNode) {
		err = fmt.Errorf("dimension mismatch: len(x) = %d, want %d", x.Len(), t.GeometryMesh.NumDofs(t.DofPerNode))
		return
	}
	y = utils.NewVector(x.Len())
	var (
		yD = y.Data()
		xD = x.Data()
	)
	R.M.DoNonZero(func(i, j int, val float64) {
		yD[j] += val * xD[i] // transpose product
	})
	return
}
