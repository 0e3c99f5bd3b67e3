package assembly

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/rotdof/femesh"
	"github.com/notargets/rotdof/utils"
)

// Integrator computes the unrotated local stiffness matrix for one
// element into K, sized (nodes*dofPerNode) square. The rotation term
// treats it as an external collaborator: shape functions, constitutive
// operator and quadrature all live behind this interface.
type Integrator interface {
	LocalMatrix(msh *femesh.Mesh, k int, K utils.Matrix) error
}

// LaplaceIntegrator is the reference integrator used by the driver and
// tests: exact P1 stiffness for triangles and tetrahedra, applied
// componentwise when DofPerNode > 1. Gradients of linear shape functions
// are constant, so no quadrature loop is needed.
type LaplaceIntegrator struct {
	DofPerNode int
}

func (li LaplaceIntegrator) LocalMatrix(msh *femesh.Mesh, k int, K utils.Matrix) (err error) {
	var (
		nn = msh.NodesPerElement()
		nd = li.DofPerNode
	)
	if nr, nc := K.Dims(); nr != nn*nd || nc != nn*nd {
		err = fmt.Errorf("local matrix is %dx%d, want %dx%d", nr, nc, nn*nd, nn*nd)
		return
	}
	var grads [][]float64 // [node][nsd] shape function gradients
	var measure float64   // element area or volume
	switch {
	case msh.Nsd == 2 && nn == 3:
		grads, measure, err = triGradients(msh, k)
	case msh.Nsd == 3 && nn == 4:
		grads, measure, err = tetGradients(msh, k)
	default:
		err = fmt.Errorf("unsupported element: %d nodes in %dD", nn, msh.Nsd)
		return
	}
	if err != nil {
		return
	}
	K.Zero()
	for i := 0; i < nn; i++ {
		for j := 0; j < nn; j++ {
			var dot float64
			for d := 0; d < msh.Nsd; d++ {
				dot += grads[i][d] * grads[j][d]
			}
			val := measure * dot
			for d := 0; d < nd; d++ {
				K.Set(i*nd+d, j*nd+d, val)
			}
		}
	}
	return
}

func triGradients(msh *femesh.Mesh, k int) (grads [][]float64, area float64, err error) {
	var (
		verts   = msh.ElementVerts(k)
		x, y    [3]float64
		twoArea float64
	)
	for n := 0; n < 3; n++ {
		x[n] = msh.VX.AtVec(verts[n])
		y[n] = msh.VY.AtVec(verts[n])
	}
	twoArea = (x[1]-x[0])*(y[2]-y[0]) - (x[2]-x[0])*(y[1]-y[0])
	if twoArea <= BasisTol {
		err = fmt.Errorf("%w: element %d has area %g", ErrDegenerateElement, k, 0.5*twoArea)
		return
	}
	area = 0.5 * twoArea
	grads = make([][]float64, 3)
	for i := 0; i < 3; i++ {
		j, m := (i+1)%3, (i+2)%3
		grads[i] = []float64{
			(y[j] - y[m]) / twoArea,
			(x[m] - x[j]) / twoArea,
		}
	}
	return
}

func tetGradients(msh *femesh.Mesh, k int) (grads [][]float64, vol float64, err error) {
	var (
		verts = msh.ElementVerts(k)
		x     [4][3]float64
	)
	for n := 0; n < 4; n++ {
		x[n][0] = msh.VX.AtVec(verts[n])
		x[n][1] = msh.VY.AtVec(verts[n])
		x[n][2] = msh.VZ.AtVec(verts[n])
	}
	// Edge matrix J with columns v1-v0, v2-v0, v3-v0
	J := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for n := 1; n < 4; n++ {
			J.Set(i, n-1, x[n][i]-x[0][i])
		}
	}
	det := mat.Det(J)
	if det <= BasisTol {
		err = fmt.Errorf("%w: element %d has volume %g", ErrDegenerateElement, k, det/6)
		return
	}
	vol = det / 6
	var Jinv mat.Dense
	if ierr := Jinv.Inverse(J); ierr != nil {
		err = fmt.Errorf("%w: element %d: %s", ErrDegenerateElement, k, ierr)
		return
	}
	// Rows of J^-1 are the gradients of the barycentric coordinates of
	// nodes 1..3; node 0 closes the partition of unity.
	grads = make([][]float64, 4)
	grads[0] = make([]float64, 3)
	for n := 1; n < 4; n++ {
		grads[n] = make([]float64, 3)
		for d := 0; d < 3; d++ {
			grads[n][d] = Jinv.At(n-1, d)
			grads[0][d] -= grads[n][d]
		}
	}
	return
}
