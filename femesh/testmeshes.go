package femesh

import "github.com/notargets/rotdof/utils"

// Small fixed meshes used by the package tests and examples.

// SingleTriangle is one right triangle on the unit square corner.
func SingleTriangle() (msh *Mesh) {
	VX := utils.NewVector(3, []float64{0, 1, 0})
	VY := utils.NewVector(3, []float64{0, 0, 1})
	EToV := utils.NewMatrix(1, 3, []float64{
		0, 1, 2,
	})
	msh = NewMesh2D(VX, VY, EToV)
	return
}

// TwoTriangleQuad is the unit square split along the diagonal, the
// smallest mesh where two elements share vertices and their global
// contributions must sum.
func TwoTriangleQuad() (msh *Mesh) {
	VX := utils.NewVector(4, []float64{0, 1, 1, 0})
	VY := utils.NewVector(4, []float64{0, 0, 1, 1})
	EToV := utils.NewMatrix(2, 3, []float64{
		0, 1, 2,
		0, 2, 3,
	})
	msh = NewMesh2D(VX, VY, EToV)
	return
}

// SingleTet is one tetrahedron on the unit cube corner.
func SingleTet() (msh *Mesh) {
	VX := utils.NewVector(4, []float64{0, 1, 0, 0})
	VY := utils.NewVector(4, []float64{0, 0, 1, 0})
	VZ := utils.NewVector(4, []float64{0, 0, 0, 1})
	EToV := utils.NewMatrix(1, 4, []float64{
		0, 1, 2, 3,
	})
	msh = NewMesh3D(VX, VY, VZ, EToV)
	return
}

// StripMesh2D lays nTri right triangles along the x axis as independent
// pairs of shared-edge quads, handy for exercising the parallel driver
// with enough elements to shard.
func StripMesh2D(nQuads int) (msh *Mesh) {
	var (
		nv   = 2 * (nQuads + 1)
		vx   = make([]float64, nv)
		vy   = make([]float64, nv)
		eTov = make([]float64, 0, 6*nQuads)
	)
	for i := 0; i <= nQuads; i++ {
		vx[2*i] = float64(i)
		vy[2*i] = 0
		vx[2*i+1] = float64(i)
		vy[2*i+1] = 1
	}
	for i := 0; i < nQuads; i++ {
		bl, tl := 2*i, 2*i+1
		br, tr := 2*(i+1), 2*(i+1)+1
		eTov = append(eTov, float64(bl), float64(br), float64(tr))
		eTov = append(eTov, float64(bl), float64(tr), float64(tl))
	}
	VX := utils.NewVector(nv, vx)
	VY := utils.NewVector(nv, vy)
	EToV := utils.NewMatrix(2*nQuads, 3, eTov)
	msh = NewMesh2D(VX, VY, EToV)
	return
}
