// Package femesh provides the minimal finite element mesh the assembly
// term needs: vertex coordinates, element-to-vertex incidence, boundary
// tag sets, and local-to-global degree of freedom maps.
package femesh

import (
	"fmt"

	"github.com/notargets/rotdof/fields"
	"github.com/notargets/rotdof/utils"
)

type Mesh struct {
	Nsd        int // number of space dimensions, 2 or 3
	K          int // number of elements
	Nv         int // number of vertices
	VX, VY, VZ utils.Vector
	EToV       utils.Matrix           // (K x nodes-per-element) incidence, zero based vertex ids
	BCVerts    map[BCFLAG]utils.Index // vertex sets per boundary tag
}

func NewMesh2D(VX, VY utils.Vector, EToV utils.Matrix) (msh *Mesh) {
	var (
		K, _ = EToV.Dims()
	)
	if VX.Len() != VY.Len() {
		panic("vertex coordinate vectors differ in length")
	}
	msh = &Mesh{
		Nsd:     2,
		K:       K,
		Nv:      VX.Len(),
		VX:      VX,
		VY:      VY,
		EToV:    EToV,
		BCVerts: make(map[BCFLAG]utils.Index),
	}
	return
}

func NewMesh3D(VX, VY, VZ utils.Vector, EToV utils.Matrix) (msh *Mesh) {
	var (
		K, _ = EToV.Dims()
	)
	if VX.Len() != VY.Len() || VX.Len() != VZ.Len() {
		panic("vertex coordinate vectors differ in length")
	}
	msh = &Mesh{
		Nsd:     3,
		K:       K,
		Nv:      VX.Len(),
		VX:      VX,
		VY:      VY,
		VZ:      VZ,
		EToV:    EToV,
		BCVerts: make(map[BCFLAG]utils.Index),
	}
	return
}

// NodesPerElement is fixed by the incidence width: triangles in 2D,
// tetrahedra in 3D for the readers here, but any simplex width works.
func (msh *Mesh) NodesPerElement() (n int) {
	_, n = msh.EToV.Dims()
	return
}

// ElementVerts returns the global vertex ids of element k.
func (msh *Mesh) ElementVerts(k int) (verts utils.Index) {
	var (
		_, nn = msh.EToV.Dims()
	)
	if k < 0 || k >= msh.K {
		panic(fmt.Errorf("element index out of range: k = %d, K = %d", k, msh.K))
	}
	verts = utils.NewIndex(nn)
	for n := 0; n < nn; n++ {
		verts[n] = int(msh.EToV.At(k, n))
	}
	return
}

// Coordinate builds the evaluation point for local node n of element k.
func (msh *Mesh) Coordinate(k, n int) (mc fields.MeshCoordinate) {
	var (
		verts = msh.ElementVerts(k)
		vid   = verts[n]
	)
	x := make([]float64, msh.Nsd)
	x[0] = msh.VX.AtVec(vid)
	x[1] = msh.VY.AtVec(vid)
	if msh.Nsd == 3 {
		x[2] = msh.VZ.AtVec(vid)
	}
	mc = fields.MeshCoordinate{
		Element:   k,
		LocalNode: n,
		X:         x,
	}
	return
}

// DofMap returns the global degree of freedom indices for element k with
// dofPerNode unknowns per node, numbered node-major: vertex v owns DOFs
// [v*dofPerNode, (v+1)*dofPerNode).
func (msh *Mesh) DofMap(k, dofPerNode int) (I utils.Index) {
	var (
		verts = msh.ElementVerts(k)
	)
	I = utils.NewIndex(len(verts) * dofPerNode)
	for n, vid := range verts {
		for d := 0; d < dofPerNode; d++ {
			I[n*dofPerNode+d] = vid*dofPerNode + d
		}
	}
	return
}

// NumDofs is the global matrix dimension for dofPerNode unknowns per vertex.
func (msh *Mesh) NumDofs(dofPerNode int) int {
	return msh.Nv * dofPerNode
}

// AddBCVerts accumulates a tagged vertex set, deduplicating repeats from
// shared boundary edges.
func (msh *Mesh) AddBCVerts(bf BCFLAG, verts utils.Index) {
	var (
		seen = make(map[int]bool)
	)
	for _, v := range msh.BCVerts[bf] {
		seen[v] = true
	}
	for _, v := range verts {
		if !seen[v] {
			msh.BCVerts[bf] = append(msh.BCVerts[bf], v)
			seen[v] = true
		}
	}
}

// TaggedVerts returns the union of the vertex sets for the given tags as
// a membership set, the form the rotation term wants for marking nodes.
func (msh *Mesh) TaggedVerts(tags ...BCFLAG) (set map[int]bool) {
	set = make(map[int]bool)
	for _, bf := range tags {
		for _, v := range msh.BCVerts[bf] {
			set[v] = true
		}
	}
	return
}
