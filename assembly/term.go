// Package assembly implements a rotated degree-of-freedom stiffness
// assembly term. Each element's local stiffness is computed by an
// external integrator, then the row/column blocks belonging to marked
// nodes are rotated from the global coordinate basis into a local basis
// built from two evaluable vector fields (a radial and a normal
// direction), and the rotated contribution is accumulated into a shared
// sparse global matrix.
package assembly

import (
	"fmt"

	"github.com/notargets/rotdof/femesh"
	"github.com/notargets/rotdof/fields"
	"github.com/notargets/rotdof/utils"
)

// StiffnessMatrixTerm is the per-element assembly capability. The global
// assembly driver calls it once per element with the element's
// local-to-global DOF maps; implementations must not scatter anything
// into the global matrix when they return an error.
type StiffnessMatrixTerm interface {
	AssembleElement(k int, global utils.DOK, rowMap, colMap utils.Index) error
}

// RotationDofTerm rotates per-node stiffness blocks into the basis
// defined by its radial and normal fields before scatter. Configuration
// is fixed before the first assembly pass; the scratch members make a
// single term instance unsafe for concurrent use, so the parallel driver
// clones one term per worker.
type RotationDofTerm struct {
	RadialFn, NormalFn fields.VectorField
	GeometryMesh       *femesh.Mesh
	Side               RotationSide
	DofPerNode         int
	RotatedNodes       map[int]bool // global vertex ids under rotation; nil rotates every node
	Integrator         Integrator

	// per-element scratch, reused across the element loop
	elStiffMat utils.Matrix
	bases      []utils.Matrix
}

func NewRotationDofTerm(msh *femesh.Mesh, integrator Integrator, dofPerNode int) (t *RotationDofTerm) {
	var (
		nn = msh.NodesPerElement()
	)
	t = &RotationDofTerm{
		GeometryMesh: msh,
		Integrator:   integrator,
		DofPerNode:   dofPerNode,
		Side:         RotateBoth,
		elStiffMat:   utils.NewMatrix(nn*dofPerNode, nn*dofPerNode),
		bases:        make([]utils.Matrix, nn),
	}
	return
}

// SetRadialFn and SetNormalFn configure the two field handles. Both must
// be set before any assembly pass and are immutable afterwards.
func (t *RotationDofTerm) SetRadialFn(fn fields.VectorField) { t.RadialFn = fn }
func (t *RotationDofTerm) SetNormalFn(fn fields.VectorField) { t.NormalFn = fn }

// SetRotatedNodes marks which global vertices receive rotation; other
// vertices keep the identity basis.
func (t *RotationDofTerm) SetRotatedNodes(set map[int]bool) { t.RotatedNodes = set }

func (t *RotationDofTerm) checkConfigured() (err error) {
	if t.RadialFn == nil || t.NormalFn == nil {
		err = fmt.Errorf("rotation term is missing its radial or normal field")
		return
	}
	if t.DofPerNode != t.GeometryMesh.Nsd {
		err = fmt.Errorf("rotation needs DofPerNode (%d) equal to the space dimension (%d) so node blocks match the basis",
			t.DofPerNode, t.GeometryMesh.Nsd)
	}
	return
}

// AssembleElement computes the rotated local stiffness of element k and
// accumulates it into the global matrix through the supplied maps. On any
// error the global matrix is untouched: field evaluation, basis
// construction and integration all complete before the single scatter at
// the end.
func (t *RotationDofTerm) AssembleElement(k int, global utils.DOK, rowMap, colMap utils.Index) (err error) {
	if err = t.checkConfigured(); err != nil {
		return
	}
	var (
		msh   = t.GeometryMesh
		verts = msh.ElementVerts(k)
	)
	if err = t.Integrator.LocalMatrix(msh, k, t.elStiffMat); err != nil {
		return
	}
	// One basis evaluation per (element, node), cached so the row and
	// column positions of a node share the identical basis instance.
	for n := range verts {
		t.bases[n] = utils.Matrix{}
		if t.RotatedNodes != nil && !t.RotatedNodes[verts[n]] {
			continue
		}
		mc := msh.Coordinate(k, n)
		if t.bases[n], err = BuildBasis(mc, t.RadialFn, t.NormalFn); err != nil {
			return
		}
	}
	rotated := RotateLocal(t.elStiffMat, t.bases, t.bases, t.Side)
	global.AccumulateBlock(rowMap, colMap, rotated)
	return
}

// clone shares the immutable configuration and allocates fresh scratch,
// giving each assembly worker its own element buffers.
func (t *RotationDofTerm) clone() (c *RotationDofTerm) {
	var (
		nn = t.GeometryMesh.NodesPerElement()
		nd = t.DofPerNode
	)
	c = &RotationDofTerm{
		RadialFn:     t.RadialFn,
		NormalFn:     t.NormalFn,
		GeometryMesh: t.GeometryMesh,
		Side:         t.Side,
		DofPerNode:   nd,
		RotatedNodes: t.RotatedNodes,
		Integrator:   t.Integrator,
		elStiffMat:   utils.NewMatrix(nn*nd, nn*nd),
		bases:        make([]utils.Matrix, nn),
	}
	return
}
