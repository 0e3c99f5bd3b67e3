// Package fields holds the evaluable vector fields the rotation term is
// configured with. A field sees only a MeshCoordinate, so any callable
// over mesh positions can serve as the radial or normal direction.
package fields

import (
	"fmt"
	"math"
)

// MeshCoordinate is an evaluation point bound to one node of one element.
// It lives for a single element visit and is never persisted.
type MeshCoordinate struct {
	Element   int       // global element index
	LocalNode int       // node index within the element
	X         []float64 // global spatial position, len = spatial dimension
}

func (mc MeshCoordinate) Dim() int { return len(mc.X) }

// VectorField evaluates to an n-vector at a mesh coordinate, n being the
// spatial dimension. Implementations must be pure: the assembly pass
// evaluates fields from multiple goroutines.
type VectorField interface {
	Evaluate(mc MeshCoordinate) ([]float64, error)
}

// EvaluationError reports a field evaluation failure at a coordinate. It
// aborts the owning element's assembly before any scatter happens.
type EvaluationError struct {
	Coord MeshCoordinate
	Cause error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("field evaluation failed at element %d, node %d, x = %v: %s",
		e.Coord.Element, e.Coord.LocalNode, e.Coord.X, e.Cause)
}

func (e *EvaluationError) Unwrap() error { return e.Cause }

// ConstantField returns the same vector everywhere.
type ConstantField struct {
	Value []float64
}

func NewConstantField(val ...float64) *ConstantField {
	return &ConstantField{Value: val}
}

func (f *ConstantField) Evaluate(mc MeshCoordinate) (v []float64, err error) {
	if len(f.Value) != mc.Dim() {
		err = &EvaluationError{mc, fmt.Errorf("constant field dimension %d does not match coordinate dimension %d",
			len(f.Value), mc.Dim())}
		return
	}
	v = make([]float64, len(f.Value))
	copy(v, f.Value)
	return
}

// FieldFunc adapts a plain closure over positions to a VectorField.
type FieldFunc func(x []float64) ([]float64, error)

func (f FieldFunc) Evaluate(mc MeshCoordinate) (v []float64, err error) {
	if v, err = f(mc.X); err != nil {
		err = &EvaluationError{mc, err}
	}
	return
}

// RadialField evaluates to the unit vector pointing from Origin to the
// coordinate, the usual radial direction for annulus and spherical shell
// meshes. Evaluation at the origin itself has no direction and fails.
type RadialField struct {
	Origin []float64
}

func NewRadialField(origin ...float64) *RadialField {
	return &RadialField{Origin: origin}
}

func (f *RadialField) Evaluate(mc MeshCoordinate) (v []float64, err error) {
	if len(f.Origin) != mc.Dim() {
		err = &EvaluationError{mc, fmt.Errorf("radial field origin dimension %d does not match coordinate dimension %d",
			len(f.Origin), mc.Dim())}
		return
	}
	v = make([]float64, mc.Dim())
	var sum float64
	for i := range v {
		v[i] = mc.X[i] - f.Origin[i]
		sum += v[i] * v[i]
	}
	r := math.Sqrt(sum)
	if r == 0 {
		err = &EvaluationError{mc, fmt.Errorf("radial direction undefined at the origin")}
		return
	}
	for i := range v {
		v[i] /= r
	}
	return
}
