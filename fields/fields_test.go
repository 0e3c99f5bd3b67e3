package fields

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantField(t *testing.T) {
	var (
		mc = MeshCoordinate{Element: 0, LocalNode: 1, X: []float64{2, 3}}
	)
	{
		f := NewConstantField(0, 1)
		v, err := f.Evaluate(mc)
		assert.NoError(t, err)
		assert.Equal(t, []float64{0, 1}, v)
		// callers get a copy, not the field's backing slice
		v[0] = 99
		assert.Equal(t, []float64{0, 1}, f.Value)
	}
	// Dimension mismatch is an evaluation error at the coordinate
	{
		f := NewConstantField(0, 0, 1)
		_, err := f.Evaluate(mc)
		assert.Error(t, err)
		var ee *EvaluationError
		assert.ErrorAs(t, err, &ee)
		assert.Equal(t, 0, ee.Coord.Element)
	}
}

func TestRadialField(t *testing.T) {
	{
		f := NewRadialField(0, 0)
		v, err := f.Evaluate(MeshCoordinate{X: []float64{3, 4}})
		assert.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, v, 1.e-14)
		assert.InDelta(t, 1., math.Hypot(v[0], v[1]), 1.e-14)
	}
	// Off-center origin
	{
		f := NewRadialField(1, 1)
		v, err := f.Evaluate(MeshCoordinate{X: []float64{1, 3}})
		assert.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0, 1}, v, 1.e-14)
	}
	// No direction at the origin itself
	{
		f := NewRadialField(2, 2)
		_, err := f.Evaluate(MeshCoordinate{X: []float64{2, 2}})
		assert.Error(t, err)
	}
	{
		f := NewRadialField(0, 0)
		_, err := f.Evaluate(MeshCoordinate{X: []float64{1, 1, 1}})
		assert.Error(t, err)
	}
}

func TestFieldFunc(t *testing.T) {
	// Closure errors come back wrapped with the failing coordinate
	{
		cause := fmt.Errorf("lookup failed")
		f := FieldFunc(func(x []float64) ([]float64, error) {
			return nil, cause
		})
		_, err := f.Evaluate(MeshCoordinate{Element: 3, LocalNode: 1, X: []float64{0, 0}})
		var ee *EvaluationError
		assert.ErrorAs(t, err, &ee)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 3, ee.Coord.Element)
		assert.Contains(t, err.Error(), "element 3")
	}
	// Successful closures pass through untouched
	{
		f := FieldFunc(func(x []float64) ([]float64, error) {
			return []float64{-x[1], x[0]}, nil
		})
		v, err := f.Evaluate(MeshCoordinate{X: []float64{1, 2}})
		assert.NoError(t, err)
		assert.Equal(t, []float64{-2, 1}, v)
	}
}
