package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// Mul
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		I := NewIdentity(2)
		A := M.Mul(I)
		assert.Equal(t, M.Data(), A.Data())
	}
	// Copy is independent of the receiver
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		A := M.Copy()
		A.Set(0, 0, 99)
		assert.Equal(t, 1., M.At(0, 0))
		assert.Equal(t, 99., A.At(0, 0))
	}
	// Zero clears in place
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		M.Zero()
		assert.Equal(t, []float64{0, 0, 0, 0}, M.Data())
	}
	// InfNormDiff
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		A := M.Copy()
		assert.Equal(t, 0., M.InfNormDiff(A))
		A.Set(1, 0, 3.5)
		assert.Equal(t, 0.5, M.InfNormDiff(A))
	}
	// Read-only protection
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("frozen")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		M.SetWritable()
		M.Set(0, 0, 1)
		assert.Equal(t, 1., M.At(0, 0))
	}
}

func TestVector(t *testing.T) {
	// Dot and Norm
	{
		v := NewVector(3, []float64{3, 4, 0})
		assert.Equal(t, 25., v.Dot(v))
		assert.Equal(t, 5., v.Norm())
	}
	// Scale changes the receiver
	{
		v := NewVector(2, []float64{1, -2})
		v.Scale(2)
		assert.Equal(t, []float64{2, -4}, v.Data())
	}
	// Min / Max
	{
		v := NewVector(4, []float64{3, -1, 7, 0})
		assert.Equal(t, -1., v.Min())
		assert.Equal(t, 7., v.Max())
	}
	// MulVec against a dense matrix
	{
		M := NewMatrix(2, 2, []float64{
			0, 1,
			-1, 0,
		})
		v := NewVector(2, []float64{2, 3})
		r := M.MulVec(v)
		assert.Equal(t, []float64{3, -2}, r.Data())
	}
}

func TestIndex(t *testing.T) {
	I := NewRange(2, 5)
	assert.Equal(t, Index{2, 3, 4, 5}, I)
	assert.True(t, I.Clean(6))
	assert.False(t, I.Clean(5))
	assert.False(t, Index{-1}.Clean(10))
	J := I.Copy()
	J[0] = 99
	assert.Equal(t, 2, I[0])
	assert.Equal(t, Index{1, 2}, NewFromFloat([]float64{1, 2}))
}
