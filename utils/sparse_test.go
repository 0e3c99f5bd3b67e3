package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDOK(t *testing.T) {
	// Accumulate adds, never overwrites
	{
		m := NewDOK(3, 3)
		m.Accumulate(1, 2, 2.5)
		m.Accumulate(1, 2, 0.5)
		assert.Equal(t, 3., m.At(1, 2))
	}
	// Out of range indices are programmer errors
	{
		m := NewDOK(2, 2)
		assert.Panics(t, func() { m.Accumulate(2, 0, 1) })
		assert.Panics(t, func() { m.Accumulate(0, -1, 1) })
	}
	// Block insertion through index maps
	{
		m := NewDOK(4, 4)
		K := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		RI := Index{1, 3}
		CI := Index{0, 2}
		m.AccumulateBlock(RI, CI, K)
		assert.Equal(t, 1., m.At(1, 0))
		assert.Equal(t, 2., m.At(1, 2))
		assert.Equal(t, 3., m.At(3, 0))
		assert.Equal(t, 4., m.At(3, 2))
		// a second insert at shared locations sums
		m.AccumulateBlock(RI, CI, K)
		assert.Equal(t, 8., m.At(3, 2))
	}
	// Malformed maps panic before anything is written
	{
		m := NewDOK(2, 2)
		K := NewMatrix(2, 2)
		assert.Panics(t, func() { m.AccumulateBlock(Index{0}, Index{0, 1}, K) })
		assert.Panics(t, func() { m.AccumulateBlock(Index{0, 2}, Index{0, 1}, K) })
		assert.Equal(t, 0, m.NNZ())
	}
	// Concurrent block inserts into shared entries sum correctly
	{
		m := NewDOK(2, 2)
		K := NewMatrix(2, 2, []float64{
			1, 1,
			1, 1,
		})
		I := Index{0, 1}
		wg := sync.WaitGroup{}
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for rep := 0; rep < 50; rep++ {
					m.AccumulateBlock(I, I, K)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 400., m.At(0, 0))
		assert.Equal(t, 400., m.At(1, 1))
	}
}

func TestCSR(t *testing.T) {
	// MulVec over the stored non-zeros
	{
		m := NewDOK(3, 3)
		m.Accumulate(0, 0, 2)
		m.Accumulate(0, 2, 1)
		m.Accumulate(2, 1, -1)
		A := m.ToCSR()
		y := A.MulVec(NewVector(3, []float64{1, 2, 3}))
		assert.Equal(t, []float64{5, 0, -2}, y.Data())
	}
	// Dimension mismatch panics
	{
		m := NewDOK(2, 3)
		A := m.ToCSR()
		assert.Panics(t, func() { A.MulVec(NewVector(2)) })
	}
}

func TestPartitionMap(t *testing.T) {
	// Buckets tile the range exactly, with imbalance at most one
	{
		pm := NewPartitionMap(4, 10)
		var total int
		prevEnd := 0
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			assert.Equal(t, prevEnd, kMin)
			dim := pm.GetBucketDimension(np)
			assert.Equal(t, kMax-kMin, dim)
			assert.True(t, dim == 2 || dim == 3)
			total += dim
			prevEnd = kMax
		}
		assert.Equal(t, 10, total)
	}
	// More workers than work collapses to one worker per item
	{
		pm := NewPartitionMap(8, 3)
		assert.Equal(t, 1, pm.ParallelDegree)
	}
}
