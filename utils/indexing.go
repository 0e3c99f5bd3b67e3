package utils

// Index holds zero-based index values, used here for local-to-global
// degree of freedom maps and for addressing sparse matrix blocks.
type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func NewFromFloat(IF []float64) (r Index) {
	r = make(Index, len(IF))
	for i, val := range IF {
		r[i] = int(val)
	}
	return
}

// Clean validates every index against the bounds [0,max). Used to vet
// externally supplied DOF maps before they address the global matrix.
func (I Index) Clean(max int) bool {
	for _, val := range I {
		if val < 0 || val >= max {
			return false
		}
	}
	return true
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}
