package assembly

import (
	"fmt"
	"strings"

	"github.com/notargets/rotdof/utils"
)

// RotationSide selects which axis of the local matrix receives rotation.
// The two-sided form Rt*K*R preserves symmetry of a symmetric operator
// and is the usual choice for constraining both test and trial spaces;
// the one-sided forms serve rectangular coupling blocks where only one
// of the two fields is expressed in the rotated basis.
type RotationSide uint8

const (
	RotateBoth RotationSide = iota
	RotateRows
	RotateCols
)

var rotationSideNames = map[string]RotationSide{
	"both": RotateBoth,
	"rows": RotateRows,
	"cols": RotateCols,
}

func NewRotationSide(label string) (side RotationSide, err error) {
	var (
		ok bool
	)
	if side, ok = rotationSideNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown rotation side %q, want one of both, rows, cols", label)
	}
	return
}

func (side RotationSide) String() string {
	switch side {
	case RotateRows:
		return "rows"
	case RotateCols:
		return "cols"
	}
	return "both"
}

// RotateLocal produces the rotated local matrix. K is blocked by node:
// row node i with basis rowBases[i] owns rows [i*nd, (i+1)*nd), nd being
// the DOF count per node, and likewise for columns. A nil basis is the
// identity and its blocks pass through untouched. The two-sided result
// for block (i,j) is rowBases[i]^T * K_ij * colBases[j].
//
// The caller must hand the same basis instance to the row and column
// positions of a node; the assembly term does so by caching one basis per
// (element, node). K itself is not modified.
func RotateLocal(K utils.Matrix, rowBases, colBases []utils.Matrix, side RotationSide) (R utils.Matrix) {
	var (
		nr, nc = K.Dims()
		nRow   = len(rowBases)
		nCol   = len(colBases)
	)
	if nRow == 0 || nr%nRow != 0 {
		panic(fmt.Errorf("row dimension %d does not block evenly over %d nodes", nr, nRow))
	}
	if nCol == 0 || nc%nCol != 0 {
		panic(fmt.Errorf("column dimension %d does not block evenly over %d nodes", nc, nCol))
	}
	var (
		ndr = nr / nRow
		ndc = nc / nCol
	)
	checkBasisDims(rowBases, ndr)
	checkBasisDims(colBases, ndc)
	R = K.Copy()
	if side == RotateBoth || side == RotateRows {
		// Row pass: block row i of R becomes rowBases[i]^T times itself
		for i, B := range rowBases {
			if B.M == nil {
				continue
			}
			rotateRowsBlock(R, i*ndr, ndr, B)
		}
	}
	if side == RotateBoth || side == RotateCols {
		for j, B := range colBases {
			if B.M == nil {
				continue
			}
			rotateColsBlock(R, j*ndc, ndc, B)
		}
	}
	return
}

// rotateRowsBlock replaces rows [r0,r0+nd) of R with B^T times those rows.
func rotateRowsBlock(R utils.Matrix, r0, nd int, B utils.Matrix) {
	var (
		_, nc = R.Dims()
		tmp   = make([]float64, nd)
	)
	for j := 0; j < nc; j++ {
		for a := 0; a < nd; a++ {
			var sum float64
			for b := 0; b < nd; b++ {
				sum += B.At(b, a) * R.At(r0+b, j)
			}
			tmp[a] = sum
		}
		for a := 0; a < nd; a++ {
			R.Set(r0+a, j, tmp[a])
		}
	}
}

// rotateColsBlock replaces columns [c0,c0+nd) of R with those columns times B.
func rotateColsBlock(R utils.Matrix, c0, nd int, B utils.Matrix) {
	var (
		nr, _ = R.Dims()
		tmp   = make([]float64, nd)
	)
	for i := 0; i < nr; i++ {
		for b := 0; b < nd; b++ {
			var sum float64
			for a := 0; a < nd; a++ {
				sum += R.At(i, c0+a) * B.At(a, b)
			}
			tmp[b] = sum
		}
		for b := 0; b < nd; b++ {
			R.Set(i, c0+b, tmp[b])
		}
	}
}

func checkBasisDims(bases []utils.Matrix, nd int) {
	for i, B := range bases {
		if B.M == nil {
			continue
		}
		br, bc := B.Dims()
		if br != nd || bc != nd {
			panic(fmt.Errorf("basis %d is %dx%d, want %dx%d to match the node block", i, br, bc, nd, nd))
		}
	}
}
