package femesh

import "strings"

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Dirichlet
	BC_Slip
	BC_Far
	BC_Wall
	BC_Neuman
	BC_Out
)

var BCNameMap = map[string]BCFLAG{
	"inflow":    BC_In,
	"in":        BC_In,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"wall":      BC_Wall,
	"far":       BC_Far,
	"dirichlet": BC_Dirichlet,
	"neuman":    BC_Neuman,
	"slip":      BC_Slip,
}

func NewBCFlag(name string) (bf BCFLAG) {
	var (
		ok bool
	)
	label := strings.ToLower(strings.TrimSpace(name))
	if bf, ok = BCNameMap[label]; !ok {
		bf = BC_None
	}
	return
}

var bcNames = [...]string{"none", "in", "dirichlet", "slip", "far", "wall", "neuman", "out"}

func (bf BCFLAG) String() string {
	if int(bf) >= len(bcNames) {
		return "none"
	}
	return bcNames[bf]
}
