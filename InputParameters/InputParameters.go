package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type AssemblyParameters struct {
	Title          string    `yaml:"Title"`
	Dimension      int       `yaml:"Dimension"`
	DofPerNode     int       `yaml:"DofPerNode"`
	RotationSide   string    `yaml:"RotationSide"`  // both, rows or cols
	RotatedBCTags  []string  `yaml:"RotatedBCTags"` // boundary tags whose nodes rotate, e.g. [slip]
	RadialOrigin   []float64 `yaml:"RadialOrigin"`  // origin of the radial direction field
	Normal         []float64 `yaml:"Normal"`        // constant normal direction; empty means radial outward
	ParallelDegree int       `yaml:"ParallelDegree"`
	MeshFile       string    `yaml:"MeshFile"`
}

func (ap *AssemblyParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ap)
}

func (ap *AssemblyParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ap.Title)
	fmt.Printf("[%d]\t\t\t= Dimension\n", ap.Dimension)
	fmt.Printf("[%d]\t\t\t= DofPerNode\n", ap.DofPerNode)
	fmt.Printf("[%s]\t\t\t= RotationSide\n", ap.RotationSide)
	fmt.Printf("[%d]\t\t\t= ParallelDegree\n", ap.ParallelDegree)
	fmt.Printf("\"%s\"\t= MeshFile\n", ap.MeshFile)
	tags := make([]string, len(ap.RotatedBCTags))
	copy(tags, ap.RotatedBCTags)
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("RotatedBCTags[%s]\n", tag)
	}
}

// Validate fills defaults and rejects inconsistent combinations before
// any mesh or field construction happens.
func (ap *AssemblyParameters) Validate() (err error) {
	if ap.Dimension == 0 {
		ap.Dimension = 2
	}
	if ap.Dimension != 2 && ap.Dimension != 3 {
		return fmt.Errorf("Dimension must be 2 or 3, got %d", ap.Dimension)
	}
	if ap.DofPerNode == 0 {
		ap.DofPerNode = ap.Dimension
	}
	if ap.DofPerNode != ap.Dimension {
		return fmt.Errorf("DofPerNode must equal Dimension for rotated assembly, got %d vs %d",
			ap.DofPerNode, ap.Dimension)
	}
	if ap.RotationSide == "" {
		ap.RotationSide = "both"
	}
	if ap.ParallelDegree < 1 {
		ap.ParallelDegree = 1
	}
	if len(ap.Normal) != 0 && len(ap.Normal) != ap.Dimension {
		return fmt.Errorf("Normal must have %d components, got %d", ap.Dimension, len(ap.Normal))
	}
	if len(ap.RadialOrigin) != 0 && len(ap.RadialOrigin) != ap.Dimension {
		return fmt.Errorf("RadialOrigin must have %d components, got %d", ap.Dimension, len(ap.RadialOrigin))
	}
	return
}
