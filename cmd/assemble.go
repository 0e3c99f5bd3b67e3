/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/rotdof/InputParameters"
	"github.com/notargets/rotdof/assembly"
	"github.com/notargets/rotdof/femesh"
	"github.com/notargets/rotdof/fields"
	"github.com/notargets/rotdof/readfiles"
	"github.com/notargets/rotdof/utils"
)

type AssembleRun struct {
	ParamsFile string
	Verbose    bool
	Profile    bool
}

// AssembleCmd represents the assemble command
var AssembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Run one rotated-DOF global assembly pass over a mesh",
	Long: `
Reads a Gambit neutral mesh and a YAML parameters file, builds the radial
and normal direction fields, assembles the rotated global stiffness
matrix and reports its statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		ar := &AssembleRun{}
		ar.ParamsFile, _ = cmd.Flags().GetString("paramsFile")
		ar.Verbose, _ = cmd.Flags().GetBool("verbose")
		ar.Profile, _ = cmd.Flags().GetBool("profile")
		ap := processInput(ar)
		RunAssemble(ar, ap)
	},
}

func processInput(ar *AssembleRun) (ap *InputParameters.AssemblyParameters) {
	var (
		err error
	)
	if len(ar.ParamsFile) == 0 {
		err = fmt.Errorf("must supply a parameters file (-I, --paramsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Annulus free-slip"
Dimension: 2
RotationSide: both
RotatedBCTags: [slip]
RadialOrigin: [0, 0]
ParallelDegree: 4
MeshFile: annulus.neu
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(ar.ParamsFile); err != nil {
		panic(err)
	}
	ap = &InputParameters.AssemblyParameters{}
	if err = ap.Parse(data); err != nil {
		panic(err)
	}
	if err = ap.Validate(); err != nil {
		panic(err)
	}
	return
}

func RunAssemble(ar *AssembleRun, ap *InputParameters.AssemblyParameters) {
	if ar.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	if ar.Verbose {
		ap.Print()
	}
	msh := readfiles.ReadGambit(ap.MeshFile, ar.Verbose)

	side, err := assembly.NewRotationSide(ap.RotationSide)
	if err != nil {
		panic(err)
	}
	term := assembly.NewRotationDofTerm(msh, assembly.LaplaceIntegrator{DofPerNode: ap.DofPerNode}, ap.DofPerNode)
	term.Side = side
	term.SetRadialFn(radialField(ap))
	term.SetNormalFn(normalField(ap))
	if len(ap.RotatedBCTags) != 0 {
		tags := make([]femesh.BCFLAG, len(ap.RotatedBCTags))
		for i, name := range ap.RotatedBCTags {
			tags[i] = femesh.NewBCFlag(name)
		}
		term.SetRotatedNodes(msh.TaggedVerts(tags...))
	}

	nDof := msh.NumDofs(ap.DofPerNode)
	global := utils.NewDOK(nDof, nDof)
	if err = assembly.AssembleAll(term, global, ap.ParallelDegree); err != nil {
		fmt.Printf("assembly failed: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("Assembled %dx%d global matrix, %d non-zeros, %d elements, %d workers\n",
		nDof, nDof, global.NNZ(), msh.K, ap.ParallelDegree)
}

func originOf(ap *InputParameters.AssemblyParameters) (origin []float64) {
	origin = ap.RadialOrigin
	if len(origin) == 0 {
		origin = make([]float64, ap.Dimension)
	}
	return
}

// normalField is the constant configured normal, or the unit outward
// direction from the origin when none is given (outward normal on a
// circular or spherical boundary).
func normalField(ap *InputParameters.AssemblyParameters) fields.VectorField {
	if len(ap.Normal) != 0 {
		return fields.NewConstantField(ap.Normal...)
	}
	return fields.NewRadialField(originOf(ap)...)
}

// radialField must not be parallel to the normal anywhere it is
// evaluated. With a constant normal the outward-from-origin direction
// works; when the normal itself is the outward direction, use the
// tangent of the circle about the origin instead.
func radialField(ap *InputParameters.AssemblyParameters) fields.VectorField {
	origin := originOf(ap)
	if len(ap.Normal) != 0 {
		return fields.NewRadialField(origin...)
	}
	outward := fields.NewRadialField(origin...)
	return fields.FieldFunc(func(x []float64) (v []float64, err error) {
		if v, err = outward.Evaluate(fields.MeshCoordinate{X: x}); err != nil {
			return
		}
		if len(v) == 2 {
			v[0], v[1] = -v[1], v[0]
			return
		}
		// 3D: any direction orthogonal to outward; take z-hat x outward,
		// falling back near the poles
		t := []float64{-v[1], v[0], 0}
		if mag := t[0]*t[0] + t[1]*t[1]; mag < 1.e-12 {
			t = []float64{1, 0, 0}
		}
		v = t
		return
	})
}

func init() {
	rootCmd.AddCommand(AssembleCmd)
	AssembleCmd.Flags().StringP("paramsFile", "I", "", "YAML file for assembly parameters like:\n\t- RotationSide\n\t- RotatedBCTags")
	AssembleCmd.Flags().BoolP("verbose", "v", false, "print mesh and parameter details while assembling")
	AssembleCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the assembly pass")
}
