// Package readfiles loads meshes from Gambit Neutral (.neu) files into
// the femesh representation the assembly term consumes.
package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/rotdof/femesh"
	"github.com/notargets/rotdof/utils"
)

func ReadGambit(filename string, verbose bool) (msh *femesh.Mesh) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading Gambit Neutral file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	msh = ReadGambitStream(bufio.NewReader(file), verbose)
	return
}

// ReadGambitStream parses a Gambit Neutral stream. Tests feed it inline
// fixtures without touching the filesystem.
func ReadGambitStream(reader *bufio.Reader, verbose bool) (msh *femesh.Mesh) {
	// Skip the six header lines
	skipLines(6, reader)

	// Get dimensions
	Nv, K, Nmats, Nbcs, Nsd := ReadHeader(reader)
	skipLines(2, reader)

	if verbose {
		fmt.Printf("Nv = %d, K = %d\n", Nv, K)
		fmt.Printf("Nmats = %d, Nbcs = %d\n%d space dimensions\n", Nmats, Nbcs, Nsd)
	}
	if Nsd > 3 || Nsd < 2 {
		panic("space dimensions not 2 or 3")
	}

	var (
		VX, VY, VZ utils.Vector
		EToV       utils.Matrix
	)
	if Nsd == 3 {
		VX, VY, VZ = Read3DVertices(Nv, reader)
	} else {
		VX, VY = Read2DVertices(Nv, reader)
	}
	skipLines(2, reader)

	if Nsd == 3 {
		EToV = ReadTets(K, reader)
	} else {
		EToV = ReadTris(K, reader)
	}
	skipLines(2, reader)

	if verbose {
		switch Nsd {
		case 2:
			fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
				VX.Min(), VX.Max(), VY.Min(), VY.Max())
		case 3:
			fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\nZMin/ZMax = %5.3f, %5.3f\n",
				VX.Min(), VX.Max(), VY.Min(), VY.Max(), VZ.Min(), VZ.Max())
		}
	}

	// Material group sections carry nothing the assembly term needs, but
	// they sit between the elements and the BC sections
	for i := 0; i < Nmats; i++ {
		elnum := ReadMaterialHeader(reader)
		SkipMaterialGroup(reader, elnum)
		skipLines(2, reader)
	}

	if Nsd == 3 {
		msh = femesh.NewMesh3D(VX, VY, VZ, EToV)
	} else {
		msh = femesh.NewMesh2D(VX, VY, EToV)
	}

	ReadBCS(Nbcs, reader, msh)
	return
}

// ReadBCS reads the boundary condition sections and tags the vertices of
// each boundary face on the mesh. Rotated-DOF assembly marks its node
// sets from these tags.
func ReadBCS(Nbcs int, reader *bufio.Reader, msh *femesh.Mesh) {
	var (
		line, bctyp string
		err         error
		n, bcid     int
	)
	for i := 0; i < Nbcs; i++ {
		if i != 0 {
			skipLines(1, reader)
		}
		line = getLine(reader)
		if n, err = fmt.Sscanf(line, "%32s", &bctyp); err != nil {
			panic(err)
		}
		bctyp = strings.ToLower(strings.Trim(bctyp, " "))
		var numfaces int
		if n, err = fmt.Sscanf(line, "%32s%8d%8d", &bctyp, &bcid, &numfaces); err != nil || n < 3 {
			if err == nil {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need 3, line: %s", n, line)
			}
			panic(err)
		}
		bf := femesh.NewBCFlag(bctyp)
		var verts utils.Index
		for j := 0; j < numfaces; j++ {
			line = getLine(reader)
			var kp1, n2, faceNumberp1 int
			if n, err = fmt.Sscanf(line, "%d %d %d", &kp1, &n2, &faceNumberp1); err != nil || n < 3 {
				if err == nil {
					err = fmt.Errorf("read fewer than required dimensions, read %d, need 3, line: %s", n, line)
				}
				panic(err)
			}
			verts = append(verts, faceVerts(msh, kp1-1, faceNumberp1)...)
		}
		msh.AddBCVerts(bf, verts)
		skipLines(1, reader)
	}
	return
}

// faceVerts maps the one-based Gambit face number of an element to the
// global vertex ids on that face.
func faceVerts(msh *femesh.Mesh, k, faceNumberp1 int) (verts utils.Index) {
	var (
		ev = msh.ElementVerts(k)
	)
	if msh.Nsd == 2 {
		switch faceNumberp1 {
		case 1:
			verts = utils.Index{ev[0], ev[1]}
		case 2:
			verts = utils.Index{ev[1], ev[2]}
		case 3:
			verts = utils.Index{ev[2], ev[0]}
		default:
			panic(fmt.Errorf("face number out of range for a triangle: %d", faceNumberp1))
		}
		return
	}
	switch faceNumberp1 {
	case 1:
		verts = utils.Index{ev[0], ev[1], ev[2]}
	case 2:
		verts = utils.Index{ev[0], ev[1], ev[3]}
	case 3:
		verts = utils.Index{ev[1], ev[2], ev[3]}
	case 4:
		verts = utils.Index{ev[0], ev[2], ev[3]}
	default:
		panic(fmt.Errorf("face number out of range for a tet: %d", faceNumberp1))
	}
	return
}

func SkipMaterialGroup(reader *bufio.Reader, elementCount int) {
	var (
		added int
	)
	if elementCount%10 != 0 {
		added = 1
	}
	numLines := elementCount/10 + added
	skipLines(numLines, reader)
}

func ReadMaterialHeader(reader *bufio.Reader) (elnum int) {
	/*
	   GROUP:           1 ELEMENTS:        977 MATERIAL:      1.000 NFLAGS:          0
	                     epsilon: 1.000
	          0
	*/
	var (
		line   = getLine(reader)
		n, gn  int
		matval float64
		err    error
	)
	nargs := 3
	if n, err = fmt.Sscanf(line, "GROUP: %11d ELEMENTS:%11d MATERIAL:%11f", &gn, &elnum, &matval); err != nil || n < nargs {
		if err == nil && n < nargs {
			err = fmt.Errorf("read fewer than %d dimensions, read %d, line: %s", nargs, n, line)
		}
		panic(err)
	}
	skipLines(2, reader) // group title and flags
	return
}

func ReadHeader(reader *bufio.Reader) (Nv, K, Nmats, Nbcs, Nsd int) {
	/*
		Nv      // num nodes in mesh
		K       // num elements
		Nmats   // num material groups
		Nbcs    // num boundary groups
		Nsd;    // num space dimensions
	*/
	var (
		line   = getLine(reader)
		n, dum int
		err    error
	)
	nargs := 6
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < nargs {
		if err == nil && n < nargs {
			err = fmt.Errorf("read fewer than %d dimensions, read %d, line: %s", nargs, n, line)
		}
		panic(err)
	}
	return
}

func Read2DVertices(Nv int, reader *bufio.Reader) (VX, VY utils.Vector) {
	var (
		line   string
		err    error
		n, ind int
	)
	nargs := 3
	VX, VY = utils.NewVector(Nv), utils.NewVector(Nv)
	vx, vy := VX.Data(), VY.Data()
	for i := 0; i < Nv; i++ {
		line = getLine(reader)
		var x, y float64
		if n, err = fmt.Sscanf(line, "%d %f %f", &ind, &x, &y); err != nil || n < nargs {
			if err == nil && n < nargs {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need %d\n, line: %s", n, nargs, line)
			}
			panic(err)
		}
		vx[ind-1], vy[ind-1] = x, y
	}
	return
}

func Read3DVertices(Nv int, reader *bufio.Reader) (VX, VY, VZ utils.Vector) {
	var (
		line   string
		err    error
		n, ind int
	)
	nargs := 4
	VX, VY, VZ = utils.NewVector(Nv), utils.NewVector(Nv), utils.NewVector(Nv)
	vx, vy, vz := VX.Data(), VY.Data(), VZ.Data()
	for i := 0; i < Nv; i++ {
		line = getLine(reader)
		var x, y, z float64
		if n, err = fmt.Sscanf(line, "%d %f %f %f", &ind, &x, &y, &z); err != nil || n < nargs {
			if err == nil && n < nargs {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need %d\n, line: %s", n, nargs, line)
			}
			panic(err)
		}
		vx[ind-1], vy[ind-1], vz[ind-1] = x, y, z
	}
	return
}

func ReadTets(K int, reader *bufio.Reader) (EToV utils.Matrix) {
	//---------------------------------------------
	// Tetrahedra in 3D:
	//---------------------------------------------
	//     1  6  4      248     247     385     265
	//     2  6  4      248     249     273     397
	var (
		line                       string
		err                        error
		n, ind, typ, nfaces, nargs int
	)
	EToV = utils.NewMatrix(K, 4)
	for i := 0; i < K; i++ {
		line = getLine(reader)
		nargs = 7
		var n1, n2, n3, n4 int
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d %d", &ind, &typ, &nfaces, &n1, &n2, &n3, &n4); err != nil || n < nargs {
			if err == nil && n < nargs {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need %d\n, line: %s", n, nargs, line)
			}
			panic(err)
		}
		EToV.Set(ind-1, 0, float64(n1-1))
		EToV.Set(ind-1, 1, float64(n2-1))
		EToV.Set(ind-1, 2, float64(n3-1))
		EToV.Set(ind-1, 3, float64(n4-1))
	}
	return
}

func ReadTris(K int, reader *bufio.Reader) (EToV utils.Matrix) {
	//-------------------------------------
	// Triangles in 2D:
	//-------------------------------------
	//      1  3  3        1       2       3
	//      2  3  3        3       2       4
	var (
		line                       string
		err                        error
		n, ind, typ, nfaces, nargs int
	)
	EToV = utils.NewMatrix(K, 3)
	for i := 0; i < K; i++ {
		line = getLine(reader)
		nargs = 6
		var n1, n2, n3 int
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nfaces, &n1, &n2, &n3); err != nil || n < nargs {
			if err == nil && n < nargs {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need %d\n, line: %s", n, nargs, line)
			}
			panic(err)
		}
		EToV.Set(ind-1, 0, float64(n1-1))
		EToV.Set(ind-1, 1, float64(n2-1))
		EToV.Set(ind-1, 2, float64(n3-1))
	}
	return
}

func getLine(reader *bufio.Reader) (line string) {
	var (
		err error
	)
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		panic(err)
	}
	line = strings.TrimRight(line, "\n")
	return
}

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		getLine(reader)
	}
}
