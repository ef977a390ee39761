package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hschendel/stl"
	"github.com/titusjan/hill-shading/internal/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

// TerrainMesh triangulates g into a surface with two triangles per cell.
// Column c and row r become x and y, the height times zScale becomes z.
// Non-finite heights must be replaced before.
func TerrainMesh(name string, g *grid.Grid, zScale float64) (*stl.Solid, error) {
	if g.Rows < 2 || g.Cols < 2 {
		return nil, fmt.Errorf("a mesh needs at least 2x2 cells, got %dx%d", g.Rows, g.Cols)
	}

	vertex := func(r, c int) r3.Vec {
		return r3.Vec{X: float64(c), Y: float64(r), Z: g.At(r, c) * zScale}
	}

	solid := &stl.Solid{
		Name:      name,
		Triangles: make([]stl.Triangle, 0, 2*(g.Rows-1)*(g.Cols-1)),
	}

	for r := 0; r < g.Rows-1; r++ {
		for c := 0; c < g.Cols-1; c++ {
			a, b := vertex(r, c), vertex(r, c+1)
			d, e := vertex(r+1, c), vertex(r+1, c+1)

			solid.Triangles = append(solid.Triangles, triangle(a, b, e), triangle(a, e, d))
		}
	}

	return solid, nil
}

// triangle orders the vertices counter clockwise seen from above.
func triangle(a, b, c r3.Vec) stl.Triangle {
	n := r3.Unit(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))

	return stl.Triangle{
		Normal:   toSTL(n),
		Vertices: [3]stl.Vec3{toSTL(a), toSTL(b), toSTL(c)},
	}
}

func toSTL(v r3.Vec) stl.Vec3 {
	return stl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// SaveSTL writes the mesh of g as a binary STL file at path.
func SaveSTL(path string, g *grid.Grid, zScale float64) error {
	solid, err := TerrainMesh(filepath.Base(path), g, zScale)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	return solid.WriteFile(path)
}
