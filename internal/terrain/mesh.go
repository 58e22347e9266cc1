package terrain

import (
	"github.com/Faultbox/fractal-terrain/pkg/math"
)

// BuildMesh creates a triangle mesh from a tile grid.
// Each cell becomes two triangles, (11, 21, 12) and (22, 12, 21), where the
// digits name the x and z corner of the cell. Every triangle owns its three
// vertices so it can carry a flat face normal; call SmoothNormals to blend them.
func BuildMesh(g *Grid) *Mesh {
	cells := g.Length * g.Length
	vertices := make([]Vertex, 0, cells*6)
	indices := make([]uint32, 0, cells*6)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for dx := 0; dx < g.Length; dx++ {
		x1 := g.Origin.X + dx
		x2 := x1 + 1
		for dz := 0; dz < g.Length; dz++ {
			z1 := g.Origin.Z + dz
			z2 := z1 + 1

			p11 := math.Vec3{X: float32(x1), Y: float32(g.At(dx, dz)), Z: float32(z1)}
			p12 := math.Vec3{X: float32(x1), Y: float32(g.At(dx, dz+1)), Z: float32(z2)}
			p21 := math.Vec3{X: float32(x2), Y: float32(g.At(dx+1, dz)), Z: float32(z1)}
			p22 := math.Vec3{X: float32(x2), Y: float32(g.At(dx+1, dz+1)), Z: float32(z2)}

			for _, p := range [4]math.Vec3{p11, p12, p21, p22} {
				updateBounds(&bounds, p.Array())
			}

			vertices, indices = appendTriangle(vertices, indices, p11, p21, p12)
			vertices, indices = appendTriangle(vertices, indices, p22, p12, p21)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}
}

// FaceNormal returns normalize(cross(c-a, b-a)), which points up (+Y) for
// the winding BuildMesh emits.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return c.Sub(a).Cross(b.Sub(a)).Normalize()
}

func appendTriangle(vertices []Vertex, indices []uint32, a, b, c math.Vec3) ([]Vertex, []uint32) {
	normal := FaceNormal(a, b, c).Array()

	baseIdx := uint32(len(vertices))
	vertices = append(vertices,
		Vertex{Position: a.Array(), Normal: normal},
		Vertex{Position: b.Array(), Normal: normal},
		Vertex{Position: c.Array(), Normal: normal},
	)
	indices = append(indices, baseIdx, baseIdx+1, baseIdx+2)
	return vertices, indices
}

// SmoothNormals averages normals at shared vertex positions.
// This removes the faceted look of per-triangle normals.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range indices {
			n := vertices[idx].Normal
			sum = sum.Add(math.Vec3{X: n[0], Y: n[1], Z: n[2]})
		}

		avg := sum.Normalize().Array()
		for _, idx := range indices {
			vertices[idx].Normal = avg
		}
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
