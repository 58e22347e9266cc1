// Package terrain turns height field queries into tile grids, triangle meshes
// and heightmap images.
package terrain

import "github.com/Faultbox/fractal-terrain/pkg/heightfield"

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds the CPU-side triangle mesh of one tile.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Origin is the lattice coordinate of a tile's lower corner.
type Origin struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Grid holds the lattice heights of one tile, including the shared far edge,
// so a tile of Length cells stores (Length+1)² heights.
type Grid struct {
	Origin  Origin    `json:"origin"`
	Length  int       `json:"length"`
	Heights []float64 `json:"heights"` // [dx*(Length+1)+dz]
}

// Source is the height query surface tiles are sampled from.
type Source = heightfield.LatticeSource
