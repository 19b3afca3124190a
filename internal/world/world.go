package world

// Vec3 is a continuous world position.
type Vec3 struct {
	X, Y, Z float64
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y, Z int
}

type CellWrite struct {
	Cell     Cell
	Material int
}

// Grid is the voxel world surface the engine writes courses into.
// Implementations own storage and rendering; the engine only resolves
// material names and performs batch cell writes.
type Grid interface {
	// ResolveMaterial maps a material name to its id, false if unknown.
	ResolveMaterial(name string) (int, bool)

	// ClearMaterial is the id representing empty space.
	ClearMaterial() int

	// WriteCells applies a batch of cell writes. The batch is
	// order-independent, callers deduplicate by coordinate first.
	WriteCells(writes []CellWrite)
}
