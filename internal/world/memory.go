package world

// MemoryGrid is an in-memory Grid used by the demo binary and tests.
type MemoryGrid struct {
	materials map[string]int
	cells     map[Cell]int
}

func NewMemoryGrid(materials ...string) *MemoryGrid {
	g := &MemoryGrid{
		materials: map[string]int{"air": 0},
		cells:     map[Cell]int{},
	}
	for _, name := range materials {
		g.Register(name)
	}
	return g
}

func (g *MemoryGrid) Register(name string) int {
	if id, ok := g.materials[name]; ok {
		return id
	}
	id := len(g.materials)
	g.materials[name] = id
	return id
}

func (g *MemoryGrid) ResolveMaterial(name string) (int, bool) {
	id, ok := g.materials[name]
	return id, ok
}

func (g *MemoryGrid) ClearMaterial() int {
	return g.materials["air"]
}

func (g *MemoryGrid) WriteCells(writes []CellWrite) {
	for _, w := range writes {
		if w.Material == g.ClearMaterial() {
			delete(g.cells, w.Cell)
			continue
		}
		g.cells[w.Cell] = w.Material
	}
}

func (g *MemoryGrid) At(c Cell) int {
	return g.cells[c]
}

func (g *MemoryGrid) CellCount() int {
	return len(g.cells)
}
