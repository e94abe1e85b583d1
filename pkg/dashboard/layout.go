package dashboard

// Placement is a tile's position on the grid, in cells.
type Placement struct {
	Tile Tile
	Col  int
	Row  int
	Cols int
	Rows int
}

// Columns picks the grid column count for a viewport width in terminal
// cells: four on wide screens, two on medium, one on narrow.
func Columns(width int) int {
	switch {
	case width >= 120:
		return 4
	case width >= 60:
		return 2
	default:
		return 1
	}
}

// Layout places tiles in order with dense packing: each tile takes the
// first free slot scanning rows top to bottom, left to right. Column spans
// wider than the grid are clamped.
func Layout(tiles []Tile, columns int) []Placement {
	if columns < 1 {
		columns = 1
	}
	var grid occupancy
	out := make([]Placement, 0, len(tiles))
	for _, t := range tiles {
		cols, rows := t.Size.Span()
		if cols > columns {
			cols = columns
		}
		row, col := grid.firstFit(columns, cols, rows)
		grid.fill(columns, row, col, cols, rows)
		out = append(out, Placement{Tile: t, Col: col, Row: row, Cols: cols, Rows: rows})
	}
	return out
}

// Rows is the number of grid rows the placements use.
func Rows(ps []Placement) int {
	n := 0
	for _, p := range ps {
		if end := p.Row + p.Rows; end > n {
			n = end
		}
	}
	return n
}

type occupancy [][]bool

func (o occupancy) taken(row, col int) bool {
	if row >= len(o) {
		return false
	}
	return o[row][col]
}

func (o occupancy) fits(row, col, cols, rows int) bool {
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			if o.taken(r, c) {
				return false
			}
		}
	}
	return true
}

func (o occupancy) firstFit(columns, cols, rows int) (int, int) {
	for row := 0; ; row++ {
		for col := 0; col+cols <= columns; col++ {
			if o.fits(row, col, cols, rows) {
				return row, col
			}
		}
	}
}

func (o *occupancy) fill(columns, row, col, cols, rows int) {
	for len(*o) < row+rows {
		*o = append(*o, make([]bool, columns))
	}
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			(*o)[r][c] = true
		}
	}
}
