// internal/board/settle.go
//
// Gravity compaction and refill after a clear.

package board

import "fmt"

// CollapseAndRefill removes every cell flagged in cleared, lets the
// surviving cells of each column fall to the bottom in their original order,
// and fills the vacated top slots with new tiles (IsNew set). g is modified
// in place and returned.
//
// A mask whose dimensions differ from g's is a caller bug and panics.
func CollapseAndRefill(g Grid, cleared Mask, f *Factory) Grid {
	rows, cols := g.Rows(), g.Cols()
	if len(cleared) != rows || (rows > 0 && len(cleared[0]) != cols) {
		panic(fmt.Sprintf("board: mask is %dx%d, grid is %dx%d", len(cleared), maskCols(cleared), rows, cols))
	}

	column := make([]Tile, rows)
	for c := 0; c < cols; c++ {
		survivors := column[:0]
		for r := 0; r < rows; r++ {
			if !cleared[r][c] {
				survivors = append(survivors, g[r][c])
			}
		}
		need := rows - len(survivors)
		for r := rows - 1; r >= need; r-- {
			g[r][c] = survivors[r-need]
		}
		// New tiles are created bottom-most first.
		for r := need - 1; r >= 0; r-- {
			g[r][c] = f.NewTile(true)
		}
	}
	return g
}

func maskCols(m Mask) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
