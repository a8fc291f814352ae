package wrap

import runewidth "github.com/mattn/go-runewidth"

// CellWidth measures s in terminal columns. East Asian wide runes count as
// two cells, combining marks as zero.
func CellWidth(s string) float64 {
	return float64(runewidth.StringWidth(s))
}
