// Package world provides the scrolling tiled background of the demo.
package world

// Tile is a tile id from the baked tile map.
type Tile int16

// TileEmpty is a cell with no tile; the backdrop shows through.
const TileEmpty Tile = -1

// tileGlyphs shade tiles so neighbouring ids stay distinguishable without colour.
var tileGlyphs = []rune{'█', '▓', '▒', '░'}

// IsEmpty returns true if the cell holds no tile.
func (t Tile) IsEmpty() bool {
	return t == TileEmpty
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	if t.IsEmpty() {
		return ' '
	}
	return tileGlyphs[int(t)%len(tileGlyphs)]
}
