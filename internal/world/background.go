package world

import "github.com/samdwyer/gbademo/internal/gamedata"

// Background is a tile map repeated endlessly in both directions and viewed
// through a scrolling window.
type Background struct {
	Width   int
	Height  int
	tiles   []int16
	ScrollX int
	ScrollY int
}

// NewBackground wraps a row-major tile table of width*height entries.
func NewBackground(width, height int, tiles []int16) *Background {
	return &Background{
		Width:  width,
		Height: height,
		tiles:  tiles,
	}
}

// FromGameData returns the background baked into the gamedata package.
func FromGameData() *Background {
	return NewBackground(gamedata.MapWidth, gamedata.MapHeight, gamedata.TileMap[:])
}

// GetTile returns the tile at map position (x, y), wrapping out-of-range
// coordinates around the map.
func (b *Background) GetTile(x, y int) Tile {
	x = wrap(x, b.Width)
	y = wrap(y, b.Height)
	return Tile(b.tiles[y*b.Width+x])
}

// TileAtScreen returns the tile visible at screen cell (sx, sy).
func (b *Background) TileAtScreen(sx, sy int) Tile {
	return b.GetTile(sx+b.ScrollX, sy+b.ScrollY)
}

// Scroll moves the view by the given delta. The offsets stay within one map
// period so they never overflow.
func (b *Background) Scroll(dx, dy int) {
	b.ScrollX = wrap(b.ScrollX+dx, b.Width)
	b.ScrollY = wrap(b.ScrollY+dy, b.Height)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
