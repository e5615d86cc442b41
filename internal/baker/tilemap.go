package baker

import (
	"cmp"
	"fmt"
	"math"
	"os"
	"slices"
)

// EmptyTile is the table value for a map cell that holds no tile.
const EmptyTile int16 = -1

// maxCells bounds width*height so the product cannot overflow.
const maxCells = math.MaxInt32

// TileTable is layer 0 of a tile map flattened to one entry per cell,
// indexed by y*Width+x.
type TileTable struct {
	Width  int
	Height int
	Tiles  []int16
}

// At returns the entry for cell (x, y).
func (t TileTable) At(x, y int) int16 {
	return t.Tiles[y*t.Width+x]
}

// Len returns the number of cells in the table.
func (t TileTable) Len() int {
	return len(t.Tiles)
}

// BakeTileMap reads the TMX map at path and flattens its first layer.
// Each cell holds the tile's id within its tileset, or EmptyTile.
func BakeTileMap(path string) (TileTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return TileTable{}, loadErr(path, err)
	}
	defer f.Close()

	doc, err := decodeTMX(f)
	if err != nil {
		return TileTable{}, loadErr(path, err)
	}
	return bakeLayer(path, doc)
}

func bakeLayer(path string, doc *tmxDocument) (TileTable, error) {
	switch {
	case doc.FirstKind == "":
		return TileTable{}, &LayerKindError{Path: path}
	case doc.FirstKind != "layer":
		return TileTable{}, &LayerKindError{Path: path, Kind: doc.FirstKind}
	case doc.Infinite || len(doc.Layer.Data.Chunks) > 0:
		return TileTable{}, &LayerKindError{Path: path, Kind: "infinite layer"}
	}

	layer := doc.Layer
	width, height := layer.Width, layer.Height
	if width == 0 && height == 0 {
		width, height = doc.Width, doc.Height
	}
	if width <= 0 || height <= 0 || width > maxCells/height {
		return TileTable{}, loadErr(path, fmt.Errorf("layer %q has invalid size %dx%d", layer.Name, width, height))
	}

	gids, err := layer.Data.gids(width * height)
	if err != nil {
		return TileTable{}, loadErr(path, fmt.Errorf("layer %q: %w", layer.Name, err))
	}

	tilesets := slices.Clone(doc.Tilesets)
	slices.SortFunc(tilesets, func(a, b tmxTileset) int {
		return cmp.Compare(b.FirstGID, a.FirstGID)
	})

	table := TileTable{
		Width:  width,
		Height: height,
		Tiles:  make([]int16, 0, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id, err := localTileID(tilesets, gids[y*width+x])
			if err != nil {
				return TileTable{}, loadErr(path, fmt.Errorf("cell (%d,%d): %w", x, y, err))
			}
			table.Tiles = append(table.Tiles, id)
		}
	}
	return table, nil
}

// localTileID maps a global tile id to the id within its tileset.
// tilesets must be sorted by descending firstgid.
func localTileID(tilesets []tmxTileset, gid uint32) (int16, error) {
	gid &^= gidFlagMask
	if gid == 0 {
		return EmptyTile, nil
	}

	for _, ts := range tilesets {
		if ts.FirstGID == 0 || ts.FirstGID > gid {
			continue
		}
		id := gid - ts.FirstGID
		if id > math.MaxInt16 {
			return 0, fmt.Errorf("%w: %d", ErrTileIDRange, id)
		}
		return int16(id), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownGID, gid)
}
