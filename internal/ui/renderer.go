package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/gbademo/internal/entity"
	"github.com/samdwyer/gbademo/internal/world"
)

// CellsPerTile is how many terminal columns one map tile covers, so tiles
// look roughly square.
const CellsPerTile = 2

// windowDim is how far the area outside the window is blended towards black.
const windowDim = 0.65

var backdrop = colorful.Color{R: 0.11, G: 0.17, B: 0.33}

// Scene is everything drawn in one frame.
type Scene struct {
	Background *world.Background
	Sprites    []*entity.Sprite // drawn in order; later sprites cover earlier ones
	Window     bool             // window/blend effect enabled
	Status     string           // HUD line
}

// Renderer handles drawing the demo to the screen.
type Renderer struct {
	screen *Screen
	colors map[world.Tile]colorful.Color
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{
		screen: screen,
		colors: make(map[world.Tile]colorful.Color),
	}
}

// PlayArea returns the size of the region the sprite may move in: the whole
// screen except the HUD line.
func (r *Renderer) PlayArea() (width, height int) {
	w, h := r.screen.Size()
	return w, max(h-1, 0)
}

// Render draws the background, the sprites and the HUD.
func (r *Renderer) Render(scene Scene) {
	r.screen.Clear()
	width, height := r.PlayArea()
	win := windowRect(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := scene.Background.TileAtScreen(x/CellsPerTile, y)
			dim := scene.Window && !win.contains(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.tileStyle(tile, dim))
		}
	}

	spriteStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Background(tcell.ColorBlack).
		Bold(true)
	area := rect{w: width, h: height}
	for _, sprite := range scene.Sprites {
		for dy := 0; dy < sprite.Height; dy++ {
			for dx := 0; dx < sprite.Width; dx++ {
				x, y := sprite.X+dx, sprite.Y+dy
				if area.contains(x, y) {
					r.screen.SetContent(x, y, sprite.Rune(), spriteStyle)
				}
			}
		}
	}

	r.RenderMessage(scene.Status, height)
	r.screen.Show()
}

// RenderMessage displays a message on row y, clipped to the screen width.
// Text is laid out by grapheme cluster so wide characters take two cells.
func (r *Renderer) RenderMessage(msg string, y int) {
	width, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	x := 0
	g := uniseg.NewGraphemes(msg)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if x+w > width {
			break
		}
		r.screen.SetCluster(x, y, runes[0], runes[1:], style)
		x += w
	}
}

// tileStyle returns the style for a tile, blended towards black when dim.
func (r *Renderer) tileStyle(tile world.Tile, dim bool) tcell.Style {
	fg := r.tileColor(tile)
	bg := backdrop
	if dim {
		fg = fg.BlendRgb(colorful.Color{}, windowDim)
		bg = bg.BlendRgb(colorful.Color{}, windowDim)
	}
	return tcell.StyleDefault.Foreground(toTCell(fg)).Background(toTCell(bg))
}

// tileColor assigns each tile id a stable hue.
func (r *Renderer) tileColor(tile world.Tile) colorful.Color {
	if tile.IsEmpty() {
		return backdrop
	}
	if c, ok := r.colors[tile]; ok {
		return c
	}
	hue := int(tile) * 67 % 360
	c := colorful.Hsv(float64(hue), 0.55, 0.85)
	r.colors[tile] = c
	return c
}

func toTCell(c colorful.Color) tcell.Color {
	red, green, blue := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}

// rect is a screen rectangle in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// windowRect returns the centred window covering half the play area.
func windowRect(width, height int) rect {
	w, h := width/2, height/2
	return rect{x: (width - w) / 2, y: (height - h) / 2, w: w, h: h}
}
