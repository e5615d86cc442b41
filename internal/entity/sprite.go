// Package entity provides the demo's on-screen objects.
package entity

import "github.com/samdwyer/gbademo/internal/gamedata"

// Sprite is an animated object moved by the player.
type Sprite struct {
	X, Y          int // Top-left corner in screen cells
	Width, Height int // Size in screen cells
	Tag           string
	Frames        int // Frame count of Tag; 0 means a still sprite
	Frame         int // Current frame within Tag
	Glyphs        []rune
}

// NewSprite creates a sprite at the given position showing the named
// animation. The frame count is looked up by first matching tag name.
func NewSprite(x, y int, tag string) *Sprite {
	frames, _ := gamedata.FrameCount(tag)
	return &Sprite{
		X:      x,
		Y:      y,
		Width:  2,
		Height: 1,
		Tag:    tag,
		Frames: frames,
		Glyphs: []rune{'◐', '◓', '◑', '◒'},
	}
}

// MoveWithin moves the sprite by the given delta, refusing any step that
// would take it outside a bounds of width x height cells.
func (s *Sprite) MoveWithin(dx, dy, width, height int) {
	if dx > 0 && s.X < width-s.Width {
		s.X += dx
	}
	if dx < 0 && s.X > 0 {
		s.X += dx
	}
	if dy > 0 && s.Y < height-s.Height {
		s.Y += dy
	}
	if dy < 0 && s.Y > 0 {
		s.Y += dy
	}
}

// Advance steps to the next frame of the animation, looping at the end.
func (s *Sprite) Advance() {
	if s.Frames <= 0 {
		s.Frame = 0
		return
	}
	s.Frame = (s.Frame + 1) % s.Frames
}

// Rune returns the glyph for the current frame.
func (s *Sprite) Rune() rune {
	if len(s.Glyphs) == 0 {
		return '@'
	}
	return s.Glyphs[s.Frame%len(s.Glyphs)]
}
