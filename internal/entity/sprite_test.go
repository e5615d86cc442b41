package entity

import (
	"testing"

	"github.com/samdwyer/gbademo/internal/gamedata"
)

func TestNewSpriteLooksUpFrames(t *testing.T) {
	s := NewSprite(1, 2, "Sprite2")
	want, ok := gamedata.FrameCount("Sprite2")
	if !ok {
		t.Fatal("Sprite2 missing from baked animations")
	}
	if s.Frames != want {
		t.Errorf("NewSprite().Frames = %d, want %d", s.Frames, want)
	}

	missing := NewSprite(0, 0, "NoSuchTag")
	if missing.Frames != 0 {
		t.Errorf("NewSprite(unknown tag).Frames = %d, want 0", missing.Frames)
	}
}

func TestSpriteMoveWithin(t *testing.T) {
	const width, height = 10, 5

	tests := []struct {
		name         string
		x, y         int
		dx, dy       int
		wantX, wantY int
	}{
		{"right", 3, 2, 1, 0, 4, 2},
		{"left", 3, 2, -1, 0, 2, 2},
		{"up", 3, 2, 0, -1, 3, 1},
		{"down", 3, 2, 0, 1, 3, 3},
		{"right edge", 8, 2, 1, 0, 8, 2},
		{"left edge", 0, 2, -1, 0, 0, 2},
		{"top edge", 3, 0, 0, -1, 3, 0},
		{"bottom edge", 3, 4, 0, 1, 3, 4},
		{"diagonal into corner", 8, 4, 1, 1, 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sprite{X: tt.x, Y: tt.y, Width: 2, Height: 1}
			s.MoveWithin(tt.dx, tt.dy, width, height)
			if s.X != tt.wantX || s.Y != tt.wantY {
				t.Errorf("MoveWithin(%d, %d) from (%d,%d) = (%d,%d), want (%d,%d)",
					tt.dx, tt.dy, tt.x, tt.y, s.X, s.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSpriteAdvanceLoops(t *testing.T) {
	s := &Sprite{Frames: 3}
	seen := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		seen = append(seen, s.Frame)
		s.Advance()
	}

	want := []int{0, 1, 2, 0, 1, 2}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("frames = %v, want %v", seen, want)
		}
	}

	still := &Sprite{Frames: 0, Frame: 2}
	still.Advance()
	if still.Frame != 0 {
		t.Errorf("Advance() on a still sprite left Frame = %d, want 0", still.Frame)
	}
}

func TestSpriteRune(t *testing.T) {
	s := &Sprite{Glyphs: []rune{'a', 'b'}, Frame: 3}
	if s.Rune() != 'b' {
		t.Errorf("Rune() = %q, want 'b'", s.Rune())
	}
	if (&Sprite{}).Rune() != '@' {
		t.Error("Rune() without glyphs should fall back to '@'")
	}
}
