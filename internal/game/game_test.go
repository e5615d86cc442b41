package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// testGame returns a game with a 20x10 play area and a counting bell.
func testGame(t *testing.T, cfg Config) (*Game, *int) {
	t.Helper()
	beeps := 0
	g := newGame(cfg,
		func() (int, int) { return 20, 10 },
		func() error { beeps++; return nil },
	)
	return g, &beeps
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestHandleKeyMovesSpriteWithinPlayArea(t *testing.T) {
	g, _ := testGame(t, DefaultConfig())
	ctx := context.Background()
	g.sprite.X, g.sprite.Y = 0, 0

	g.handleKey(ctx, tcell.KeyLeft, 0)
	g.handleKey(ctx, tcell.KeyUp, 0)
	if g.sprite.X != 0 || g.sprite.Y != 0 {
		t.Errorf("sprite left the play area: (%d, %d)", g.sprite.X, g.sprite.Y)
	}

	for i := 0; i < 50; i++ {
		g.handleKey(ctx, tcell.KeyRight, 0)
		g.handleKey(ctx, tcell.KeyDown, 0)
	}
	if g.sprite.X != 20-g.sprite.Width || g.sprite.Y != 10-g.sprite.Height {
		t.Errorf("sprite at (%d, %d), want clamped to (%d, %d)",
			g.sprite.X, g.sprite.Y, 20-g.sprite.Width, 10-g.sprite.Height)
	}
}

func TestHandleKeyEffects(t *testing.T) {
	g, beeps := testGame(t, DefaultConfig())
	ctx := context.Background()

	g.handleKey(ctx, tcell.KeyRune, ' ')
	if *beeps != 1 {
		t.Errorf("space rang the bell %d times, want 1", *beeps)
	}

	g.handleKey(ctx, tcell.KeyRune, 'w')
	if !g.window {
		t.Error("w did not enable the window effect")
	}
	g.handleKey(ctx, tcell.KeyRune, 'W')
	if g.window {
		t.Error("W did not disable the window effect")
	}

	g.handleKey(ctx, tcell.KeyRune, 'p')
	if g.state != StatePaused {
		t.Errorf("state after p = %v, want paused", g.state)
	}
	g.handleKey(ctx, tcell.KeyRune, 'p')
	if g.state != StatePlaying {
		t.Errorf("state after second p = %v, want playing", g.state)
	}

	g.handleKey(ctx, tcell.KeyRune, 'q')
	if g.running {
		t.Error("q did not stop the game")
	}
}

func TestHandleKeyBeepError(t *testing.T) {
	g := newGame(DefaultConfig(),
		func() (int, int) { return 20, 10 },
		func() error { return errors.New("no bell") },
	)
	g.handleKey(context.Background(), tcell.KeyRune, ' ')
	if !g.running {
		t.Error("a failing bell should not stop the game")
	}
}

func TestUpdateScrollsAndAnimates(t *testing.T) {
	cfg := Config{FPS: 30, ScrollEvery: 2, AnimateEvery: 3, SpriteTag: "Walk"}
	g, _ := testGame(t, cfg)
	if g.sprite.Frames != 4 {
		t.Fatalf("Walk sprite has %d frames, want 4", g.sprite.Frames)
	}

	for i := 0; i < 6; i++ {
		g.update()
	}
	if g.bg.ScrollX != 3%g.bg.Width {
		t.Errorf("ScrollX after 6 frames = %d, want %d", g.bg.ScrollX, 3%g.bg.Width)
	}
	if g.sprite.Frame != 2 {
		t.Errorf("sprite frame after 6 frames = %d, want 2", g.sprite.Frame)
	}

	g.state = StatePaused
	scroll, frame := g.bg.ScrollX, g.sprite.Frame
	for i := 0; i < 6; i++ {
		g.update()
	}
	if g.bg.ScrollX != scroll || g.sprite.Frame != frame {
		t.Error("paused game kept scrolling or animating")
	}
}

func TestUpdateWithoutScrolling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScrollEvery = 0
	g, _ := testGame(t, cfg)

	for i := 0; i < 100; i++ {
		g.update()
	}
	if g.bg.ScrollX != 0 {
		t.Errorf("ScrollX = %d with scrolling disabled, want 0", g.bg.ScrollX)
	}
}

func TestClampSpriteAfterResize(t *testing.T) {
	g, _ := testGame(t, DefaultConfig())
	g.sprite.X, g.sprite.Y = 18, 9

	g.playArea = func() (int, int) { return 10, 4 }
	g.clampSprite()
	if g.sprite.X != 8 || g.sprite.Y != 3 {
		t.Errorf("sprite at (%d, %d) after resize, want (8, 3)", g.sprite.X, g.sprite.Y)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DEMO_FPS", "60")
	t.Setenv("DEMO_SCROLL_EVERY", "0")
	t.Setenv("DEMO_ANIMATE_EVERY", "")
	t.Setenv("DEMO_SPRITE", "Walk")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}
	want := Config{FPS: 60, ScrollEvery: 0, AnimateEvery: DefaultConfig().AnimateEvery, SpriteTag: "Walk"}
	if cfg != want {
		t.Errorf("ConfigFromEnv() = %+v, want %+v", cfg, want)
	}

	invalid := []struct {
		key, value string
	}{
		{"DEMO_FPS", "0"},
		{"DEMO_FPS", "2000000000"},
		{"DEMO_SCROLL_EVERY", "-1"},
		{"DEMO_ANIMATE_EVERY", "fast"},
		{"DEMO_SPRITE", "Nope"},
	}
	for _, tt := range invalid {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := ConfigFromEnv(); err == nil {
				t.Errorf("ConfigFromEnv() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestSecondSpriteStandsStillAndAnimates(t *testing.T) {
	cfg := Config{FPS: 30, ScrollEvery: 0, AnimateEvery: 1, SpriteTag: "Sprite1"}
	g, _ := testGame(t, cfg)

	if g.other.Tag != "Sprite2" || g.other.Frames != 4 {
		t.Fatalf("second sprite = %q with %d frames, want Sprite2 with 4", g.other.Tag, g.other.Frames)
	}
	if g.other.X != 18 || g.other.Y != 6 {
		t.Errorf("second sprite at (%d, %d), want (18, 6)", g.other.X, g.other.Y)
	}

	ctx := context.Background()
	g.handleKey(ctx, tcell.KeyLeft, 0)
	g.handleKey(ctx, tcell.KeyDown, 0)
	for i := 0; i < 3; i++ {
		g.update()
	}

	if g.other.X != 18 || g.other.Y != 6 {
		t.Errorf("arrow keys moved the second sprite to (%d, %d)", g.other.X, g.other.Y)
	}
	if g.other.Frame != 3 {
		t.Errorf("second sprite frame = %d, want 3", g.other.Frame)
	}

	sprites := g.scene().Sprites
	if len(sprites) != 2 || sprites[0] != g.other || sprites[1] != g.sprite {
		t.Errorf("scene sprites = %v, want the second sprite then the player", sprites)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{30, time.Second / 30},
		{0, time.Second},
		{-5, time.Second},
		{MaxFPS * 10, time.Millisecond},
	}

	for _, tt := range tests {
		g, _ := testGame(t, Config{FPS: tt.fps, AnimateEvery: 1, SpriteTag: "Walk"})
		if got := g.frameInterval(); got != tt.want {
			t.Errorf("frameInterval() with FPS %d = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestUpdateWithZeroConfig(t *testing.T) {
	g, _ := testGame(t, Config{})

	for i := 0; i < 10; i++ {
		g.update()
	}
	if g.sprite.Frame != 0 || g.bg.ScrollX != 0 {
		t.Error("a zero config should neither animate nor scroll")
	}
}
