package game

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samdwyer/gbademo/internal/gamedata"
)

// MaxFPS bounds the frame rate so a frame always lasts at least a millisecond.
const MaxFPS = 1000

// Config holds demo configuration options.
type Config struct {
	FPS          int    // Frames per second of the game loop
	ScrollEvery  int    // Frames between background scroll steps; 0 stops scrolling
	AnimateEvery int    // Frames between sprite animation steps
	SpriteTag    string // Animation tag shown by the player sprite
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FPS:          30,
		ScrollEvery:  4,
		AnimateEvery: 6,
		SpriteTag:    "Sprite1",
	}
}

// ConfigFromEnv overrides the defaults with DEMO_FPS, DEMO_SCROLL_EVERY,
// DEMO_ANIMATE_EVERY and DEMO_SPRITE. DEMO_SPRITE must name a baked tag.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key      string
		dst      *int
		min, max int
	}{
		{"DEMO_FPS", &cfg.FPS, 1, MaxFPS},
		{"DEMO_SCROLL_EVERY", &cfg.ScrollEvery, 0, -1},
		{"DEMO_ANIMATE_EVERY", &cfg.AnimateEvery, 1, -1},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", v.key, raw, err)
		}
		if n < v.min {
			return cfg, fmt.Errorf("invalid %s %d: must be at least %d", v.key, n, v.min)
		}
		if v.max >= 0 && n > v.max {
			return cfg, fmt.Errorf("invalid %s %d: must be at most %d", v.key, n, v.max)
		}
		*v.dst = n
	}

	if tag := os.Getenv("DEMO_SPRITE"); tag != "" {
		names := gamedata.AnimationNames()
		if !slices.Contains(names, tag) {
			return cfg, fmt.Errorf("invalid DEMO_SPRITE %q: want one of %s", tag, strings.Join(names, ", "))
		}
		cfg.SpriteTag = tag
	}
	return cfg, nil
}
