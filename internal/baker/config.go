// Package baker converts editor files into the constant tables the game reads
// at runtime: layer 0 of a Tiled map and the frame tags of Aseprite sprite sheets.
package baker

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPackage is the package name written into generated sources.
const DefaultPackage = "gamedata"

// Config describes one bake.
type Config struct {
	MapPath     string    // Tiled TMX map; layer 0 is baked
	SpritePaths []string  // Aseprite JSON files, baked in this order
	OutPath     string    // generated Go source
	Package     string    // package clause of the generated source
	StampPath   string    // build stamp; defaults to OutPath + ".stamp"
	TagPolicy   TagPolicy // handling of frame tags with to < from
	Force       bool      // bake even when the stamp says nothing changed
}

// ConfigFromEnv reads defaults from BAKE_* environment variables.
func ConfigFromEnv() (Config, error) {
	policy, err := ParseTagPolicy(os.Getenv("BAKE_TAG_POLICY"))
	if err != nil {
		return Config{}, err
	}
	return Config{
		MapPath:     os.Getenv("BAKE_MAP"),
		SpritePaths: SplitList(os.Getenv("BAKE_SPRITES")),
		OutPath:     os.Getenv("BAKE_OUT"),
		Package:     envOr("BAKE_PACKAGE", DefaultPackage),
		StampPath:   os.Getenv("BAKE_STAMP"),
		TagPolicy:   policy,
	}, nil
}

// Validate checks that cfg names every input and output and fills in defaults.
func (c *Config) Validate() error {
	if c.MapPath == "" {
		return errors.New("no tile map given")
	}
	if len(c.SpritePaths) == 0 {
		return errors.New("no sprite sheet metadata given")
	}
	if c.OutPath == "" {
		return errors.New("no output path given")
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.StampPath == "" {
		c.StampPath = c.OutPath + ".stamp"
	}
	return nil
}

// settingsKey captures the settings that change the generated output,
// including the order of the sprite sheets.
func (c Config) settingsKey() string {
	return strings.Join([]string{
		c.Package,
		c.TagPolicy.String(),
		filepath.Clean(c.OutPath),
		c.MapPath,
		strings.Join(c.SpritePaths, ","),
	}, ";")
}

// SplitList splits a comma-separated path list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
