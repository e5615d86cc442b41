package baker

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"text/template"
)

// Tables holds everything one bake produces.
type Tables struct {
	Tiles      TileTable
	Animations AnimationTable
}

var sourceTemplate = template.Must(template.New("gamedata").Parse(`// Code generated by bake. DO NOT EDIT.

package {{ .Package }}

// MapWidth is the width of the baked tile map in cells.
const MapWidth = {{ .Width }}

// MapHeight is the height of the baked tile map in cells.
const MapHeight = {{ .Height }}

// EmptyTile marks a map cell that holds no tile.
const EmptyTile int16 = {{ .Empty }}

// TileMap holds one tile id per map cell, indexed by y*MapWidth+x.
var TileMap = [MapWidth * MapHeight]int16{
{{- range .Rows }}
	{{ . }},
{{- end }}
}

// AnimationFrames lists every sprite sheet tag with its frame count, in source order.
var AnimationFrames = [...]AnimationTag{
{{- range .Animations }}
	{Name: {{ printf "%q" .Name }}, Frames: {{ .Frames }}},
{{- end }}
}
`))

// Render returns gofmt-formatted Go source declaring the tables in package pkg.
// The output depends only on pkg and tables.
func Render(pkg string, tables Tables) ([]byte, error) {
	if !token.IsIdentifier(pkg) || pkg == "_" {
		return nil, fmt.Errorf("invalid package name %q", pkg)
	}

	t := tables.Tiles
	if t.Width <= 0 || t.Height <= 0 || t.Len() != t.Width*t.Height {
		return nil, fmt.Errorf("tile table is %dx%d with %d entries", t.Width, t.Height, t.Len())
	}

	rows := make([]string, t.Height)
	cells := make([]string, t.Width)
	for y := range rows {
		for x := range cells {
			cells[x] = strconv.Itoa(int(t.At(x, y)))
		}
		rows[y] = strings.Join(cells, ", ")
	}

	var buf bytes.Buffer
	err := sourceTemplate.Execute(&buf, map[string]any{
		"Package":    pkg,
		"Width":      t.Width,
		"Height":     t.Height,
		"Empty":      EmptyTile,
		"Rows":       rows,
		"Animations": tables.Animations,
	})
	if err != nil {
		return nil, fmt.Errorf("render tables: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}
