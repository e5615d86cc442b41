package baker

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedEncoding is returned for layer data the baker cannot decode.
	ErrUnsupportedEncoding = errors.New("unsupported layer data encoding")
	// ErrCellCount is returned when layer data does not hold width*height cells.
	ErrCellCount = errors.New("layer data cell count mismatch")
	// ErrUnknownGID is returned when a cell references a GID outside every tileset.
	ErrUnknownGID = errors.New("tile gid does not belong to any tileset")
	// ErrTileIDRange is returned when a tile id does not fit the table's int16 entries.
	ErrTileIDRange = errors.New("tile id out of range")
)

// LoadError reports an input file that is missing, unreadable or malformed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LayerKindError reports a map whose first layer is not a finite tile grid.
// Kind is the element name found ("objectgroup", "imagelayer", "group"),
// "infinite layer" for chunked tile layers, or "" when the map has no layer.
type LayerKindError struct {
	Path string
	Kind string
}

func (e *LayerKindError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s: map has no layers", e.Path)
	}
	return fmt.Sprintf("%s: layer 0 is %s, want a finite tile layer", e.Path, e.Kind)
}

// MalformedTagError reports a frame tag whose range cannot produce a frame count.
type MalformedTagError struct {
	Path  string
	Index int // position of the tag within meta.frameTags
	Name  string
	From  int64
	To    int64
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("%s: frame tag %d (%q) has invalid range [%d, %d]", e.Path, e.Index, e.Name, e.From, e.To)
}

func loadErr(path string, err error) error {
	return &LoadError{Path: path, Err: err}
}
