package baker

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Flip and rotation flags stored in the high bits of a TMX global tile id.
const (
	gidFlipHorizontal = 0x80000000
	gidFlipVertical   = 0x40000000
	gidFlipDiagonal   = 0x20000000
	gidRotateHex      = 0x10000000

	gidFlagMask = gidFlipHorizontal | gidFlipVertical | gidFlipDiagonal | gidRotateHex
)

// tmxDocument is the subset of a Tiled map the baker needs: the map header,
// its tilesets and the first layer in document order.
type tmxDocument struct {
	Width    int
	Height   int
	Infinite bool
	Tilesets []tmxTileset

	FirstKind string    // element name of layer 0, "" when the map has none
	Layer     *tmxLayer // set only when layer 0 is a <layer>
}

type tmxTileset struct {
	FirstGID uint32 `xml:"firstgid,attr"`
	Source   string `xml:"source,attr"`
	Name     string `xml:"name,attr"`
}

type tmxLayer struct {
	Name   string  `xml:"name,attr"`
	Width  int     `xml:"width,attr"`
	Height int     `xml:"height,attr"`
	Data   tmxData `xml:"data"`
}

type tmxData struct {
	Encoding    string     `xml:"encoding,attr"`
	Compression string     `xml:"compression,attr"`
	Raw         string     `xml:",chardata"`
	Tiles       []tmxTile  `xml:"tile"`
	Chunks      []tmxChunk `xml:"chunk"`
}

type tmxTile struct {
	GID uint32 `xml:"gid,attr"`
}

type tmxChunk struct {
	X      int `xml:"x,attr"`
	Y      int `xml:"y,attr"`
	Width  int `xml:"width,attr"`
	Height int `xml:"height,attr"`
}

// isLayerElement reports whether name is one of the map's layer kinds.
func isLayerElement(name string) bool {
	switch name {
	case "layer", "objectgroup", "imagelayer", "group":
		return true
	}
	return false
}

// decodeTMX reads a Tiled map. Layer order is only visible in the token
// stream, so the map's children are walked one element at a time.
func decodeTMX(r io.Reader) (*tmxDocument, error) {
	dec := xml.NewDecoder(r)
	var doc *tmxDocument

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if doc == nil {
			if start.Name.Local != "map" {
				return nil, fmt.Errorf("root element is <%s>, want <map>", start.Name.Local)
			}
			doc, err = mapHeader(start)
			if err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case start.Name.Local == "tileset":
			var ts tmxTileset
			if err := dec.DecodeElement(&ts, &start); err != nil {
				return nil, fmt.Errorf("tileset: %w", err)
			}
			doc.Tilesets = append(doc.Tilesets, ts)

		case start.Name.Local == "layer" && doc.FirstKind == "":
			var layer tmxLayer
			if err := dec.DecodeElement(&layer, &start); err != nil {
				return nil, fmt.Errorf("layer: %w", err)
			}
			doc.FirstKind = "layer"
			doc.Layer = &layer

		case isLayerElement(start.Name.Local) && doc.FirstKind == "":
			doc.FirstKind = start.Name.Local
			if err := dec.Skip(); err != nil {
				return nil, err
			}

		default:
			if err := dec.Skip(); err != nil {
				return nil, err
			}
		}
	}

	if doc == nil {
		return nil, errors.New("no <map> element")
	}
	return doc, nil
}

// mapHeader reads the attributes of the <map> element.
func mapHeader(start xml.StartElement) (*tmxDocument, error) {
	doc := &tmxDocument{}
	for _, attr := range start.Attr {
		var err error
		switch attr.Name.Local {
		case "width":
			doc.Width, err = strconv.Atoi(attr.Value)
		case "height":
			doc.Height, err = strconv.Atoi(attr.Value)
		case "infinite":
			doc.Infinite = attr.Value == "1"
		}
		if err != nil {
			return nil, fmt.Errorf("map attribute %s: %w", attr.Name.Local, err)
		}
	}
	return doc, nil
}

// gids returns the layer's raw global tile ids in row-major order.
func (d *tmxData) gids(count int) ([]uint32, error) {
	var (
		gids []uint32
		err  error
	)

	switch d.Encoding {
	case "csv":
		gids, err = d.csvGIDs()
	case "base64":
		gids, err = d.base64GIDs()
	case "":
		gids = make([]uint32, len(d.Tiles))
		for i, t := range d.Tiles {
			gids[i] = t.GID
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, d.Encoding)
	}
	if err != nil {
		return nil, err
	}

	if len(gids) != count {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCellCount, len(gids), count)
	}
	return gids, nil
}

func (d *tmxData) csvGIDs() ([]uint32, error) {
	fields := strings.Split(d.Raw, ",")
	gids := make([]uint32, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		gid, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("csv cell %d: %w", len(gids), err)
		}
		gids = append(gids, uint32(gid))
	}
	return gids, nil
}

func (d *tmxData) base64GIDs() ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(d.Raw), ""))
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	var rc io.ReadCloser
	switch d.Compression {
	case "":
	case "zlib":
		rc, err = zlib.NewReader(bytes.NewReader(raw))
	case "gzip":
		rc, err = gzip.NewReader(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("%w: compression %q", ErrUnsupportedEncoding, d.Compression)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Compression, err)
	}
	if rc != nil {
		defer rc.Close()
		raw, err = io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Compression, err)
		}
	}

	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of cells", ErrCellCount, len(raw))
	}
	gids := make([]uint32, len(raw)/4)
	for i := range gids {
		gids[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return gids, nil
}
