package baker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// unknownTagName is used for frame tags without a string name.
const unknownTagName = "unknown"

// TagPolicy decides what happens to a frame tag whose "to" is below "from".
type TagPolicy int

const (
	// TagReject fails the bake with a MalformedTagError.
	TagReject TagPolicy = iota
	// TagClamp keeps the tag with a frame count of 0.
	TagClamp
)

// String returns the policy name accepted by ParseTagPolicy.
func (p TagPolicy) String() string {
	switch p {
	case TagReject:
		return "reject"
	case TagClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// ParseTagPolicy parses "reject" or "clamp".
func ParseTagPolicy(s string) (TagPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return TagReject, nil
	case "clamp":
		return TagClamp, nil
	default:
		return TagReject, fmt.Errorf("invalid tag policy %q (want reject or clamp)", s)
	}
}

// AnimationTag is one sprite sheet tag and the number of frames it spans.
type AnimationTag struct {
	Name   string
	Frames int64
}

// AnimationTable lists tags in input-file order, then in-file order.
// Duplicate names are kept.
type AnimationTable []AnimationTag

// Lookup returns the first tag with the given name.
func (t AnimationTable) Lookup(name string) (AnimationTag, bool) {
	for _, tag := range t {
		if tag.Name == name {
			return tag, true
		}
	}
	return AnimationTag{}, false
}

// BakeAnimationTags reads the meta.frameTags array of every Aseprite JSON
// file in paths and concatenates their tags.
//
// A tag without a string name is called "unknown"; a missing or
// non-integer bound counts as 0.
func BakeAnimationTags(paths []string, policy TagPolicy) (AnimationTable, error) {
	table := AnimationTable{}
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, loadErr(path, err)
		}
		tags, err := parseSpriteSheet(path, content, policy)
		if err != nil {
			return nil, err
		}
		table = append(table, tags...)
	}
	return table, nil
}

func parseSpriteSheet(path string, content []byte, policy TagPolicy) ([]AnimationTag, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, loadErr(path, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, loadErr(path, errors.New("unexpected data after JSON document"))
	}

	meta, _ := field(doc, "meta").(map[string]any)
	frameTags, _ := meta["frameTags"].([]any)

	tags := make([]AnimationTag, 0, len(frameTags))
	for i, raw := range frameTags {
		name, ok := field(raw, "name").(string)
		if !ok {
			name = unknownTagName
		}
		from := intField(raw, "from")
		to := intField(raw, "to")

		frames := to - from + 1
		switch {
		case to < from && policy == TagClamp:
			frames = 0
		case to < from || frames < 1:
			return nil, &MalformedTagError{Path: path, Index: i, Name: name, From: from, To: to}
		}
		tags = append(tags, AnimationTag{Name: name, Frames: frames})
	}
	return tags, nil
}

// field returns v[key] when v is a JSON object, nil otherwise.
func field(v any, key string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return obj[key]
}

// intField returns v[key] as an int64, or 0 when it is missing or not an
// integer.
func intField(v any, key string) int64 {
	num, ok := field(v, key).(json.Number)
	if !ok {
		return 0
	}
	n, err := num.Int64()
	if err != nil {
		return 0
	}
	return n
}
