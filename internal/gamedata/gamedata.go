// Package gamedata holds the tables baked from the editor files in assets/.
// generated.go is produced by cmd/bake and must not be edited by hand.
package gamedata

//go:generate go run ../../cmd/bake -map ../../assets/FirstMap.tmx -sprites ../../assets/anim.json,../../assets/Sprites.json -o generated.go

// AnimationTag is a sprite sheet tag and the number of frames it spans.
type AnimationTag struct {
	Name   string
	Frames int
}
