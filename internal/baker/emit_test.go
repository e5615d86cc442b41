package baker

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func sampleTables() Tables {
	return Tables{
		Tiles: TileTable{
			Width:  2,
			Height: 2,
			Tiles:  []int16{5, EmptyTile, 2, 9},
		},
		Animations: AnimationTable{
			{Name: "Walk", Frames: 4},
			{Name: "Idle", Frames: 1},
			{Name: `Say "hi"`, Frames: 2},
		},
	}
}

func TestRender(t *testing.T) {
	src, err := Render("gamedata", sampleTables())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	wantLines := []string{
		"// Code generated by bake. DO NOT EDIT.",
		"package gamedata",
		"const MapWidth = 2",
		"const MapHeight = 2",
		"const EmptyTile int16 = -1",
		"var TileMap = [MapWidth * MapHeight]int16{",
		"\t5, -1,",
		"\t2, 9,",
		"var AnimationFrames = [...]AnimationTag{",
		"\t{Name: \"Walk\", Frames: 4},",
		"\t{Name: \"Idle\", Frames: 1},",
		"\t{Name: \"Say \\\"hi\\\"\", Frames: 2},",
	}
	for _, line := range wantLines {
		if !strings.Contains(string(src), line+"\n") {
			t.Errorf("Render() output missing line %q\n%s", line, src)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := Render("tables", sampleTables())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := Render("tables", sampleTables())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Render() produced different output for the same tables")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		pkg    string
		tables Tables
	}{
		{"empty package", "", sampleTables()},
		{"keyword package", "func", sampleTables()},
		{"blank package", "_", sampleTables()},
		{"dotted package", "game.data", sampleTables()},
		{"short table", "gamedata", Tables{Tiles: TileTable{Width: 2, Height: 2, Tiles: []int16{1}}}},
		{"zero size", "gamedata", Tables{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(tt.pkg, tt.tables); err == nil {
				t.Errorf("Render(%q) should fail", tt.pkg)
			}
		})
	}
}

// The checked-in tables must match what the baker makes of assets/.
func TestGeneratedTablesAreCurrent(t *testing.T) {
	tiles, err := BakeTileMap("../../assets/FirstMap.tmx")
	if err != nil {
		t.Fatalf("BakeTileMap() error = %v", err)
	}
	anims, err := BakeAnimationTags([]string{"../../assets/anim.json", "../../assets/Sprites.json"}, TagReject)
	if err != nil {
		t.Fatalf("BakeAnimationTags() error = %v", err)
	}

	src, err := Render(DefaultPackage, Tables{Tiles: tiles, Animations: anims})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	checkedIn, err := os.ReadFile("../gamedata/generated.go")
	if err != nil {
		t.Fatalf("Failed to read generated.go: %v", err)
	}
	if !bytes.Equal(src, checkedIn) {
		t.Errorf("internal/gamedata/generated.go is stale; run go generate ./internal/gamedata\n got:\n%s", src)
	}
}
