package sprite

import (
	"strings"
	"testing"
)

func TestParseConfigValid(t *testing.T) {
	doc := []byte(`{
		"spritesheets": {
			"cow": {
				"path": "sprites/cow.png",
				"frameWidth": 64, "frameHeight": 64,
				"sprites": {
					"cow_idle": {"frames": [0,1,2,3], "row": 0, "fps": 8, "loop": true}
				}
			}
		},
		"metadata": {"enemies": {"cow": {"speed": 1, "points": 40}}}
	}`)

	cfg, err := ParseConfig(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sp, ok := cfg.Spritesheets["cow"].Sprites["cow_idle"]
	if !ok {
		t.Fatalf("cow_idle missing")
	}
	if len(sp.Frames) != 4 || sp.FPS != 8 || !sp.Loop {
		t.Fatalf("unexpected sprite config: %+v", sp)
	}
	if cfg.Metadata["enemies"] == nil {
		t.Fatalf("metadata lost in parse")
	}
}

func TestParseConfigRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			"not_json",
			`{`,
			"parse config",
		},
		{
			"no_sheets",
			`{"spritesheets": {}}`,
			"declares no spritesheets",
		},
		{
			"empty_path",
			`{"spritesheets": {"cow": {"path": "", "frameWidth": 64, "frameHeight": 64}}}`,
			`sheet "cow": path must not be empty`,
		},
		{
			"bad_frame_width",
			`{"spritesheets": {"cow": {"path": "c.png", "frameWidth": 0, "frameHeight": 64}}}`,
			`sheet "cow": frameWidth must be > 0`,
		},
		{
			"bad_frame_height",
			`{"spritesheets": {"cow": {"path": "c.png", "frameWidth": 64, "frameHeight": -1}}}`,
			`sheet "cow": frameHeight must be > 0`,
		},
		{
			"empty_frames",
			`{"spritesheets": {"cow": {"path": "c.png", "frameWidth": 64, "frameHeight": 64,
				"sprites": {"cow_idle": {"frames": [], "row": 0, "fps": 8}}}}}`,
			`sprite "cow_idle": frames must not be empty`,
		},
		{
			"negative_frame",
			`{"spritesheets": {"cow": {"path": "c.png", "frameWidth": 64, "frameHeight": 64,
				"sprites": {"cow_idle": {"frames": [0, -2], "row": 0, "fps": 8}}}}}`,
			`frames[1] must be >= 0`,
		},
		{
			"negative_row",
			`{"spritesheets": {"cow": {"path": "c.png", "frameWidth": 64, "frameHeight": 64,
				"sprites": {"cow_idle": {"frames": [0], "row": -1, "fps": 8}}}}}`,
			`row must be >= 0`,
		},
		{
			"zero_fps",
			`{"spritesheets": {"cow": {"path": "c.png", "frameWidth": 64, "frameHeight": 64,
				"sprites": {"cow_idle": {"frames": [0], "row": 0, "fps": 0}}}}}`,
			`fps must be > 0`,
		},
		{
			"name_collision_across_sheets",
			`{"spritesheets": {
				"cow": {"path": "c.png", "frameWidth": 64, "frameHeight": 64,
					"sprites": {"idle": {"frames": [0], "row": 0, "fps": 8}}},
				"sheep": {"path": "s.png", "frameWidth": 64, "frameHeight": 64,
					"sprites": {"idle": {"frames": [0], "row": 0, "fps": 8}}}
			}}`,
			`sprite "idle" declared by both sheets`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(c.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", c.wantErr, err)
			}
		})
	}
}
