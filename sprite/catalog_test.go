package sprite

import (
	"strings"
	"testing"
)

func loadedTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	if err := c.Load("sprites.json"); err != nil {
		t.Fatalf("load embedded config: %v", err)
	}
	return c
}

func TestCatalogLoadsEmbeddedConfig(t *testing.T) {
	c := loadedTestCatalog(t)

	if !c.IsReady() {
		t.Fatalf("catalog not ready after load")
	}
	p := c.LoadProgress()
	if p.LoadedCount != p.TotalCount || p.FractionComplete != 100 || !p.Complete {
		t.Fatalf("unexpected progress after load: %+v", p)
	}

	if c.Spritesheet("cow") == nil {
		t.Fatalf("expected sheet %q", "cow")
	}
	if c.Spritesheet("does_not_exist") != nil {
		t.Fatalf("expected nil for unknown sheet")
	}
}

func TestLoadProgressBeforeLoad(t *testing.T) {
	c := NewCatalog()
	p := c.LoadProgress()
	if p.LoadedCount != 0 || p.TotalCount != 0 || p.FractionComplete != 0 || p.Complete {
		t.Fatalf("expected zero progress, got %+v", p)
	}
}

func TestInstantiateUnknownReturnsNil(t *testing.T) {
	c := loadedTestCatalog(t)
	if seq := c.Instantiate("nonexistent"); seq != nil {
		t.Fatalf("expected nil for unknown sprite, got %+v", seq)
	}
	if tpl := c.Template("nonexistent"); tpl != nil {
		t.Fatalf("expected nil template for unknown sprite")
	}
}

func TestInstantiateCowIdleEndToEnd(t *testing.T) {
	c := loadedTestCatalog(t)

	seq := c.Instantiate("cow_idle")
	if seq == nil {
		t.Fatalf("cow_idle missing from catalog")
	}
	if seq.Len() != 4 {
		t.Fatalf("expected 4 frames, got %d", seq.Len())
	}
	if seq.FrameDuration() != 125 {
		t.Fatalf("expected 125ms frame duration, got %v", seq.FrameDuration())
	}

	seq.Play()
	seq.Advance(130)
	if seq.Frame() != 1 {
		t.Fatalf("expected frame 1 after 130ms, got %d", seq.Frame())
	}
	if seq.elapsed != 5 {
		t.Fatalf("expected 5ms accumulated, got %v", seq.elapsed)
	}
}

func TestInstanceNeverMutatesTemplate(t *testing.T) {
	c := loadedTestCatalog(t)

	tpl := c.Template("cow_walk")
	if tpl == nil {
		t.Fatalf("cow_walk missing from catalog")
	}
	inst := c.Instantiate("cow_walk")
	inst.Play()
	inst.Advance(5000)

	if tpl.Frame() != 0 || tpl.Playing() {
		t.Fatalf("template mutated by instance playback: frame=%d playing=%v", tpl.Frame(), tpl.Playing())
	}
}

func TestAllSpriteNamesAndCategories(t *testing.T) {
	c := loadedTestCatalog(t)

	names := c.AllSpriteNames()
	if len(names) != 12 {
		t.Fatalf("expected 12 sprites, got %d: %v", len(names), names)
	}

	byCategory := c.SpritesByCategory()
	cow := byCategory["cow"]
	if len(cow) != 2 || cow[0] != "cow_idle" || cow[1] != "cow_walk" {
		t.Fatalf("unexpected cow category: %v", cow)
	}
	for _, name := range byCategory["projectiles"] {
		sheetName := c.sheetOf[name]
		if sheetName != "projectiles" {
			t.Fatalf("sprite %q attributed to sheet %q", name, sheetName)
		}
	}
}

func TestMetadataDecoding(t *testing.T) {
	c := loadedTestCatalog(t)

	type enemyMeta struct {
		Speed  float64 `json:"speed"`
		Points int     `json:"points"`
	}
	meta, ok, err := MetadataAs[map[string]enemyMeta](c, "enemies")
	if err != nil || !ok {
		t.Fatalf("metadata decode: ok=%v err=%v", ok, err)
	}
	if meta["cow"].Points != 40 || meta["alpaca"].Speed != 1.5 {
		t.Fatalf("unexpected enemy metadata: %+v", meta)
	}

	if _, ok, _ := MetadataAs[map[string]enemyMeta](c, "powerups"); ok {
		t.Fatalf("expected absent category to report ok=false")
	}
}

func TestLoadFailurePersists(t *testing.T) {
	c := NewCatalog()
	err1 := c.Load("no_such_config.json")
	if err1 == nil {
		t.Fatalf("expected load failure")
	}
	if c.IsReady() {
		t.Fatalf("failed catalog reports ready")
	}
	if err := c.Err(); err == nil {
		t.Fatalf("Err should surface the load failure")
	}
	// Idempotent: the retry shares the first outcome, no reload happens.
	if err2 := c.Load("no_such_config.json"); err2 != err1 {
		t.Fatalf("repeat load returned a different outcome: %v vs %v", err1, err2)
	}
}

func TestValidateGeometryRejectsOutOfGrid(t *testing.T) {
	loadedSheet := func(cols, rows int) *ImageSheet {
		sh := NewImageSheet("test.png", 64, 64)
		sh.width, sh.height = cols*64, rows*64
		sh.columns, sh.rows = cols, rows
		sh.loaded.Store(true)
		return sh
	}

	cases := []struct {
		name    string
		sprite  SpriteConfig
		wantErr string
	}{
		{"row_out_of_grid", SpriteConfig{Frames: []int{0}, Row: 2, FPS: 8}, `row 2 outside sheet "cow" grid`},
		{"frame_out_of_grid", SpriteConfig{Frames: []int{0, 6}, Row: 0, FPS: 8}, `frames[1]=6 outside sheet "cow" grid`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := &Config{Spritesheets: map[string]SheetConfig{
				"cow": {Path: "test.png", FrameWidth: 64, FrameHeight: 64,
					Sprites: map[string]SpriteConfig{"cow_bad": c.sprite}},
			}}
			err := validateGeometry(cfg, map[string]*ImageSheet{"cow": loadedSheet(6, 2)})
			if err == nil {
				t.Fatalf("expected geometry error")
			}
			if !strings.Contains(err.Error(), "cow_bad") || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("error should name the sprite and the bad field, got: %v", err)
			}
		})
	}
}

func TestReloadSwapsTemplates(t *testing.T) {
	c := loadedTestCatalog(t)
	before := c.AllSpriteNames()

	if err := c.Reload("sprites.json"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	after := c.AllSpriteNames()
	if len(after) != len(before) {
		t.Fatalf("reload changed sprite set: %v vs %v", before, after)
	}
	if !c.IsReady() {
		t.Fatalf("catalog not ready after reload")
	}
}

func TestReloadKeepsProgressComplete(t *testing.T) {
	c := loadedTestCatalog(t)

	if err := c.Reload("sprites.json"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	p := c.LoadProgress()
	if !p.Complete || p.FractionComplete != 100 || p.LoadedCount != p.TotalCount {
		t.Fatalf("reload regressed progress: %+v", p)
	}
}
