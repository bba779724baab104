package sprite

import (
	"errors"
	"testing"
)

func TestSheetLoadDerivesGrid(t *testing.T) {
	cases := []struct {
		name      string
		path      string
		fw, fh    int
		wantCols  int
		wantRows  int
		wantImgW  int
		wantImgH  int
	}{
		{"player", "sprites/player.png", 48, 48, 6, 2, 288, 96},
		{"cow", "sprites/cow.png", 64, 64, 6, 2, 384, 128},
		{"projectiles", "sprites/projectiles.png", 16, 16, 2, 2, 32, 32},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sh := NewImageSheet(c.path, c.fw, c.fh)
			if sh.Loaded() {
				t.Fatalf("sheet loaded before Load")
			}
			if err := sh.Load(); err != nil {
				t.Fatalf("load: %v", err)
			}
			if !sh.Loaded() {
				t.Fatalf("sheet not loaded after Load")
			}
			if sh.Columns() != c.wantCols || sh.Rows() != c.wantRows {
				t.Fatalf("expected %dx%d grid, got %dx%d", c.wantCols, c.wantRows, sh.Columns(), sh.Rows())
			}
			if sh.width != c.wantImgW || sh.height != c.wantImgH {
				t.Fatalf("expected %dx%d image, got %dx%d", c.wantImgW, c.wantImgH, sh.width, sh.height)
			}
		})
	}
}

func TestSheetLoadFailurePersists(t *testing.T) {
	sh := NewImageSheet("sprites/does_not_exist.png", 16, 16)
	err1 := sh.Load()
	if err1 == nil {
		t.Fatalf("expected load failure")
	}
	err2 := sh.Load()
	if !errors.Is(err2, err1) && err2.Error() != err1.Error() {
		t.Fatalf("repeat load returned a different outcome: %v vs %v", err1, err2)
	}
	if sh.Loaded() {
		t.Fatalf("failed sheet reports loaded")
	}
}

func TestRegionAtStaysInsideImage(t *testing.T) {
	sh := NewImageSheet("sprites/cow.png", 64, 64)
	if err := sh.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	for row := 0; row < sh.Rows(); row++ {
		for col := 0; col < sh.Columns(); col++ {
			r := sh.RegionAt(col, row)
			if r.X < 0 || r.Y < 0 || r.X+r.W > sh.width || r.Y+r.H > sh.height {
				t.Fatalf("region (%d,%d) escapes image bounds: %+v", col, row, r)
			}
		}
	}
}

func TestRegionsForMapsColumns(t *testing.T) {
	sh := NewImageSheet("sprites/cow.png", 64, 64)
	regions := sh.RegionsFor([]int{0, 2, 1}, 1)
	if len(regions) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(regions))
	}
	want := []Region{{0, 64, 64, 64}, {128, 64, 64, 64}, {64, 64, 64, 64}}
	for i, r := range regions {
		if r != want[i] {
			t.Fatalf("region %d: expected %+v, got %+v", i, want[i], r)
		}
	}
}

func TestUVRequiresLoad(t *testing.T) {
	sh := NewImageSheet("sprites/player.png", 48, 48)
	if _, err := sh.UVAt(0, 0); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded before load, got %v", err)
	}

	if err := sh.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	uv, err := sh.UVAt(1, 1)
	if err != nil {
		t.Fatalf("uv after load: %v", err)
	}
	want := UV{U: 48.0 / 288.0, V: 48.0 / 96.0, W: 48.0 / 288.0, H: 48.0 / 96.0}
	if uv != want {
		t.Fatalf("expected %+v, got %+v", want, uv)
	}
}
