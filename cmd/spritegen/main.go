// Command spritegen regenerates the placeholder sprite sheets embedded
// under assets/sprites. Each sheet is a fixed grid of solid-color cells;
// real art can replace the files without touching the sprite config as
// long as the grid geometry stays the same.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

var outDir string

func main() {
	flag.StringVar(&outDir, "out", "assets/sprites", "directory to write the generated sheets to")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("spritegen: %v", err)
	}

	for _, sheet := range sheets() {
		path := filepath.Join(outDir, sheet.name+".png")
		if err := writeSheet(path, sheet); err != nil {
			log.Fatalf("spritegen: %v", err)
		}
		fmt.Printf("wrote %s (%dx%d, %dx%d cells)\n", path, sheet.width, sheet.height, sheet.cellW, sheet.cellH)
	}
}

type sheetSpec struct {
	name          string
	width, height int
	cellW, cellH  int
	cells         []color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 0xff} }

// sheets mirrors the geometry declared in assets/sprites.json: the
// ruminant sheets are 6x2 grids of 64px cells (row 0 idle, row 1 walk),
// the player a 6x2 grid of 48px cells, the projectiles a 2x2 of 16px.
func sheets() []sheetSpec {
	ruminant := func(name string, light, mid, dark color.NRGBA) sheetSpec {
		black := rgb(0, 0, 0)
		return sheetSpec{
			name: name, width: 384, height: 128, cellW: 64, cellH: 64,
			cells: []color.NRGBA{
				mid, light, mid, dark, black, black,
				mid, light, mid, dark, light, mid,
			},
		}
	}

	black := rgb(0, 0, 0)
	return []sheetSpec{
		ruminant("cow", rgb(160, 110, 63), rgb(139, 90, 43), rgb(120, 80, 40)),
		ruminant("sheep", rgb(220, 220, 220), rgb(240, 240, 240), rgb(200, 200, 200)),
		ruminant("goat", rgb(190, 160, 120), rgb(210, 180, 140), rgb(180, 150, 110)),
		ruminant("alpaca", rgb(238, 203, 173), rgb(245, 222, 179), rgb(222, 184, 135)),
		{
			name: "player", width: 288, height: 96, cellW: 48, cellH: 48,
			cells: []color.NRGBA{
				rgb(0, 255, 255), rgb(0, 200, 255), black, black, black, black,
				rgb(0, 255, 255), rgb(255, 165, 0), rgb(255, 140, 0), black, black, black,
			},
		},
		{
			name: "projectiles", width: 32, height: 32, cellW: 16, cellH: 16,
			cells: []color.NRGBA{
				rgb(255, 255, 0), rgb(255, 255, 255),
				rgb(255, 0, 0), rgb(255, 100, 0),
			},
		},
	}
}

func writeSheet(path string, s sheetSpec) error {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	cols := s.width / s.cellW
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			idx := (y/s.cellH)*cols + x/s.cellW
			c := color.NRGBA{A: 0xff}
			if idx < len(s.cells) {
				c = s.cells[idx]
			}
			img.SetNRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
