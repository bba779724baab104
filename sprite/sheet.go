package sprite

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNotLoaded is returned by operations that need the sheet's decoded
// dimensions before the sheet has finished loading.
var ErrNotLoaded = errors.New("sprite: sheet not loaded")

// Region is a rectangular sub-area of a spritesheet in source-pixel space.
// Regions are plain values; once produced they are never mutated.
type Region struct {
	X, Y int
	W, H int
}

// UV is a Region normalized by the owning sheet's image dimensions.
type UV struct {
	U, V float64
	W, H float64
}

// ImageSheet owns one raster image subdivided into a uniform grid of
// FrameWidth x FrameHeight cells. The grid size is unknown until Load
// settles; callers must check Loaded before asking for UVs or drawing.
type ImageSheet struct {
	path        string
	frameWidth  int
	frameHeight int

	src           image.Image
	width, height int
	columns, rows int

	loaded   atomic.Bool
	loadOnce sync.Once
	loadErr  error

	gpuOnce sync.Once
	gpu     *ebiten.Image
}

// NewImageSheet creates an empty sheet for the image at path. Nothing is
// fetched until Load is called.
func NewImageSheet(path string, frameWidth, frameHeight int) *ImageSheet {
	return &ImageSheet{
		path:        path,
		frameWidth:  frameWidth,
		frameHeight: frameHeight,
	}
}

// Load decodes the sheet's image and derives the grid size. It is
// idempotent: every call shares the outcome of the first, so concurrent
// or repeated loads never re-fetch. A failed sheet stays failed.
func (s *ImageSheet) Load() error {
	s.loadOnce.Do(func() {
		img, err := loadImage(s.path)
		if err != nil {
			s.loadErr = fmt.Errorf("sprite: load sheet %s: %w", s.path, err)
			return
		}
		b := img.Bounds()
		s.src = img
		s.width = b.Dx()
		s.height = b.Dy()
		s.columns = s.width / s.frameWidth
		s.rows = s.height / s.frameHeight
		s.loaded.Store(true)
	})
	return s.loadErr
}

// Loaded reports whether the image has been decoded and the grid derived.
func (s *ImageSheet) Loaded() bool {
	return s != nil && s.loaded.Load()
}

// Path returns the source locator the sheet was declared with.
func (s *ImageSheet) Path() string { return s.path }

// FrameSize returns the declared cell width and height.
func (s *ImageSheet) FrameSize() (int, int) { return s.frameWidth, s.frameHeight }

// Columns returns the number of grid columns. Zero until loaded.
func (s *ImageSheet) Columns() int { return s.columns }

// Rows returns the number of grid rows. Zero until loaded.
func (s *ImageSheet) Rows() int { return s.rows }

// Image returns the sheet as an *ebiten.Image, uploading it on first use
// so that decoding can happen off the render loop. Nil until loaded.
func (s *ImageSheet) Image() *ebiten.Image {
	if !s.Loaded() {
		return nil
	}
	s.gpuOnce.Do(func() {
		s.gpu = ebiten.NewImageFromImage(s.src)
	})
	return s.gpu
}

// RegionAt converts a (column, row) grid coordinate into a pixel-space
// Region. It is pure and performs no bounds checking; the catalog
// validates declared coordinates against the grid at load time instead.
func (s *ImageSheet) RegionAt(column, row int) Region {
	return Region{
		X: column * s.frameWidth,
		Y: row * s.frameHeight,
		W: s.frameWidth,
		H: s.frameHeight,
	}
}

// RegionsFor maps each column index through RegionAt on a single row.
func (s *ImageSheet) RegionsFor(columns []int, row int) []Region {
	regions := make([]Region, 0, len(columns))
	for _, c := range columns {
		regions = append(regions, s.RegionAt(c, row))
	}
	return regions
}

// UVAt returns the normalized texture region for a grid coordinate.
// It fails with ErrNotLoaded before the image dimensions are known.
func (s *ImageSheet) UVAt(column, row int) (UV, error) {
	return s.UVFor(s.RegionAt(column, row))
}

// UVFor normalizes a pixel-space Region by the loaded image dimensions.
func (s *ImageSheet) UVFor(r Region) (UV, error) {
	if !s.Loaded() {
		return UV{}, ErrNotLoaded
	}
	return UV{
		U: float64(r.X) / float64(s.width),
		V: float64(r.Y) / float64(s.height),
		W: float64(r.W) / float64(s.width),
		H: float64(r.H) / float64(s.height),
	}, nil
}
