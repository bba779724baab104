package sprite

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface blits a source region of a sheet to a destination rectangle.
// The catalog is agnostic to which backend sits behind it.
type Surface interface {
	DrawRegion(sheet *ImageSheet, r Region, x, y, w, h float64)
}

// ImageSurface is the immediate 2D path: a sub-image blit onto the
// target via DrawImage.
type ImageSurface struct {
	Target *ebiten.Image
}

func (s *ImageSurface) DrawRegion(sheet *ImageSheet, r Region, x, y, w, h float64) {
	if s == nil || s.Target == nil || !sheet.Loaded() {
		return
	}
	src := sheet.Image().SubImage(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	if r.W > 0 && r.H > 0 {
		op.GeoM.Scale(w/float64(r.W), h/float64(r.H))
	}
	op.GeoM.Translate(x, y)
	s.Target.DrawImage(src, op)
}

// MeshSurface is the texture-sampler path: a two-triangle quad whose
// source coordinates come from the region's normalized UV rectangle.
type MeshSurface struct {
	Target *ebiten.Image
}

var quadIndices = []uint16{0, 1, 2, 1, 3, 2}

func (s *MeshSurface) DrawRegion(sheet *ImageSheet, r Region, x, y, w, h float64) {
	if s == nil || s.Target == nil || !sheet.Loaded() {
		return
	}
	uv, err := sheet.UVFor(r)
	if err != nil {
		return
	}
	tex := sheet.Image()
	tw := float64(tex.Bounds().Dx())
	th := float64(tex.Bounds().Dy())

	sx0 := float32(uv.U * tw)
	sy0 := float32(uv.V * th)
	sx1 := float32((uv.U + uv.W) * tw)
	sy1 := float32((uv.V + uv.H) * th)
	dx0, dy0 := float32(x), float32(y)
	dx1, dy1 := float32(x+w), float32(y+h)

	vs := []ebiten.Vertex{
		{DstX: dx0, DstY: dy0, SrcX: sx0, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: dx1, DstY: dy0, SrcX: sx1, SrcY: sy0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: dx0, DstY: dy1, SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: dx1, DstY: dy1, SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	s.Target.DrawTriangles(vs, quadIndices, tex, &ebiten.DrawTrianglesOptions{})
}
