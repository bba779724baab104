package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/troupo/invaders/common"
	"github.com/troupo/invaders/config"
	"github.com/troupo/invaders/sprite"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func drawHUD(screen *ebiten.Image, g *Game) {
	msg := fmt.Sprintf("SCORE %05d   HI %05d   WAVE %d   LIVES %d",
		g.scoreVal, g.hiScore, g.waveNum, g.player.Lives)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(12, 10)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, msg, hudFace, op)
}

// drawLoading renders the asset progress bar shown until every
// spritesheet has settled.
func drawLoading(screen *ebiten.Image, settings *config.Settings, p sprite.Progress) {
	w := float64(settings.Window.Width)
	h := float64(settings.Window.Height)

	barW := w / 2
	barH := 18.0
	barX := (w - barW) / 2
	barY := h / 2

	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barW), float32(barH), 1,
		color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}, false)
	fill := common.Lerp(0, barW-4, p.FractionComplete/100)
	if fill > 0 {
		vector.DrawFilledRect(screen, float32(barX+2), float32(barY+2), float32(fill), float32(barH-4),
			color.NRGBA{R: 0x00, G: 0xc8, B: 0xff, A: 0xff}, false)
	}

	msg := fmt.Sprintf("Loading spritesheets %d/%d", p.LoadedCount, p.TotalCount)
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(barX, barY-20)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, msg, hudFace, op)
}
