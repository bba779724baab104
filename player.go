package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/troupo/invaders/common"
	"github.com/troupo/invaders/sprite"
)

const (
	playerBulletSpeed = -520 // px/s, upward
	enemyBulletSpeed  = 280  // px/s baseline, scaled by the shooter's metadata speed
)

// Player is the ship at the bottom of the screen.
type Player struct {
	X, Y  float64
	W, H  float64
	Lives int

	speed    float64
	cooldown int
	moving   bool

	idle   *sprite.FrameSequence
	thrust *sprite.FrameSequence

	body  *cp.Body
	shape *cp.Shape
}

func NewPlayer(g *Game) *Player {
	p := &Player{
		speed: g.settings.Player.MoveSpeed,
		Lives: g.settings.Player.Lives,
	}

	p.idle = g.catalog.Instantiate("player_idle")
	p.thrust = g.catalog.Instantiate("player_thrust")
	p.W, p.H = 48, 48
	if p.idle != nil {
		r := p.idle.CurrentRegion()
		p.W, p.H = float64(r.W), float64(r.H)
		p.idle.Play()
	}
	if p.thrust != nil {
		p.thrust.Play()
	}

	p.X = (float64(g.settings.Window.Width) - p.W) / 2
	p.Y = float64(g.settings.Window.Height) - p.H - 24

	g.collision.AddPlayer(p)
	return p
}

func (p *Player) Update(g *Game, dtSec, dtMillis float64) {
	dx := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += 1
	}
	p.moving = dx != 0
	p.X = common.Clamp(p.X+dx*p.speed*dtSec, 0, float64(g.settings.Window.Width)-p.W)

	if p.cooldown > 0 {
		p.cooldown--
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) && p.cooldown == 0 {
		p.cooldown = g.settings.Player.FireCooldownFrames
		SpawnBullet(g, p.X+p.W/2, p.Y, playerBulletSpeed, FactionPlayer)
		g.playSFX(g.shootSFX)
	}

	if p.idle != nil {
		p.idle.Advance(dtMillis)
	}
	if p.thrust != nil {
		p.thrust.Advance(dtMillis)
	}
	if p.body != nil {
		p.body.SetPosition(cp.Vector{X: p.X + p.W/2, Y: p.Y + p.H/2})
	}
}

func (p *Player) Draw(g *Game) {
	seq := p.idle
	if p.moving && p.thrust != nil {
		seq = p.thrust
	}
	g.catalog.DrawSequence(g.surface, seq, p.X, p.Y, 0, 0)
}
