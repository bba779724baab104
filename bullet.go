package main

import (
	"sync"

	"github.com/jakecoffman/cp"

	"github.com/troupo/invaders/sprite"
)

type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

var (
	bulletPool    sync.Pool
	activeBullets []*Bullet
)

// Bullet is a projectile moving vertically. Bullets are pooled; use
// SpawnBullet and let UpdateBullets release inactive ones.
type Bullet struct {
	X, Y    float64
	W, H    float64
	Faction Faction
	Active  bool

	seq *sprite.FrameSequence

	body  *cp.Body
	shape *cp.Shape
}

// SpawnBullet fires a bullet centered on x, with its top edge at y,
// moving at vy px/s.
func SpawnBullet(g *Game, x, y, vy float64, faction Faction) *Bullet {
	b, _ := bulletPool.Get().(*Bullet)
	if b == nil {
		b = &Bullet{}
	}

	name := "player_bullet"
	if faction == FactionEnemy {
		name = "enemy_bullet"
	}
	b.seq = g.catalog.Instantiate(name)
	b.W, b.H = 16, 16
	if b.seq != nil {
		r := b.seq.CurrentRegion()
		b.W, b.H = float64(r.W), float64(r.H)
		b.seq.Play()
	}

	b.X = x - b.W/2
	b.Y = y
	b.Faction = faction
	b.Active = true

	g.collision.AddBullet(b, vy)
	activeBullets = append(activeBullets, b)
	return b
}

// Deactivate retires a bullet and detaches its collision shape.
func (b *Bullet) Deactivate(g *Game) {
	if !b.Active {
		return
	}
	b.Active = false
	g.collision.Remove(b.body, b.shape)
	b.body, b.shape = nil, nil
}

// UpdateBullets syncs bullet positions from the physics space, retires
// off-screen bullets, and compacts the active list.
func UpdateBullets(g *Game, dtSec, dtMillis float64) {
	if len(activeBullets) == 0 {
		return
	}
	height := float64(g.settings.Window.Height)
	writeIdx := 0
	for _, b := range activeBullets {
		if b == nil {
			continue
		}
		if b.Active && b.body != nil {
			pos := b.body.Position()
			b.X = pos.X - b.W/2
			b.Y = pos.Y - b.H/2
			if b.Y+b.H < 0 || b.Y > height {
				b.Deactivate(g)
			}
		}
		if b.seq != nil {
			b.seq.Advance(dtMillis)
		}
		if !b.Active {
			b.seq = nil
			bulletPool.Put(b)
			continue
		}
		activeBullets[writeIdx] = b
		writeIdx++
	}
	activeBullets = activeBullets[:writeIdx]
}

// DrawBullets renders all active bullets through the mesh surface, the
// UV-sampling draw path.
func DrawBullets(g *Game) {
	for _, b := range activeBullets {
		if b != nil && b.Active {
			g.catalog.DrawSequence(g.mesh, b.seq, b.X, b.Y, 0, 0)
		}
	}
}

// ResetBullets retires every bullet, e.g. between waves.
func ResetBullets(g *Game) {
	for _, b := range activeBullets {
		if b != nil && b.Active {
			b.Deactivate(g)
			b.seq = nil
			bulletPool.Put(b)
		}
	}
	activeBullets = activeBullets[:0]
}
