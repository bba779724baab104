package main

import (
	"log"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/troupo/invaders/sprite"
)

const (
	formationMargin = 16  // px kept clear at the screen edges
	diveSpeed       = 180 // px/s baseline for diving invaders
)

// EnemyMeta is the per-type game data declared in the sprite config's
// metadata side-table.
type EnemyMeta struct {
	Speed  float64 `json:"speed"`
	Points int     `json:"points"`
}

// Invader is one animal in the formation.
type Invader struct {
	Kind   string
	X, Y   float64
	W, H   float64
	Alive  bool
	Points int
	Speed  float64

	// offset of the formation slot relative to the wave origin
	offX, offY float64

	diving  bool
	wrapped bool

	seq *sprite.FrameSequence

	body  *cp.Body
	shape *cp.Shape
}

// Wave is the marching formation. It moves as one block: step sideways,
// descend and reverse at the screen edges, speeding up as it thins out.
type Wave struct {
	invaders []*Invader
	alive    int

	originX, originY float64
	dir              float64
}

func NewWave(g *Game) *Wave {
	meta, ok, err := sprite.MetadataAs[map[string]EnemyMeta](g.catalog, "enemies")
	if err != nil {
		log.Printf("enemy metadata: %v", err)
	}
	if !ok {
		meta = map[string]EnemyMeta{}
	}

	ws := g.settings.Wave
	w := &Wave{
		originX: formationMargin * 2,
		originY: 64,
		dir:     1,
	}

	for rowIdx, kind := range ws.Rows {
		for col := 0; col < ws.Columns; col++ {
			inv := &Invader{
				Kind:   kind,
				Alive:  true,
				Points: 10,
				Speed:  1,
				offX:   float64(col) * ws.SpacingX,
				offY:   float64(rowIdx) * ws.SpacingY,
			}
			if m, ok := meta[kind]; ok {
				inv.Points = m.Points
				inv.Speed = m.Speed
			}
			inv.seq = g.catalog.Instantiate(kind + "_walk")
			inv.W, inv.H = 64, 64
			if inv.seq != nil {
				r := inv.seq.CurrentRegion()
				inv.W, inv.H = float64(r.W), float64(r.H)
				inv.seq.Play()
			} else {
				log.Printf("wave: no sprite for enemy type %q", kind)
			}
			inv.X = w.originX + inv.offX
			inv.Y = w.originY + inv.offY
			g.collision.AddInvader(inv)
			w.invaders = append(w.invaders, inv)
			w.alive++
		}
	}
	return w
}

func (w *Wave) Update(g *Game, dtSec, dtMillis float64) {
	speed := g.settings.Wave.MarchSpeed * g.difficulty.SpeedScale
	if total := len(w.invaders); total > 0 {
		dead := float64(total-w.alive) / float64(total)
		speed *= 1 + 1.5*dead
	}
	dx := w.dir * speed * dtSec

	minX, maxX, any := w.formationBounds()
	width := float64(g.settings.Window.Width)
	if any && (minX+dx < formationMargin || maxX+dx > width-formationMargin) {
		w.originY += g.settings.Wave.DescendStep
		w.dir = -w.dir
	} else {
		w.originX += dx
	}

	for _, inv := range w.invaders {
		if !inv.Alive {
			continue
		}
		if inv.diving {
			w.updateDive(g, inv, dtSec)
		} else {
			inv.X = w.originX + inv.offX
			inv.Y = w.originY + inv.offY
		}
		if inv.seq != nil {
			inv.seq.Advance(dtMillis)
		}
		if inv.body != nil {
			inv.body.SetPosition(cp.Vector{X: inv.X + inv.W/2, Y: inv.Y + inv.H/2})
		}
	}

	w.maybeStartDive(g, dtSec)
}

// updateDive moves a diving invader straight down. Leaving the bottom of
// the screen wraps it to the top; it rejoins the formation once it falls
// back to its slot.
func (w *Wave) updateDive(g *Game, inv *Invader, dtSec float64) {
	inv.Y += diveSpeed * inv.Speed * dtSec
	if inv.Y > float64(g.settings.Window.Height) {
		inv.Y = -inv.H
		inv.wrapped = true
	}
	if inv.wrapped && inv.Y >= w.originY+inv.offY {
		inv.diving = false
		inv.wrapped = false
		inv.X = w.originX + inv.offX
		inv.Y = w.originY + inv.offY
	}
}

func (w *Wave) maybeStartDive(g *Game, dtSec float64) {
	if rand.Float64() >= g.difficulty.DiveChance*dtSec {
		return
	}
	candidates := make([]*Invader, 0, len(w.invaders))
	for _, inv := range w.invaders {
		if inv.Alive && !inv.diving {
			candidates = append(candidates, inv)
		}
	}
	if len(candidates) == 0 {
		return
	}
	candidates[rand.Intn(len(candidates))].diving = true
}

// formationBounds returns the horizontal extent of the alive, in-formation
// invaders. Diving invaders don't constrain the march.
func (w *Wave) formationBounds() (minX, maxX float64, any bool) {
	for _, inv := range w.invaders {
		if !inv.Alive || inv.diving {
			continue
		}
		left := w.originX + inv.offX
		right := left + inv.W
		if !any || left < minX {
			minX = left
		}
		if !any || right > maxX {
			maxX = right
		}
		any = true
	}
	return minX, maxX, any
}

// Kill marks an invader dead and detaches its collision shape.
func (w *Wave) Kill(g *Game, inv *Invader) {
	if !inv.Alive {
		return
	}
	inv.Alive = false
	g.collision.Remove(inv.body, inv.shape)
	inv.body, inv.shape = nil, nil
	w.alive--
}

func (w *Wave) Cleared() bool {
	return w.alive == 0
}

// BottomReached reports whether the formation has descended to the
// defense line. Diving invaders cross it transiently and don't count.
func (w *Wave) BottomReached(limit float64) bool {
	for _, inv := range w.invaders {
		if inv.Alive && !inv.diving && inv.Y+inv.H >= limit {
			return true
		}
	}
	return false
}

// RandomShooter picks one of the bottom-most alive invaders per column.
func (w *Wave) RandomShooter() *Invader {
	bottom := map[float64]*Invader{}
	for _, inv := range w.invaders {
		if !inv.Alive || inv.diving {
			continue
		}
		if cur, ok := bottom[inv.offX]; !ok || inv.offY > cur.offY {
			bottom[inv.offX] = inv
		}
	}
	if len(bottom) == 0 {
		return nil
	}
	shooters := make([]*Invader, 0, len(bottom))
	for _, inv := range bottom {
		shooters = append(shooters, inv)
	}
	return shooters[rand.Intn(len(shooters))]
}

func (w *Wave) Draw(g *Game) {
	for _, inv := range w.invaders {
		if !inv.Alive {
			continue
		}
		g.catalog.DrawSequence(g.surface, inv.seq, inv.X, inv.Y, 0, 0)
	}
}
