package main

import (
	"github.com/jakecoffman/cp"
)

const (
	ctPlayer cp.CollisionType = iota + 1
	ctInvader
	ctPlayerBullet
	ctEnemyBullet
)

// Hit is one bullet contact recorded during a space step. Exactly one of
// Invader/Player is set.
type Hit struct {
	Bullet  *Bullet
	Invader *Invader
	Player  *Player
}

// CollisionWorld wraps a chipmunk space holding sensor shapes for the
// player, invaders, and bullets. Contacts are queued during Step and
// drained by the game afterwards, so shapes are never removed mid-step.
type CollisionWorld struct {
	space *cp.Space
	hits  []Hit
}

func NewCollisionWorld() *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 1
	cw := &CollisionWorld{space: space}

	bulletVsInvader := space.NewCollisionHandler(ctPlayerBullet, ctInvader)
	bulletVsInvader.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Shapes()
		bullet, _ := a.UserData.(*Bullet)
		invader, _ := b.UserData.(*Invader)
		if bullet != nil && invader != nil && bullet.Active && invader.Alive {
			cw.hits = append(cw.hits, Hit{Bullet: bullet, Invader: invader})
		}
		return false
	}

	bulletVsPlayer := space.NewCollisionHandler(ctEnemyBullet, ctPlayer)
	bulletVsPlayer.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Shapes()
		bullet, _ := a.UserData.(*Bullet)
		player, _ := b.UserData.(*Player)
		if bullet != nil && player != nil && bullet.Active {
			cw.hits = append(cw.hits, Hit{Bullet: bullet, Player: player})
		}
		return false
	}

	return cw
}

func (cw *CollisionWorld) Step(dt float64) {
	cw.space.Step(dt)
}

// DrainHits returns the contacts queued by the last Step and clears the
// queue.
func (cw *CollisionWorld) DrainHits() []Hit {
	hits := cw.hits
	cw.hits = nil
	return hits
}

// AddPlayer attaches a kinematic sensor box for the player ship.
func (cw *CollisionWorld) AddPlayer(p *Player) {
	body := cw.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(cp.Vector{X: p.X + p.W/2, Y: p.Y + p.H/2})
	shape := cw.space.AddShape(cp.NewBox(body, p.W, p.H, 0))
	shape.SetSensor(true)
	shape.SetCollisionType(ctPlayer)
	shape.UserData = p
	p.body = body
	p.shape = shape
}

// AddInvader attaches a kinematic sensor box for one invader.
func (cw *CollisionWorld) AddInvader(inv *Invader) {
	body := cw.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(cp.Vector{X: inv.X + inv.W/2, Y: inv.Y + inv.H/2})
	shape := cw.space.AddShape(cp.NewBox(body, inv.W, inv.H, 0))
	shape.SetSensor(true)
	shape.SetCollisionType(ctInvader)
	shape.UserData = inv
	inv.body = body
	inv.shape = shape
}

// AddBullet attaches a dynamic sensor box moving at vy. Bullets are the
// only dynamic bodies in the space: chipmunk never collides two
// non-dynamic bodies, so the kinematic player and invaders only ever
// meet bullets.
func (cw *CollisionWorld) AddBullet(b *Bullet, vy float64) {
	body := cw.space.AddBody(cp.NewBody(1, cp.INFINITY))
	body.SetPosition(cp.Vector{X: b.X + b.W/2, Y: b.Y + b.H/2})
	body.SetVelocity(0, vy)
	shape := cw.space.AddShape(cp.NewBox(body, b.W, b.H, 0))
	shape.SetSensor(true)
	if b.Faction == FactionPlayer {
		shape.SetCollisionType(ctPlayerBullet)
	} else {
		shape.SetCollisionType(ctEnemyBullet)
	}
	shape.UserData = b
	b.body = body
	b.shape = shape
}

// Remove detaches a shape/body pair. Must not be called during Step.
func (cw *CollisionWorld) Remove(body *cp.Body, shape *cp.Shape) {
	if shape != nil {
		cw.space.RemoveShape(shape)
	}
	if body != nil {
		cw.space.RemoveBody(body)
	}
}
