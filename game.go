package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/troupo/invaders/assets"
	"github.com/troupo/invaders/config"
	"github.com/troupo/invaders/score"
	"github.com/troupo/invaders/script"
	"github.com/troupo/invaders/sprite"
)

const (
	spriteConfigPath = "sprites.json"
	scoreDBPath      = "invaders.db"
)

type gameState int

const (
	stateLoading gameState = iota
	statePlaying
	statePaused
	stateGameOver
)

type Game struct {
	settings *config.Settings
	debug    bool

	state gameState
	quit  bool

	catalog *sprite.Catalog
	surface *sprite.ImageSurface
	mesh    *sprite.MeshSurface

	player    *Player
	wave      *Wave
	collision *CollisionWorld

	evaluator  *script.Evaluator
	difficulty script.Difficulty
	waveNum    int

	scoreStore *score.Store
	scoreVal   int
	hiScore    int

	fireTimer float64 // seconds until the next enemy volley

	shootSFX     *audio.Player
	explosionSFX *audio.Player

	pauseUI    *ebitenui.UI
	gameOverUI *ebitenui.UI

	watcher *sprite.Watcher
}

func NewGame(settings *config.Settings, debug, watch bool) *Game {
	g := &Game{
		settings: settings,
		debug:    debug,
		state:    stateLoading,
		catalog:  sprite.NewCatalog(),
		surface:  &sprite.ImageSurface{},
		mesh:     &sprite.MeshSurface{},
	}

	// Sheet decoding happens off the render loop; the loading screen
	// polls IsReady and LoadProgress until every sheet settles.
	go func() {
		if err := g.catalog.Load(spriteConfigPath); err != nil {
			log.Printf("catalog load: %v", err)
		}
	}()

	evaluator, err := script.LoadEvaluator()
	if err != nil {
		log.Fatalf("difficulty script: %v", err)
	}
	g.evaluator = evaluator

	if store, err := score.Open(scoreDBPath); err != nil {
		log.Printf("score store unavailable: %v", err)
	} else {
		g.scoreStore = store
		if hi, err := store.HighScore(); err == nil {
			g.hiScore = hi
		}
	}

	if p, err := assets.LoadAudioPlayer("audio/shoot.wav"); err == nil {
		g.shootSFX = p
	} else {
		log.Printf("load shoot.wav: %v", err)
	}
	if p, err := assets.LoadAudioPlayer("audio/explosion.wav"); err == nil {
		g.explosionSFX = p
	} else {
		log.Printf("load explosion.wav: %v", err)
	}

	if watch {
		if w, err := sprite.NewWatcher("assets", spriteConfigPath); err != nil {
			log.Printf("config watcher: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.gameOverUI = NewGameOverUI(g)
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.scoreStore != nil {
		_ = g.scoreStore.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	dtSec := 1.0 / float64(ebiten.TPS())
	dtMillis := 1000.0 / float64(ebiten.TPS())

	switch g.state {
	case stateLoading:
		if err := g.catalog.Err(); err != nil {
			return fmt.Errorf("sprite catalog failed: %w", err)
		}
		if g.catalog.IsReady() {
			g.startRun()
		}

	case statePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.state = statePaused
			return nil
		}
		g.player.Update(g, dtSec, dtMillis)
		g.wave.Update(g, dtSec, dtMillis)
		g.updateEnemyFire(dtSec)
		UpdateBullets(g, dtSec, dtMillis)

		g.collision.Step(dtSec)
		for _, hit := range g.collision.DrainHits() {
			g.resolveHit(hit)
		}

		if g.player.Lives <= 0 || g.wave.BottomReached(g.player.Y) {
			g.gameOver()
			return nil
		}
		if g.wave.Cleared() {
			g.nextWave()
		}

	case statePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.state = statePlaying
			return nil
		}
		g.pauseUI.Update()

	case stateGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.startRun()
			return nil
		}
		g.gameOverUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.state == stateLoading {
		drawLoading(screen, g.settings, g.catalog.LoadProgress())
		return
	}

	g.surface.Target = screen
	g.mesh.Target = screen

	g.wave.Draw(g)
	g.player.Draw(g)
	DrawBullets(g)
	drawHUD(screen, g)

	switch g.state {
	case statePaused:
		g.pauseUI.Draw(screen)
	case stateGameOver:
		g.gameOverUI.Draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  bullets: %d", ebiten.ActualFPS(), len(activeBullets)))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Window.Width, g.settings.Window.Height
}

// startRun resets everything for a fresh game, either from the loading
// screen or from the game-over menu.
func (g *Game) startRun() {
	g.scoreVal = 0
	g.waveNum = 1
	g.refreshDifficulty()

	if g.collision != nil {
		ResetBullets(g)
	}
	g.collision = NewCollisionWorld()
	g.player = NewPlayer(g)
	g.wave = NewWave(g)
	g.fireTimer = g.difficulty.FireInterval
	g.state = statePlaying
}

func (g *Game) nextWave() {
	g.waveNum++
	g.refreshDifficulty()
	ResetBullets(g)
	g.wave = NewWave(g)
	g.fireTimer = g.difficulty.FireInterval
}

func (g *Game) refreshDifficulty() {
	d, err := g.evaluator.ForWave(g.waveNum)
	if err != nil {
		log.Printf("difficulty for wave %d: %v", g.waveNum, err)
		return
	}
	g.difficulty = d
}

func (g *Game) updateEnemyFire(dtSec float64) {
	g.fireTimer -= dtSec
	if g.fireTimer > 0 {
		return
	}
	g.fireTimer = g.difficulty.FireInterval
	if shooter := g.wave.RandomShooter(); shooter != nil {
		SpawnBullet(g, shooter.X+shooter.W/2, shooter.Y+shooter.H, enemyBulletSpeed*shooter.Speed, FactionEnemy)
	}
}

func (g *Game) resolveHit(hit Hit) {
	switch {
	case hit.Invader != nil:
		if hit.Bullet == nil || !hit.Bullet.Active || !hit.Invader.Alive {
			return
		}
		hit.Bullet.Deactivate(g)
		g.wave.Kill(g, hit.Invader)
		g.scoreVal += hit.Invader.Points
		g.playSFX(g.explosionSFX)

	case hit.Player != nil:
		if hit.Bullet == nil || !hit.Bullet.Active {
			return
		}
		hit.Bullet.Deactivate(g)
		g.player.Lives--
		g.playSFX(g.explosionSFX)
	}
}

func (g *Game) gameOver() {
	if g.scoreStore != nil {
		if err := g.scoreStore.Record(score.Entry{Score: g.scoreVal, Wave: g.waveNum}); err != nil {
			log.Printf("record score: %v", err)
		}
		if hi, err := g.scoreStore.HighScore(); err == nil {
			g.hiScore = hi
		}
	}
	if g.scoreVal > g.hiScore {
		g.hiScore = g.scoreVal
	}
	g.state = stateGameOver
}

func (g *Game) playSFX(p *audio.Player) {
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// drainWatcher applies pending dev-mode config changes without blocking
// the update loop.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.catalog.Reload(name); err != nil {
				log.Printf("reload %s: %v", name, err)
			} else {
				log.Printf("reloaded sprite config from %s", name)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("config watcher: %v", err)
		default:
			return
		}
	}
}
