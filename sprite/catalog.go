package sprite

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Catalog resolves named sprites to spritesheet regions. It owns one
// ImageSheet per declared sheet and one FrameSequence template per
// declared sprite. Construct one explicitly and pass it to whatever owns
// the game loop; there is no package-level instance.
type Catalog struct {
	mu        sync.RWMutex
	cfg       *Config
	sheets    map[string]*ImageSheet
	templates map[string]*FrameSequence
	sheetOf   map[string]string // sprite name -> owning sheet name

	loadOnce sync.Once
	loadErr  error
	failed   atomic.Bool

	loadedSheets atomic.Int32
	totalSheets  atomic.Int32
	ready        atomic.Bool
}

// Progress describes how far a catalog load has gotten. FractionComplete
// is a percentage in [0, 100].
type Progress struct {
	LoadedCount      int
	TotalCount       int
	FractionComplete float64
	Complete         bool
}

// NewCatalog creates an empty catalog. Call Load before use.
func NewCatalog() *Catalog {
	return &Catalog{
		sheets:    map[string]*ImageSheet{},
		templates: map[string]*FrameSequence{},
		sheetOf:   map[string]string{},
	}
}

// Load fetches and parses the configuration at path, loads every
// declared sheet, and builds one template per declared sprite. All sheet
// loads are issued before any is awaited; the catalog only becomes ready
// once every one has settled, and a single failure fails the whole load.
// Load is idempotent: repeat calls share the first call's outcome.
func (c *Catalog) Load(path string) error {
	c.loadOnce.Do(func() {
		c.loadErr = c.load(path)
		if c.loadErr != nil {
			c.failed.Store(true)
		}
	})
	return c.loadErr
}

func (c *Catalog) load(path string) error {
	data, err := loadFile(path)
	if err != nil {
		return fmt.Errorf("sprite: load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return err
	}
	return c.build(cfg, true)
}

// build loads every sheet cfg declares and swaps the results in.
// trackProgress is set only for the initial load: a hot reload of a
// ready catalog must not make LoadProgress dip back below complete.
func (c *Catalog) build(cfg *Config, trackProgress bool) error {
	sheets := make(map[string]*ImageSheet, len(cfg.Spritesheets))
	for name, sc := range cfg.Spritesheets {
		sheets[name] = NewImageSheet(sc.Path, sc.FrameWidth, sc.FrameHeight)
	}
	if trackProgress {
		c.totalSheets.Store(int32(len(sheets)))
		c.loadedSheets.Store(0)
	}

	var g errgroup.Group
	for _, sh := range sheets {
		sh := sh
		g.Go(func() error {
			if err := sh.Load(); err != nil {
				return err
			}
			if trackProgress {
				c.loadedSheets.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := validateGeometry(cfg, sheets); err != nil {
		return err
	}

	templates := make(map[string]*FrameSequence)
	sheetOf := make(map[string]string)
	for sheetName, sc := range cfg.Spritesheets {
		sh := sheets[sheetName]
		for spriteName, sp := range sc.Sprites {
			templates[spriteName] = NewFrameSequence(sh, sh.RegionsFor(sp.Frames, sp.Row), sp.FPS, sp.Loop)
			sheetOf[spriteName] = sheetName
		}
	}

	c.mu.Lock()
	c.cfg = cfg
	c.sheets = sheets
	c.templates = templates
	c.sheetOf = sheetOf
	c.mu.Unlock()
	c.ready.Store(true)
	return nil
}

// validateGeometry checks every declared frame coordinate against the
// loaded grid, so a bad row or column fails the load naming the sprite
// instead of blitting garbage at draw time.
func validateGeometry(cfg *Config, sheets map[string]*ImageSheet) error {
	for sheetName, sc := range cfg.Spritesheets {
		sh := sheets[sheetName]
		for spriteName, sp := range sc.Sprites {
			if sp.Row >= sh.Rows() {
				return fmt.Errorf("sprite: sprite %q: row %d outside sheet %q grid (%d rows)",
					spriteName, sp.Row, sheetName, sh.Rows())
			}
			for i, f := range sp.Frames {
				if f >= sh.Columns() {
					return fmt.Errorf("sprite: sprite %q: frames[%d]=%d outside sheet %q grid (%d columns)",
						spriteName, i, f, sheetName, sh.Columns())
				}
			}
		}
	}
	return nil
}

// Reload re-parses the configuration and rebuilds every sheet and
// template, swapping them in atomically. Used by the dev-mode config
// watcher; a failed reload leaves the previous catalog intact.
func (c *Catalog) Reload(path string) error {
	data, err := loadFile(path)
	if err != nil {
		return fmt.Errorf("sprite: reload config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return err
	}
	// Evict cached decodes so edited sheet images are re-read, not just
	// the configuration document.
	for _, sc := range cfg.Spritesheets {
		dropImage(sc.Path)
	}
	return c.build(cfg, false)
}

// Err returns the load failure, if any. Useful when Load runs on a
// background goroutine and the game loop polls for the outcome.
func (c *Catalog) Err() error {
	if !c.failed.Load() {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// IsReady reports whether configuration is parsed and every sheet loaded.
func (c *Catalog) IsReady() bool {
	return c.ready.Load()
}

// LoadProgress reports settled sheet loads against the declared total.
func (c *Catalog) LoadProgress() Progress {
	loaded := int(c.loadedSheets.Load())
	total := int(c.totalSheets.Load())
	p := Progress{
		LoadedCount: loaded,
		TotalCount:  total,
		Complete:    c.ready.Load(),
	}
	if total > 0 {
		p.FractionComplete = 100 * float64(loaded) / float64(total)
	}
	return p
}

// Spritesheet returns the named sheet, or nil if unknown.
func (c *Catalog) Spritesheet(name string) *ImageSheet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sheets[name]
}

// Template returns the shared read-only template for a sprite name, or
// nil if unknown. Callers must not mutate it; animate a clone instead.
func (c *Catalog) Template(name string) *FrameSequence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.templates[name]
}

// Instantiate returns a fresh playable clone of the named template, or
// nil if the name is unknown. An unknown name is a routine condition,
// not an error; callers should skip the entity's animation and move on.
func (c *Catalog) Instantiate(name string) *FrameSequence {
	t := c.Template(name)
	if t == nil {
		return nil
	}
	return t.Clone()
}

// AllSpriteNames returns every declared sprite name, sorted.
func (c *Catalog) AllSpriteNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpritesByCategory groups sprite names by their declaring sheet.
func (c *Catalog) SpritesByCategory() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string][]string, len(c.sheets))
	for spriteName, sheetName := range c.sheetOf {
		out[sheetName] = append(out[sheetName], spriteName)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

// Metadata returns the raw metadata document under a category key, or
// nil if absent. Use MetadataAs to decode it into a typed structure.
func (c *Catalog) Metadata(category string) json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cfg == nil {
		return nil
	}
	return c.cfg.Metadata[category]
}

// MetadataAs decodes the metadata under a category key into T. The
// second return is false when the category is absent.
func MetadataAs[T any](c *Catalog, category string) (T, bool, error) {
	var out T
	raw := c.Metadata(category)
	if raw == nil {
		return out, false, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, true, fmt.Errorf("sprite: metadata %q: %w", category, err)
	}
	return out, true, nil
}

// Draw blits one frame of the named sprite at (x, y). Width and height
// default to the region's native pixel size when not positive. Unknown
// names, unloaded sheets, and out-of-range frame indices are logged
// no-ops: a render loop must keep running regardless of asset problems.
func (c *Catalog) Draw(dst Surface, name string, frameIndex int, x, y, w, h float64) {
	t := c.Template(name)
	if t == nil {
		log.Printf("sprite: draw: unknown sprite %q", name)
		return
	}
	if frameIndex < 0 || frameIndex >= t.Len() {
		log.Printf("sprite: draw: sprite %q has no frame %d", name, frameIndex)
		return
	}
	c.drawRegion(dst, t.Sheet(), t.frames[frameIndex], x, y, w, h)
}

// DrawSequence blits the sequence's current frame at (x, y), resolving
// the sheet through the sequence's own sheet reference.
func (c *Catalog) DrawSequence(dst Surface, seq *FrameSequence, x, y, w, h float64) {
	if seq == nil || seq.Len() == 0 {
		return
	}
	c.drawRegion(dst, seq.Sheet(), seq.CurrentRegion(), x, y, w, h)
}

func (c *Catalog) drawRegion(dst Surface, sheet *ImageSheet, r Region, x, y, w, h float64) {
	if sheet == nil {
		log.Printf("sprite: draw: sequence has no owning sheet")
		return
	}
	if !sheet.Loaded() {
		log.Printf("sprite: draw: sheet %s not loaded yet", sheet.Path())
		return
	}
	if w <= 0 {
		w = float64(r.W)
	}
	if h <= 0 {
		h = float64(r.H)
	}
	dst.DrawRegion(sheet, r, x, y, w, h)
}
