package sprite

import (
	"encoding/json"
	"fmt"
)

// Config is the parsed sprite configuration document.
type Config struct {
	Spritesheets map[string]SheetConfig     `json:"spritesheets"`
	Metadata     map[string]json.RawMessage `json:"metadata"`
}

// SheetConfig declares one spritesheet image and its fixed grid.
type SheetConfig struct {
	Path        string                  `json:"path"`
	FrameWidth  int                     `json:"frameWidth"`
	FrameHeight int                     `json:"frameHeight"`
	Sprites     map[string]SpriteConfig `json:"sprites"`
}

// SpriteConfig declares one named animation: the columns to read along a
// single row, and how to play them.
type SpriteConfig struct {
	Frames []int   `json:"frames"`
	Row    int     `json:"row"`
	FPS    float64 `json:"fps"`
	Loop   bool    `json:"loop"`
}

// ParseConfig unmarshals and validates a sprite configuration document.
// Malformed documents are rejected up front with the offending sheet,
// sprite, and field named, instead of failing later during rendering.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("sprite: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Spritesheets) == 0 {
		return fmt.Errorf("sprite: config declares no spritesheets")
	}
	// Sprite names share one flat namespace across every sheet. The
	// source format lets a later sheet silently shadow an earlier one;
	// that is a configuration error here.
	owner := map[string]string{}
	for sheetName, sheet := range c.Spritesheets {
		if sheet.Path == "" {
			return fmt.Errorf("sprite: sheet %q: path must not be empty", sheetName)
		}
		if sheet.FrameWidth <= 0 {
			return fmt.Errorf("sprite: sheet %q: frameWidth must be > 0, got %d", sheetName, sheet.FrameWidth)
		}
		if sheet.FrameHeight <= 0 {
			return fmt.Errorf("sprite: sheet %q: frameHeight must be > 0, got %d", sheetName, sheet.FrameHeight)
		}
		for spriteName, sp := range sheet.Sprites {
			if prev, ok := owner[spriteName]; ok {
				return fmt.Errorf("sprite: sprite %q declared by both sheets %q and %q", spriteName, prev, sheetName)
			}
			owner[spriteName] = sheetName
			if len(sp.Frames) == 0 {
				return fmt.Errorf("sprite: sprite %q: frames must not be empty", spriteName)
			}
			for i, f := range sp.Frames {
				if f < 0 {
					return fmt.Errorf("sprite: sprite %q: frames[%d] must be >= 0, got %d", spriteName, i, f)
				}
			}
			if sp.Row < 0 {
				return fmt.Errorf("sprite: sprite %q: row must be >= 0, got %d", spriteName, sp.Row)
			}
			if sp.FPS <= 0 {
				return fmt.Errorf("sprite: sprite %q: fps must be > 0, got %v", spriteName, sp.FPS)
			}
		}
	}
	return nil
}
