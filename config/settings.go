package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/troupo/invaders/assets"
)

// Settings holds the game tuning loaded from assets/settings.yaml.
type Settings struct {
	Window WindowSettings `yaml:"window"`
	Player PlayerSettings `yaml:"player"`
	Wave   WaveSettings   `yaml:"wave"`
}

type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PlayerSettings struct {
	MoveSpeed          float64 `yaml:"move_speed"`
	FireCooldownFrames int     `yaml:"fire_cooldown_frames"`
	Lives              int     `yaml:"lives"`
}

type WaveSettings struct {
	Columns     int      `yaml:"columns"`
	Rows        []string `yaml:"rows"` // enemy type per formation row, top to bottom
	SpacingX    float64  `yaml:"spacing_x"`
	SpacingY    float64  `yaml:"spacing_y"`
	MarchSpeed  float64  `yaml:"march_speed"` // px/s at wave 1 with a full formation
	DescendStep float64  `yaml:"descend_step"`
}

// LoadSettings reads and validates the embedded settings document.
func LoadSettings() (*Settings, error) {
	data, err := assets.LoadFile("settings.yaml")
	if err != nil {
		return nil, fmt.Errorf("config: load settings.yaml: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings unmarshals a settings document and fills defaults for
// anything left unset.
func ParseSettings(data []byte) (*Settings, error) {
	s := defaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: unmarshal settings: %w", err)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return nil, fmt.Errorf("config: window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Wave.Columns <= 0 {
		return nil, fmt.Errorf("config: wave columns must be > 0, got %d", s.Wave.Columns)
	}
	if len(s.Wave.Rows) == 0 {
		return nil, fmt.Errorf("config: wave rows must not be empty")
	}
	return s, nil
}

func defaultSettings() *Settings {
	return &Settings{
		Window: WindowSettings{Title: "Troup'O Invaders", Width: 960, Height: 720},
		Player: PlayerSettings{MoveSpeed: 300, FireCooldownFrames: 20, Lives: 3},
		Wave: WaveSettings{
			Columns:     6,
			Rows:        []string{"cow", "sheep", "goat", "alpaca"},
			SpacingX:    80,
			SpacingY:    72,
			MarchSpeed:  40,
			DescendStep: 24,
		},
	}
}
