// Package config loads circled settings from defaults, an optional TOML
// file, a .env file plus CIRCLED_* variables, and finally flags applied by main
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/circled/audio"
	"github.com/lixenwraith/circled/editor"
)

// DefaultPath is the config file looked up when -config is not given
const DefaultPath = "circled.toml"

// ErrInvalid wraps every validation and parse failure
var ErrInvalid = errors.New("config: invalid")

type EditorSection struct {
	DefaultRadius float64  `toml:"default_radius"`
	MinRadius     float64  `toml:"min_radius"`
	ResizeStep    float64  `toml:"resize_step"`
	DeleteKeys    []string `toml:"delete_keys"`
}

// SurfaceSection sizes one terminal cell in surface units
// 4x8 keeps circles round on the usual 1:2 cell aspect
type SurfaceSection struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

type ColorSection struct {
	Background string `toml:"background"`
	Normal     string `toml:"normal"`
	Selected   string `toml:"selected"`
	Status     string `toml:"status"`
}

type AudioSection struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"`
	SampleRate   int     `toml:"sample_rate"`
}

type LogSection struct {
	Debug   bool   `toml:"debug"`
	Dir     string `toml:"dir"`
	MaxSize int64  `toml:"max_size"`
}

// Config is the complete program configuration
type Config struct {
	Editor  EditorSection  `toml:"editor"`
	Surface SurfaceSection `toml:"surface"`
	Colors  ColorSection   `toml:"colors"`
	Audio   AudioSection   `toml:"audio"`
	Log     LogSection     `toml:"log"`

	// Path of the file that was decoded, empty when defaults only
	Source string `toml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	ac := audio.DefaultConfig()
	return &Config{
		Editor: EditorSection{
			DefaultRadius: editor.DefaultRadius,
			MinRadius:     editor.DefaultMinRadius,
			ResizeStep:    editor.DefaultResizeStep,
			DeleteKeys:    []string{editor.DefaultDeleteKey},
		},
		Surface: SurfaceSection{
			CellWidth:  4,
			CellHeight: 8,
		},
		Colors: ColorSection{
			Background: "#101418",
			Normal:     "#3c8dbc",
			Selected:   "#f39c12",
			Status:     "#c0c0c0",
		},
		Audio: AudioSection{
			Enabled:      ac.Enabled,
			MasterVolume: ac.MasterVolume,
			SampleRate:   ac.SampleRate,
		},
		Log: LogSection{
			Debug:   false,
			Dir:     "logs",
			MaxSize: 10 * 1024 * 1024,
		},
	}
}

// Load decodes path over the defaults
// A missing file is only an error when explicit is set
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	cfg.Source = path
	return cfg, nil
}

// Validate checks ranges and color syntax
func (c *Config) Validate() error {
	if err := c.EditorConfig().Validate(); err != nil {
		return fmt.Errorf("%w: [editor] %v", ErrInvalid, err)
	}
	if !(c.Surface.CellWidth > 0) || !(c.Surface.CellHeight > 0) {
		return fmt.Errorf("%w: [surface] cell size %vx%v must be positive", ErrInvalid, c.Surface.CellWidth, c.Surface.CellHeight)
	}

	colors := []struct{ name, hex string }{
		{"background", c.Colors.Background},
		{"normal", c.Colors.Normal},
		{"selected", c.Colors.Selected},
		{"status", c.Colors.Status},
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.hex); err != nil {
			return fmt.Errorf("%w: [colors] %s %q: %v", ErrInvalid, col.name, col.hex, err)
		}
	}

	if err := c.AudioConfig().Validate(); err != nil {
		return fmt.Errorf("%w: [audio] %v", ErrInvalid, err)
	}
	if c.Log.MaxSize <= 0 {
		return fmt.Errorf("%w: [log] max_size %d must be positive", ErrInvalid, c.Log.MaxSize)
	}
	if c.Log.Dir == "" {
		return fmt.Errorf("%w: [log] dir is empty", ErrInvalid)
	}
	return nil
}

// EditorConfig converts the [editor] section
func (c *Config) EditorConfig() editor.Config {
	keys := make([]string, len(c.Editor.DeleteKeys))
	copy(keys, c.Editor.DeleteKeys)
	return editor.Config{
		DefaultRadius: c.Editor.DefaultRadius,
		MinRadius:     c.Editor.MinRadius,
		ResizeStep:    c.Editor.ResizeStep,
		DeleteKeys:    keys,
	}
}

// AudioConfig converts the [audio] section, keeping default per-cue volumes
func (c *Config) AudioConfig() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.MasterVolume
	ac.SampleRate = c.Audio.SampleRate
	return ac
}
