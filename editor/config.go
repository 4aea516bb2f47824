package editor

import (
	"errors"
	"fmt"
)

// Default interaction constants
const (
	DefaultRadius     = 20.0
	DefaultMinRadius  = 5.0
	DefaultResizeStep = 2.0
	DefaultDeleteKey  = "Delete"
)

// ErrInvalidConfig is returned by New and Config.Validate
var ErrInvalidConfig = errors.New("editor: invalid config")

// Config holds the tunables of a controller
type Config struct {
	DefaultRadius float64  // radius of newly created circles
	MinRadius     float64  // floor enforced on every resize
	ResizeStep    float64  // radius change per wheel notch
	DeleteKeys    []string // key names that delete the selection
}

// DefaultConfig returns the stock editor behaviour
func DefaultConfig() Config {
	return Config{
		DefaultRadius: DefaultRadius,
		MinRadius:     DefaultMinRadius,
		ResizeStep:    DefaultResizeStep,
		DeleteKeys:    []string{DefaultDeleteKey},
	}
}

// Validate checks the radius invariants can hold
func (c Config) Validate() error {
	switch {
	case !(c.MinRadius > 0):
		return fmt.Errorf("%w: min radius %v must be positive", ErrInvalidConfig, c.MinRadius)
	case !(c.DefaultRadius >= c.MinRadius):
		return fmt.Errorf("%w: default radius %v below min radius %v", ErrInvalidConfig, c.DefaultRadius, c.MinRadius)
	case !(c.ResizeStep > 0):
		return fmt.Errorf("%w: resize step %v must be positive", ErrInvalidConfig, c.ResizeStep)
	case len(c.DeleteKeys) == 0:
		return fmt.Errorf("%w: no delete keys", ErrInvalidConfig)
	}
	for _, k := range c.DeleteKeys {
		if k == "" {
			return fmt.Errorf("%w: empty delete key name", ErrInvalidConfig)
		}
	}
	return nil
}
