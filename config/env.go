package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides
const (
	EnvDefaultRadius = "CIRCLED_DEFAULT_RADIUS"
	EnvMinRadius     = "CIRCLED_MIN_RADIUS"
	EnvResizeStep    = "CIRCLED_RESIZE_STEP"
	EnvAudioEnabled  = "CIRCLED_AUDIO_ENABLED"
	EnvMasterVolume  = "CIRCLED_MASTER_VOLUME" // 0-100
	EnvDebug         = "CIRCLED_DEBUG"
)

// DefaultEnvFile is loaded by ApplyEnv when present
const DefaultEnvFile = ".env"

// ApplyEnv loads envFile (missing is fine) then applies CIRCLED_* variables
// Variables already in the process environment win over the file
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, envFile, err)
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvDefaultRadius, &c.Editor.DefaultRadius},
		{EnvMinRadius, &c.Editor.MinRadius},
		{EnvResizeStep, &c.Editor.ResizeStep},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, f.key, v, err)
		}
		*f.dst = val
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvAudioEnabled, &c.Audio.Enabled},
		{EnvDebug, &c.Log.Debug},
	}
	for _, b := range bools {
		v := os.Getenv(b.key)
		if v == "" {
			continue
		}
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, b.key, v, err)
		}
		*b.dst = val
	}

	// Master volume 0-100 converted to 0.0-1.0 and clamped
	if v := os.Getenv(EnvMasterVolume); v != "" {
		val, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvMasterVolume, v, err)
		}
		c.Audio.MasterVolume = min(max(float64(val)/100.0, 0), 1)
	}

	return nil
}
