package audio

import "fmt"

const (
	DefaultSampleRate   = 48000
	DefaultMasterVolume = 0.5
)

// Config controls whether cues play and how loud
type Config struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 - 1.0
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultConfig returns audio disabled with balanced per-cue volumes
func DefaultConfig() *Config {
	return &Config{
		Enabled:      false,
		MasterVolume: DefaultMasterVolume,
		SampleRate:   DefaultSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundCreate: 0.8,
			SoundSelect: 0.6,
			SoundDelete: 0.7,
			SoundResize: 0.4,
		},
	}
}

// Validate checks volume and sample rate ranges
func (c *Config) Validate() error {
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("%w: master volume %v outside [0,1]", ErrInvalidConfig, c.MasterVolume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	}
	for st, v := range c.EffectVolumes {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s volume %v outside [0,1]", ErrInvalidConfig, st, v)
		}
	}
	return nil
}

// effectVolume is the final linear gain for a cue
func (c *Config) effectVolume(st SoundType) float64 {
	v, ok := c.EffectVolumes[st]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}
