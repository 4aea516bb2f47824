package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue timings
const (
	createNoteDuration = 60 * time.Millisecond
	createAttack       = 5 * time.Millisecond
	createRelease      = 30 * time.Millisecond

	selectDuration = 50 * time.Millisecond
	selectAttack   = 3 * time.Millisecond
	selectRelease  = 35 * time.Millisecond

	deleteDuration = 120 * time.Millisecond
	deleteAttack   = 2 * time.Millisecond
	deleteRelease  = 90 * time.Millisecond

	resizeDuration = 15 * time.Millisecond
	resizeAttack   = 1 * time.Millisecond
	resizeRelease  = 10 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a mono wave duplicated to both channels
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration; sustain fills whatever attack and release leave
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero means silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateCreateSound is a rising two-note square chirp (C5 then G5)
func CreateCreateSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(523.25, createNoteDuration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, createNoteDuration, createAttack, createRelease, rate)

	n2 := NewOscillator(783.99, createNoteDuration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, createNoteDuration, createAttack, createRelease, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), 0.5*cfg.effectVolume(SoundCreate))
}

// CreateSelectSound is a short sine blip with a faint octave
func CreateSelectSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(660.0, selectDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, selectDuration, selectAttack, selectRelease, rate)

	over := NewOscillator(1320.0, selectDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, selectDuration, selectAttack, selectRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.effectVolume(SoundSelect))
}

// CreateDeleteSound is a decaying noise burst
func CreateDeleteSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, deleteDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, deleteDuration, deleteAttack, deleteRelease, rate)

	return newVolume(shaped, 0.6*cfg.effectVolume(SoundDelete))
}

// CreateResizeSound is a very short high square tick
func CreateResizeSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(1200.0, resizeDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, resizeDuration, resizeAttack, resizeRelease, rate)

	return newVolume(shaped, 0.3*cfg.effectVolume(SoundResize))
}

// GetSoundEffect returns a fresh streamer for the cue, nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	switch soundType {
	case SoundCreate:
		return CreateCreateSound(cfg)
	case SoundSelect:
		return CreateSelectSound(cfg)
	case SoundDelete:
		return CreateDeleteSound(cfg)
	case SoundResize:
		return CreateResizeSound(cfg)
	default:
		return nil
	}
}

// soundDuration is the total length of a cue
func soundDuration(soundType SoundType) time.Duration {
	switch soundType {
	case SoundCreate:
		return 2 * createNoteDuration
	case SoundSelect:
		return selectDuration
	case SoundDelete:
		return deleteDuration
	case SoundResize:
		return resizeDuration
	default:
		return 0
	}
}
