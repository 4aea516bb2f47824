package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/circled/editor"
)

// SoundManager plays editor cues through a single speaker mixer
// Safe for concurrent use; every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	played      [soundTypeCount]int
}

// NewSoundManager creates a manager; a nil cfg uses DefaultConfig
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker; disabled audio stays uninitialized without error
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if err := sm.cfg.Validate(); err != nil {
		return err
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether cues reach the speaker
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup drops queued cues and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close that allows re-Init; clearing the mixer silences output
	sm.initialized = false
}

// Play queues a cue on the mixer
func (sm *SoundManager) Play(soundType SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := GetSoundEffect(soundType, sm.cfg)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played[soundType]++
}

// PlayCount returns how many cues of a type reached the mixer
func (sm *SoundManager) PlayCount(soundType SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if soundType < 0 || soundType >= soundTypeCount {
		return 0
	}
	return sm.played[soundType]
}

// SoundFor maps an editor change to its cue; moves and drag edges are silent
func SoundFor(kind editor.ChangeKind) (SoundType, bool) {
	switch kind {
	case editor.ChangeCreated:
		return SoundCreate, true
	case editor.ChangeSelected:
		return SoundSelect, true
	case editor.ChangeDeleted:
		return SoundDelete, true
	case editor.ChangeResized:
		return SoundResize, true
	default:
		return 0, false
	}
}

// Observer returns an editor observer that plays the cue for each change
func (sm *SoundManager) Observer() editor.Observer {
	return func(ch editor.Change) {
		if st, ok := SoundFor(ch.Kind); ok {
			sm.Play(st)
		}
	}
}
