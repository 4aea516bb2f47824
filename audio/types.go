package audio

import (
	"errors"
	"fmt"
)

// SoundType identifies an editor sound cue
type SoundType int

const (
	SoundCreate SoundType = iota // Circle created
	SoundSelect                  // Circle selected
	SoundDelete                  // Selected circle deleted
	SoundResize                  // Wheel resize notch
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundCreate:
		return "create"
	case SoundSelect:
		return "select"
	case SoundDelete:
		return "delete"
	case SoundResize:
		return "resize"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("audio: invalid config")
