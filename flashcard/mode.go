package flashcard

import (
	"fmt"
	"strings"
)

// State is the quiz view state.
type State int

const (
	Idle State = iota
	AwaitingInput
	Revealed
)

func (s State) String() string {
	return [...]string{"idle", "awaiting-input", "revealed"}[s]
}

// Mode decides which field goes on which face and whether audio is offered.
type Mode int

const (
	// ModeAudio shows the Greek text with an audio control; flipping reveals Russian.
	ModeAudio Mode = iota
	// ModeGreekRussian shows Greek on the front and Russian on the back.
	ModeGreekRussian
	// ModeRussianGreek is the mirror of ModeGreekRussian.
	ModeRussianGreek
)

var Modes = []Mode{ModeAudio, ModeGreekRussian, ModeRussianGreek}

func (m Mode) String() string {
	switch m {
	case ModeAudio:
		return "audio"
	case ModeGreekRussian:
		return "gr-ru"
	case ModeRussianGreek:
		return "ru-gr"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label is the mode name shown on screen.
func (m Mode) Label() string {
	switch m {
	case ModeAudio:
		return "Аудио"
	case ModeGreekRussian:
		return "Греческий → Русский"
	case ModeRussianGreek:
		return "Русский → Греческий"
	default:
		return m.String()
	}
}

// ParseMode accepts the mode names plus the long source/target aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio":
		return ModeAudio, nil
	case "gr-ru", "source-target":
		return ModeGreekRussian, nil
	case "ru-gr", "target-source":
		return ModeRussianGreek, nil
	}
	return ModeAudio, fmt.Errorf("unknown mode %q (want audio, gr-ru or ru-gr)", s)
}

// Face is the card orientation.
type Face int

const (
	FaceDown Face = iota
	FaceUp
)

// Selection scopes the word pool to lessons. No ids means every lesson.
type Selection struct {
	IDs []float64
}

func All() Selection {
	return Selection{}
}

func Lessons(ids ...float64) Selection {
	return Selection{IDs: ids}
}

func (s Selection) IsAll() bool {
	return len(s.IDs) == 0
}
