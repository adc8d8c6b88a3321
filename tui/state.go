package tui

type state int

const (
	loadingState state = iota
	transcribingState
	playingState
)

func (s state) String() string {
	switch s {
	case transcribingState:
		return "transcribing"
	case playingState:
		return "playing"
	default:
		return "starting"
	}
}
