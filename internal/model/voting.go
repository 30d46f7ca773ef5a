package model

import "time"

// VotingState is one category ballot between rounds
type VotingState struct {
	Active bool

	// Options are drawn without replacement from categories not yet
	// exhausted
	Options []CategoryID

	// Votes maps playerID to chosen category; first vote wins
	Votes map[PlayerID]CategoryID

	// EndsAt is an absolute deadline; clients compute remaining time
	// from it rather than trusting a relative countdown
	EndsAt time.Time

	// Winner is set once the ballot is closed
	Winner CategoryID
}

// PauseState records a pause in question flow
type PauseState struct {
	Paused   bool
	PausedAt time.Time

	// PriorStatus is the status the room held when it was paused, so
	// resuming mid-ballot returns to voting rather than playing
	PriorStatus RoomStatus

	// Remaining is the caller-supplied snapshot of time left on the
	// question timer, preserved across resume so clients can resync
	Remaining *time.Duration
}
