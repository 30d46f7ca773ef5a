package model

import "errors"

// Common errors used across the application. Illegal transitions and
// duplicates are expected domain outcomes reported as values, never panics.
var (
	// Room errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomNotWaiting = errors.New("room is not accepting players")
	ErrRoomNotPlaying = errors.New("room is not in play")
	ErrGameFinished   = errors.New("game is finished")
	ErrNoPlayers      = errors.New("no players have joined")
	ErrNotPaused      = errors.New("game is not paused")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotHost        = errors.New("requester is not the host")

	// Answer errors
	ErrDuplicateAnswer   = errors.New("player already answered this question")
	ErrNoCurrentQuestion = errors.New("no current question")

	// Voting errors
	ErrVotingInactive = errors.New("no voting in progress")
	ErrNotAnOption    = errors.New("category is not one of the offered options")
	ErrAlreadyVoted   = errors.New("player already voted")

	// Power-up errors
	ErrNoPowerUp = errors.New("player holds no power-up")

	// Question bank errors
	ErrBankEmpty = errors.New("question bank has no matching questions")
)
