// Package apierr maps domain errors onto HTTP status codes and stable
// machine-readable error codes.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizparty/quizparty-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeRoomNotFound      = "ROOM_NOT_FOUND"
	CodeRoomNotWaiting    = "ROOM_NOT_WAITING"
	CodeRoomNotPlaying    = "ROOM_NOT_PLAYING"
	CodeGameFinished      = "GAME_FINISHED"
	CodeNoPlayers         = "NO_PLAYERS"
	CodeNotPaused         = "NOT_PAUSED"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeNotHost           = "NOT_HOST"
	CodeDuplicateAnswer   = "DUPLICATE_ANSWER"
	CodeNoCurrentQuestion = "NO_CURRENT_QUESTION"
	CodeVotingInactive    = "VOTING_INACTIVE"
	CodeNotAnOption       = "NOT_AN_OPTION"
	CodeAlreadyVoted      = "ALREADY_VOTED"
	CodeNoPowerUp         = "NO_POWER_UP"
	CodeBankEmpty         = "BANK_EMPTY"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomNotWaiting):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotWaiting, "Room is not accepting players"}}
	case errors.Is(err, model.ErrRoomNotPlaying):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotPlaying, "Room is not in play"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game has finished"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNoPlayers, "At least one player is required"}}
	case errors.Is(err, model.ErrNotPaused):
		return &httpError{http.StatusConflict, APIError{CodeNotPaused, "Game is not paused"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrDuplicateAnswer):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateAnswer, "Already answered this question"}}
	case errors.Is(err, model.ErrNoCurrentQuestion):
		return &httpError{http.StatusConflict, APIError{CodeNoCurrentQuestion, "No question is live"}}
	case errors.Is(err, model.ErrVotingInactive):
		return &httpError{http.StatusConflict, APIError{CodeVotingInactive, "No ballot is open"}}
	case errors.Is(err, model.ErrNotAnOption):
		return &httpError{http.StatusBadRequest, APIError{CodeNotAnOption, "Category is not on the ballot"}}
	case errors.Is(err, model.ErrAlreadyVoted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyVoted, "Already voted on this ballot"}}
	case errors.Is(err, model.ErrNoPowerUp):
		return &httpError{http.StatusConflict, APIError{CodeNoPowerUp, "No power-up available"}}
	case errors.Is(err, model.ErrBankEmpty):
		return &httpError{http.StatusConflict, APIError{CodeBankEmpty, "No questions available"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
