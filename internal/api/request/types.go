package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	HostID string `json:"host_id"`
}

// JoinRoomRequest is the request body for joining a room as a player
type JoinRoomRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// SpectateRequest is the request body for joining a room as a spectator
type SpectateRequest struct {
	SpectatorID string `json:"spectator_id"`
	Name        string `json:"name"`
}

// UpdateSettingsRequest is the request body for patching room settings.
// Absent fields are left unchanged.
type UpdateSettingsRequest struct {
	TimeLimit       *int    `json:"time_limit,omitempty"`
	BasePoints      *int    `json:"base_points,omitempty"`
	ShowAnswers     *bool   `json:"show_answers,omitempty"`
	StreakBonus     *bool   `json:"streak_bonus,omitempty"`
	BonusMultiplier *int    `json:"bonus_multiplier,omitempty"`
	Mode            *string `json:"mode,omitempty"`
	TeamCount       *int    `json:"team_count,omitempty"`
	KidsMode        *bool   `json:"kids_mode,omitempty"`
	Theme           *string `json:"theme,omitempty"`
	GameLength      *string `json:"game_length,omitempty"`
}

// SubmitAnswerRequest is the request body for answering the current
// question. AnswerIndex is used for choice questions; AnswerValue
// carries the raw payload for estimation and sorting questions.
type SubmitAnswerRequest struct {
	PlayerID    string `json:"player_id"`
	AnswerIndex int    `json:"answer_index"`
	AnswerValue string `json:"answer_value,omitempty"`
}

// VoteRequest is the request body for casting a category vote
type VoteRequest struct {
	PlayerID string `json:"player_id"`
	Category string `json:"category"`
}

// PauseRequest is the request body for pausing the game. RemainingMs
// is the host's snapshot of time left on the question timer.
type PauseRequest struct {
	RemainingMs *int64 `json:"remaining_ms,omitempty"`
}

// PowerUpRequest is the request body for activating a held power-up
type PowerUpRequest struct {
	PlayerID string `json:"player_id"`
}
