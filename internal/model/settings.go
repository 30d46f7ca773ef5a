package model

// GameMode selects the overall ruleset for a room
type GameMode string

const (
	ModeClassic   GameMode = "classic"
	ModeTeam      GameMode = "team"
	ModeLightning GameMode = "lightning"
)

// Theme is a purely presentational hint passed through to clients
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeSpace   Theme = "space"
	ThemeJungle  Theme = "jungle"
	ThemeOcean   Theme = "ocean"
	ThemeCandy   Theme = "candy"
)

// Canonical time limits per mode, in seconds
const (
	DefaultTimeLimit   = 15
	KidsTimeLimit      = 25
	LightningTimeLimit = 5
)

// GameSettings is the mutable per-room configuration
type GameSettings struct {
	// TimeLimit is seconds per question. It is derived from mode flags:
	// changing KidsMode or Mode overrides it (see ApplySettingsPatch).
	TimeLimit       int
	BasePoints      int
	ShowAnswers     bool
	StreakBonus     bool
	BonusMultiplier int
	Mode            GameMode
	TeamCount       int
	KidsMode        bool
	Theme           Theme
	GameLength      GameLength
}

// DefaultSettings returns the settings a new room starts with
func DefaultSettings() GameSettings {
	return GameSettings{
		TimeLimit:       DefaultTimeLimit,
		BasePoints:      1000,
		ShowAnswers:     true,
		StreakBonus:     true,
		BonusMultiplier: 2,
		Mode:            ModeClassic,
		TeamCount:       2,
		KidsMode:        false,
		Theme:           ThemeDefault,
		GameLength:      GameLengthMedium,
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	TimeLimit       *int
	BasePoints      *int
	ShowAnswers     *bool
	StreakBonus     *bool
	BonusMultiplier *int
	Mode            *GameMode
	TeamCount       *int
	KidsMode        *bool
	Theme           *Theme
	GameLength      *GameLength
}

// ApplySettingsPatch merges a patch into existing settings and applies the
// mode-dependent time limit derivation: enabling kids mode forces 25s,
// disabling it restores 15s, lightning mode forces 5s, and switching to
// classic or team mode restores 15s unless kids mode is in effect.
// Lightning takes precedence over kids mode when both appear in one patch.
func ApplySettingsPatch(old GameSettings, patch SettingsPatch) GameSettings {
	next := old

	if patch.TimeLimit != nil {
		next.TimeLimit = *patch.TimeLimit
	}
	if patch.BasePoints != nil {
		next.BasePoints = *patch.BasePoints
	}
	if patch.ShowAnswers != nil {
		next.ShowAnswers = *patch.ShowAnswers
	}
	if patch.StreakBonus != nil {
		next.StreakBonus = *patch.StreakBonus
	}
	if patch.BonusMultiplier != nil {
		next.BonusMultiplier = *patch.BonusMultiplier
	}
	if patch.Mode != nil {
		next.Mode = *patch.Mode
	}
	if patch.TeamCount != nil {
		next.TeamCount = *patch.TeamCount
	}
	if patch.KidsMode != nil {
		next.KidsMode = *patch.KidsMode
	}
	if patch.Theme != nil {
		next.Theme = *patch.Theme
	}
	if patch.GameLength != nil {
		next.GameLength = *patch.GameLength
	}

	// Derived time limit. An explicit TimeLimit in the same patch is
	// overridden by mode flags, matching the product behavior.
	if patch.KidsMode != nil {
		if *patch.KidsMode {
			next.TimeLimit = KidsTimeLimit
		} else {
			next.TimeLimit = DefaultTimeLimit
		}
	}
	if patch.Mode != nil {
		switch *patch.Mode {
		case ModeLightning:
			next.TimeLimit = LightningTimeLimit
		case ModeClassic, ModeTeam:
			if !next.KidsMode {
				next.TimeLimit = DefaultTimeLimit
			}
		}
	}

	return next
}
