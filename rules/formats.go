package rules

import (
	"errors"
	"fmt"

	"github.com/justinjudd/scoreboard/models"
)

// SetTiebreakPoints is the target score of a tiebreak that decides a set
const SetTiebreakPoints = 7

// ErrUnsupportedFormat is wrapped by every error returned for an unknown format tag
var ErrUnsupportedFormat = errors.New("unsupported tennis format")

// UnsupportedFormatError carries the rejected tag
type UnsupportedFormatError struct {
	Format models.TennisFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFormat, string(e.Format))
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

type formatEntry struct {
	config   models.TennisConfig
	display  string
	detailed string
}

var order = []models.TennisFormat{
	models.TennisFormat_BEST_OF_3,
	models.TennisFormat_BEST_OF_5,
	models.TennisFormat_SINGLE_SET,
	models.TennisFormat_PRO_SET,
	models.TennisFormat_MATCH_TIEBREAK,
	models.TennisFormat_SHORT_SET,
	models.TennisFormat_NO_AD,
	models.TennisFormat_FAST4,
	models.TennisFormat_BEST_OF_3_MATCH_TB,
	models.TennisFormat_NO_LET,
}

var table = map[models.TennisFormat]formatEntry{
	models.TennisFormat_BEST_OF_3: {
		config: models.TennisConfig{
			SetsToWin: 2, GamesPerSet: 6, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 6, TiebreakPoints: 7,
		},
		display:  "Best of 3 sets",
		detailed: "Best of 3 sets with advantage, tiebreak at 6-6 in every set",
	},
	models.TennisFormat_BEST_OF_5: {
		config: models.TennisConfig{
			SetsToWin: 3, GamesPerSet: 6, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 6, TiebreakPoints: 7,
		},
		display:  "Best of 5 sets",
		detailed: "Best of 5 sets with advantage, tiebreak at 6-6 in every set",
	},
	models.TennisFormat_SINGLE_SET: {
		config: models.TennisConfig{
			SetsToWin: 1, GamesPerSet: 6, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 6, TiebreakPoints: 7,
		},
		display:  "Single set",
		detailed: "Single set with advantage, tiebreak at 6-6",
	},
	models.TennisFormat_PRO_SET: {
		config: models.TennisConfig{
			SetsToWin: 1, GamesPerSet: 8, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 8, TiebreakPoints: 7,
		},
		display:  "Pro set (8 games)",
		detailed: "Pro set (8 games) with advantage, tiebreak at 8-8",
	},
	models.TennisFormat_MATCH_TIEBREAK: {
		config: models.TennisConfig{
			SetsToWin: 1, GamesPerSet: 0, UseAdvantage: false, UseTiebreak: true,
			TiebreakAt: 0, TiebreakPoints: 10,
		},
		display:  "Match tiebreak (10 points)",
		detailed: "Match tiebreak to 10 points, win by 2",
	},
	models.TennisFormat_SHORT_SET: {
		config: models.TennisConfig{
			SetsToWin: 1, GamesPerSet: 4, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 4, TiebreakPoints: 7,
		},
		display:  "Short set (4 games)",
		detailed: "Short set (4 games) with advantage, tiebreak at 4-4",
	},
	models.TennisFormat_NO_AD: {
		config: models.TennisConfig{
			SetsToWin: 2, GamesPerSet: 6, UseAdvantage: false, UseTiebreak: true,
			TiebreakAt: 6, TiebreakPoints: 7, UseNoAd: true,
		},
		display:  "No-ad",
		detailed: "Best of 3 sets without advantage, deciding point at deuce, tiebreak at 6-6",
	},
	models.TennisFormat_FAST4: {
		config: models.TennisConfig{
			SetsToWin: 4, GamesPerSet: 4, UseAdvantage: false, UseTiebreak: true,
			TiebreakAt: 3, TiebreakPoints: 7, UseNoAd: true,
			UseAlternateTiebreakSides: true, DecidingSetMatchTiebreak: true,
		},
		display:  "Fast4",
		detailed: "Fast4 without advantage, tiebreak at 3-3",
	},
	models.TennisFormat_BEST_OF_3_MATCH_TB: {
		config: models.TennisConfig{
			SetsToWin: 2, GamesPerSet: 6, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 6, TiebreakPoints: 10, DecidingSetMatchTiebreak: true,
		},
		display:  "Best of 3, match tiebreak decider",
		detailed: "Best of 3 sets with advantage, tiebreak at 6-6, third set played as a 10 point match tiebreak",
	},
	models.TennisFormat_NO_LET: {
		config: models.TennisConfig{
			SetsToWin: 2, GamesPerSet: 6, UseAdvantage: true, UseTiebreak: true,
			TiebreakAt: 6, TiebreakPoints: 7, UseNoLet: true,
		},
		display:  "Best of 3, no-let",
		detailed: "Best of 3 sets with advantage, tiebreak at 6-6, serves clipping the net stay in play",
	},
}

// GetConfig returns the rule set for format. Unknown tags are rejected with an *UnsupportedFormatError
func GetConfig(format models.TennisFormat) (models.TennisConfig, error) {
	entry, ok := table[format]
	if !ok {
		return models.TennisConfig{}, &UnsupportedFormatError{Format: format}
	}
	cfg := entry.config
	cfg.Format = format
	return cfg, nil
}

// Supported reports whether format is part of the closed vocabulary
func Supported(format models.TennisFormat) bool {
	_, ok := table[format]
	return ok
}

// Formats lists every supported format in display order
func Formats() []models.TennisFormat {
	out := make([]models.TennisFormat, len(order))
	copy(out, order)
	return out
}

// DisplayName is the short human readable name of format
func DisplayName(format models.TennisFormat) string {
	if entry, ok := table[format]; ok {
		return entry.display
	}
	return string(format)
}

// DetailedName describes the rules of format in one line
func DetailedName(format models.TennisFormat) string {
	if entry, ok := table[format]; ok {
		return entry.detailed
	}
	return string(format)
}
