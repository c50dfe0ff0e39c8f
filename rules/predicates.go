package rules

import "github.com/justinjudd/scoreboard/models"

// WinsSet determines if a player holding won games against lost games has taken the set
func WinsSet(cfg models.TennisConfig, won, lost int) bool {
	return won >= cfg.GamesPerSet && won-lost >= 2
}

// StartsTiebreak determines if the game score calls for a set tiebreak
func StartsTiebreak(cfg models.TennisConfig, won, lost int) bool {
	if !cfg.UseTiebreak {
		return false
	}
	return won == cfg.TiebreakAt && lost == cfg.TiebreakAt
}

// TiebreakTarget is the minimum score that ends a tiebreak
func TiebreakTarget(cfg models.TennisConfig, matchTiebreak bool) int {
	if matchTiebreak {
		return cfg.TiebreakPoints
	}
	return SetTiebreakPoints
}

// WinsTiebreak determines if score against opponent ends a tiebreak
func WinsTiebreak(cfg models.TennisConfig, matchTiebreak bool, score, opponent int) bool {
	return score >= TiebreakTarget(cfg, matchTiebreak) && score-opponent >= 2
}

// StartsWithMatchTiebreak reports formats that skip regular games entirely
func StartsWithMatchTiebreak(cfg models.TennisConfig) bool {
	return cfg.GamesPerSet == 0
}
