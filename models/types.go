package models

// Player identifies one of the two sides of a match
type Player string

const (
	Player_1 Player = "PLAYER_1"
	Player_2 Player = "PLAYER_2"
)

// Valid reports whether p is one of the two known players
func (p Player) Valid() bool {
	return p == Player_1 || p == Player_2
}

// Opponent returns the other side of the match
func (p Player) Opponent() Player {
	if p == Player_1 {
		return Player_2
	}
	return Player_1
}

// TennisFormat selects the rule set a match is played under. The vocabulary is closed, see rules.GetConfig
type TennisFormat string

const (
	TennisFormat_BEST_OF_3          TennisFormat = "BEST_OF_3"
	TennisFormat_BEST_OF_5          TennisFormat = "BEST_OF_5"
	TennisFormat_SINGLE_SET         TennisFormat = "SINGLE_SET"
	TennisFormat_PRO_SET            TennisFormat = "PRO_SET"
	TennisFormat_MATCH_TIEBREAK     TennisFormat = "MATCH_TIEBREAK"
	TennisFormat_SHORT_SET          TennisFormat = "SHORT_SET"
	TennisFormat_NO_AD              TennisFormat = "NO_AD"
	TennisFormat_FAST4              TennisFormat = "FAST4"
	TennisFormat_BEST_OF_3_MATCH_TB TennisFormat = "BEST_OF_3_MATCH_TB"
	TennisFormat_NO_LET             TennisFormat = "NO_LET"
)

// MatchStatus is the lifecycle status of a stored match record
type MatchStatus string

const (
	MatchStatus_NOT_STARTED MatchStatus = "NOT_STARTED"
	MatchStatus_IN_PROGRESS MatchStatus = "IN_PROGRESS"
	MatchStatus_FINISHED    MatchStatus = "FINISHED"
)

// CourtSide is the half of the court the next serve is hit from
type CourtSide string

const (
	CourtSide_RIGHT CourtSide = "RIGHT" // deuce court
	CourtSide_LEFT  CourtSide = "LEFT"  // ad court
)

// PlayerCount holds one integer per player. Used for sets, games and tiebreak points
type PlayerCount struct {
	Player1 int `json:"PLAYER_1"`
	Player2 int `json:"PLAYER_2"`
}

// Get returns the count for p
func (c PlayerCount) Get(p Player) int {
	if p == Player_2 {
		return c.Player2
	}
	return c.Player1
}

// Inc adds one to the count for p
func (c *PlayerCount) Inc(p Player) {
	if p == Player_2 {
		c.Player2++
		return
	}
	c.Player1++
}

// Total is the sum of both counts
func (c PlayerCount) Total() int {
	return c.Player1 + c.Player2
}

// GamePoint is an ordinal score inside a regular game
type GamePoint string

const (
	GamePoint_LOVE      GamePoint = "0"
	GamePoint_FIFTEEN   GamePoint = "15"
	GamePoint_THIRTY    GamePoint = "30"
	GamePoint_FORTY     GamePoint = "40"
	GamePoint_ADVANTAGE GamePoint = "AD"
)

var gamePointOrder = []GamePoint{GamePoint_LOVE, GamePoint_FIFTEEN, GamePoint_THIRTY, GamePoint_FORTY, GamePoint_ADVANTAGE}

// Index returns the number of points a player holding gp has won in a game that has not gone past deuce. AD counts as 4
func (gp GamePoint) Index() int {
	for i, p := range gamePointOrder {
		if p == gp {
			return i
		}
	}
	return 0
}

// Next returns the ordinal following gp. AD has no successor and is returned unchanged
func (gp GamePoint) Next() GamePoint {
	i := gp.Index()
	if i+1 >= len(gamePointOrder) {
		return gp
	}
	return gamePointOrder[i+1]
}

// Valid reports whether gp is one of the five ordinal labels
func (gp GamePoint) Valid() bool {
	for _, p := range gamePointOrder {
		if p == gp {
			return true
		}
	}
	return false
}

// GamePoints is the pair of ordinal scores in a regular game
type GamePoints struct {
	Player1 GamePoint `json:"PLAYER_1"`
	Player2 GamePoint `json:"PLAYER_2"`
}

// Get returns the ordinal score for p
func (g GamePoints) Get(p Player) GamePoint {
	if p == Player_2 {
		return g.Player2
	}
	return g.Player1
}

// Set replaces the ordinal score for p
func (g *GamePoints) Set(p Player, gp GamePoint) {
	if p == Player_2 {
		g.Player2 = gp
		return
	}
	g.Player1 = gp
}

// LoveAll is the score at the start of a regular game
func LoveAll() GamePoints {
	return GamePoints{Player1: GamePoint_LOVE, Player2: GamePoint_LOVE}
}
