package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TennisConfig is the immutable rule set for a match, produced from a TennisFormat by the rules package
type TennisConfig struct {
	Format                    TennisFormat `json:"format"`
	SetsToWin                 int          `json:"setsToWin"`
	GamesPerSet               int          `json:"gamesPerSet"` // 0 for pure tiebreak formats
	UseAdvantage              bool         `json:"useAdvantage"`
	UseTiebreak               bool         `json:"useTiebreak"`
	TiebreakAt                int          `json:"tiebreakAt"`
	TiebreakPoints            int          `json:"tiebreakPoints"` // target of a match tiebreak
	UseNoAd                   bool         `json:"useNoAd"`
	UseAlternateTiebreakSides bool         `json:"useAlternateTiebreakSides"`
	UseNoLet                  bool         `json:"useNoLet"`
	DecidingSetMatchTiebreak  bool         `json:"decidingSetMatchTiebreak"`
}

// GameState is the game in progress. Points holds the ordinal score of a regular game and
// TiebreakPoints the counters of a tiebreak; which one is live depends on the tiebreak flags.
type GameState struct {
	Points              GamePoints
	TiebreakPoints      PlayerCount
	Server              Player
	IsTiebreak          bool
	IsMatchTiebreak     bool
	IsNoAdDecidingPoint bool
}

// Numeric reports whether the game is scored with integer counters
func (g GameState) Numeric() bool {
	return g.IsTiebreak || g.IsMatchTiebreak
}

// PointsPlayed is the number of points played so far in the game. Advantage states count
// as an extra point past the six needed to reach deuce, so only the parity is reliable once deuce was reached.
func (g GameState) PointsPlayed() int {
	if g.Numeric() {
		return g.TiebreakPoints.Total()
	}
	return g.Points.Player1.Index() + g.Points.Player2.Index()
}

type gameStateJSON struct {
	Points              json.RawMessage `json:"points"`
	Server              Player          `json:"server"`
	IsTiebreak          bool            `json:"isTiebreak"`
	IsMatchTiebreak     bool            `json:"isMatchTiebreak,omitempty"`
	IsNoAdDecidingPoint bool            `json:"isNoAdDecidingPoint,omitempty"`
}

// MarshalJSON emits a single points object, either ordinal labels or integers
func (g GameState) MarshalJSON() ([]byte, error) {
	var (
		points []byte
		err    error
	)
	if g.Numeric() {
		points, err = json.Marshal(g.TiebreakPoints)
	} else {
		points, err = json.Marshal(g.Points)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(gameStateJSON{
		Points:              points,
		Server:              g.Server,
		IsTiebreak:          g.IsTiebreak,
		IsMatchTiebreak:     g.IsMatchTiebreak,
		IsNoAdDecidingPoint: g.IsNoAdDecidingPoint,
	})
}

// UnmarshalJSON reads the points object according to the tiebreak flags
func (g *GameState) UnmarshalJSON(data []byte) error {
	var raw gameStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = GameState{
		Server:              raw.Server,
		IsTiebreak:          raw.IsTiebreak,
		IsMatchTiebreak:     raw.IsMatchTiebreak,
		IsNoAdDecidingPoint: raw.IsNoAdDecidingPoint,
	}
	if len(raw.Points) == 0 || string(raw.Points) == "null" {
		if !g.Numeric() {
			g.Points = LoveAll()
		}
		return nil
	}
	if g.Numeric() {
		if err := json.Unmarshal(raw.Points, &g.TiebreakPoints); err != nil {
			return fmt.Errorf("tiebreak points: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(raw.Points, &g.Points); err != nil {
		return fmt.Errorf("game points: %w", err)
	}
	if !g.Points.Player1.Valid() || !g.Points.Player2.Valid() {
		return fmt.Errorf("game points: unknown label in %s", raw.Points)
	}
	return nil
}

// SetState is the set in progress
type SetState struct {
	Games PlayerCount `json:"games"`
}

// CompletedSet is appended to the match once a set ends
type CompletedSet struct {
	SetNumber     int          `json:"setNumber"`
	Games         PlayerCount  `json:"games"`
	Winner        Player       `json:"winner"`
	TiebreakScore *PlayerCount `json:"tiebreakScore,omitempty"`
}

// MatchState is the authoritative state of a match. Server is the server of the next regular
// game, CurrentGame.Server is the server of the next point.
type MatchState struct {
	Sets            PlayerCount    `json:"sets"`
	CurrentSet      int            `json:"currentSet"`
	CurrentSetState SetState       `json:"currentSetState"`
	CurrentGame     GameState      `json:"currentGame"`
	Server          Player         `json:"server"`
	CompletedSets   []CompletedSet `json:"completedSets"`
	Winner          Player         `json:"winner,omitempty"`
	IsFinished      bool           `json:"isFinished"`
	Config          TennisConfig   `json:"config"`
}

// Clone returns a deep copy that shares nothing with m
func (m MatchState) Clone() MatchState {
	out := m
	out.CompletedSets = make([]CompletedSet, len(m.CompletedSets))
	for i, cs := range m.CompletedSets {
		out.CompletedSets[i] = cs
		if cs.TiebreakScore != nil {
			tb := *cs.TiebreakScore
			out.CompletedSets[i].TiebreakScore = &tb
		}
	}
	return out
}

// Snapshot is the serialised form of a match handed to persistence and accepted back by the engine
type Snapshot struct {
	MatchState
	PointsHistory []PointDetail `json:"pointsHistory,omitempty"`
	StartedAt     *time.Time    `json:"startedAt,omitempty"`
	EndedAt       *time.Time    `json:"endedAt,omitempty"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{MatchState: s.MatchState.Clone()}
	if s.PointsHistory != nil {
		out.PointsHistory = make([]PointDetail, len(s.PointsHistory))
		for i, p := range s.PointsHistory {
			out.PointsHistory[i] = p.Clone()
		}
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	return out
}
