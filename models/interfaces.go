package models

import (
	"errors"
	"time"
)

// ErrMatchNotFound is returned by a StorageEngine when no record has the requested id
var ErrMatchNotFound = errors.New("match not found")

// Players holds the display names of both sides
type Players struct {
	P1 string `json:"p1"`
	P2 string `json:"p2"`
}

// Name returns the display name of p
func (p Players) Name(player Player) string {
	if player == Player_2 {
		return p.P2
	}
	return p.P1
}

// MatchRecord is a match as kept by persistence
type MatchRecord struct {
	ID            string         `json:"id" storm:"id"`
	SportType     string         `json:"sportType"`
	Format        TennisFormat   `json:"format" storm:"index"`
	Players       Players        `json:"players"`
	Status        MatchStatus    `json:"status" storm:"index"`
	Score         string         `json:"score,omitempty"`
	Winner        Player         `json:"winner,omitempty"`
	CompletedSets []CompletedSet `json:"completedSets"`
	MatchState    *Snapshot      `json:"matchState,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" storm:"index"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// MatchUpdate lists the record fields a client may overwrite. Nil fields are left alone
type MatchUpdate struct {
	Status        *MatchStatus   `json:"status,omitempty"`
	Score         *string        `json:"score,omitempty"`
	Winner        *Player        `json:"winner,omitempty"`
	CompletedSets []CompletedSet `json:"completedSets,omitempty"`
}

// StorageEngine is the persistence collaborator for matches. Implementations keep whole
// records and never interpret the scoring state beyond deriving the record status.
type StorageEngine interface {
	CreateMatch(sportType string, format TennisFormat, players Players) (*MatchRecord, error)
	GetMatches() ([]MatchRecord, error)
	GetMatch(id string) (*MatchRecord, error)
	UpdateMatch(id string, update MatchUpdate) (*MatchRecord, error)
	SaveState(id string, snapshot Snapshot) (*MatchRecord, error)
	DeleteMatch(id string) error
	Close() error
}
