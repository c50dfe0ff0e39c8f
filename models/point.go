package models

import "time"

// ServeType describes how a serve ended or whether it needed a second attempt
type ServeType string

const (
	ServeType_ACE            ServeType = "ACE"
	ServeType_SERVICE_WINNER ServeType = "SERVICE_WINNER"
	ServeType_FAULT_FIRST    ServeType = "FAULT_FIRST"
	ServeType_DOUBLE_FAULT   ServeType = "DOUBLE_FAULT"
)

// ResultType is how the point was decided
type ResultType string

const (
	ResultType_WINNER         ResultType = "WINNER"
	ResultType_UNFORCED_ERROR ResultType = "UNFORCED_ERROR"
	ResultType_FORCED_ERROR   ResultType = "FORCED_ERROR"
)

// ServeInfo is the optional serve annotation of a point
type ServeInfo struct {
	Type         ServeType `json:"type,omitempty"`
	IsFirstServe bool      `json:"isFirstServe"`
}

// PointResult names who won the point and how. Both Winner and Type are required whenever a PointDetail is supplied
type PointResult struct {
	Winner    Player     `json:"winner"`
	Type      ResultType `json:"type"`
	FinalShot string     `json:"finalShot,omitempty"`
}

// RallyInfo is the optional rally annotation of a point
type RallyInfo struct {
	BallExchanges int `json:"ballExchanges"`
}

// PointDetail is the annotation recorded alongside one scored point
type PointDetail struct {
	Server       Player      `json:"server,omitempty"`
	Serve        *ServeInfo  `json:"serve,omitempty"`
	Result       PointResult `json:"result"`
	Rally        *RallyInfo  `json:"rally,omitempty"`
	IsBreakPoint bool        `json:"isBreakPoint,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

// Complete reports whether the mandatory result fields are present
func (p PointDetail) Complete() bool {
	return p.Result.Winner.Valid() && p.Result.Type != ""
}

// Exchanges returns the rally length, or 0 if the point carries none
func (p PointDetail) Exchanges() int {
	if p.Rally == nil || p.Rally.BallExchanges <= 0 {
		return 0
	}
	return p.Rally.BallExchanges
}

// Clone returns a copy of the point that shares no pointers with p
func (p PointDetail) Clone() PointDetail {
	out := p
	if p.Serve != nil {
		s := *p.Serve
		out.Serve = &s
	}
	if p.Rally != nil {
		r := *p.Rally
		out.Rally = &r
	}
	return out
}
