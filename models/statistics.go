package models

// StatisticsVersion is the schema version of MatchStatistics
const StatisticsVersion = 2

// PlayerStatistics are the counters and derived values for one player
type PlayerStatistics struct {
	PointsWon        int `json:"pointsWon"`
	TotalServes      int `json:"totalServes"`
	FirstServes      int `json:"firstServes"`
	SecondServes     int `json:"secondServes"`
	FirstServeWins   int `json:"firstServeWins"`
	SecondServeWins  int `json:"secondServeWins"`
	Aces             int `json:"aces"`
	DoubleFaults     int `json:"doubleFaults"`
	ServiceWinners   int `json:"serviceWinners"`
	ServicePointsWon int `json:"servicePointsWon"`
	ReturnPointsWon  int `json:"returnPointsWon"`
	Winners          int `json:"winners"`
	UnforcedErrors   int `json:"unforcedErrors"`
	ForcedErrors     int `json:"forcedErrors"`
	ShortRallies     int `json:"shortRallies"`
	LongRallies      int `json:"longRallies"`
	BreakPoints      int `json:"breakPoints"`
	BreakPointsSaved int `json:"breakPointsSaved"`

	FirstServePercentage     float64 `json:"firstServePercentage"`
	FirstServeWinPercentage  float64 `json:"firstServeWinPercentage"`
	SecondServeWinPercentage float64 `json:"secondServeWinPercentage"`
	ServiceHoldPercentage    float64 `json:"serviceHoldPercentage"`
	BreakPointConversion     float64 `json:"breakPointConversion"`
	WinnerToErrorRatio       float64 `json:"winnerToErrorRatio"`
	ReturnWinPercentage      float64 `json:"returnWinPercentage"`
	DominanceRatio           float64 `json:"dominanceRatio"`
}

// RallyStatistics aggregates the points that carry rally data
type RallyStatistics struct {
	AvgRallyLength float64 `json:"avgRallyLength"`
	LongestRally   int     `json:"longestRally"`
	ShortestRally  int     `json:"shortestRally"`
	TotalRallies   int     `json:"totalRallies"`
}

// MatchStatistics is the read-only statistics snapshot derived from a point history
type MatchStatistics struct {
	Version       int              `json:"version"`
	TotalPoints   int              `json:"totalPoints"`
	Player1       PlayerStatistics `json:"player1"`
	Player2       PlayerStatistics `json:"player2"`
	Match         RallyStatistics  `json:"match"`
	PointsHistory []PointDetail    `json:"pointsHistory"`
}

// For returns the statistics block of p
func (m *MatchStatistics) For(p Player) *PlayerStatistics {
	if p == Player_2 {
		return &m.Player2
	}
	return &m.Player1
}

// LegacyStatistics is the flat, totals-only statistics shape written by older clients
type LegacyStatistics struct {
	TotalPoints          *int          `json:"totalPoints,omitempty"`
	Aces                 *int          `json:"aces,omitempty"`
	DoubleFaults         *int          `json:"doubleFaults,omitempty"`
	Winners              *int          `json:"winners,omitempty"`
	UnforcedErrors       *int          `json:"unforcedErrors,omitempty"`
	ForcedErrors         *int          `json:"forcedErrors,omitempty"`
	ServiceWinners       *int          `json:"serviceWinners,omitempty"`
	FirstServePercentage *float64      `json:"firstServePercentage,omitempty"`
	AvgRallyLength       *float64      `json:"avgRallyLength,omitempty"`
	LongestRally         *int          `json:"longestRally,omitempty"`
	ShortestRally        *int          `json:"shortestRally,omitempty"`
	PointsHistory        []PointDetail `json:"pointsHistory,omitempty"`
}
