package stats

import (
	"encoding/json"
	"fmt"

	"github.com/justinjudd/scoreboard/models"
)

// FromLegacy lifts the flat, totals-only statistics shape into the current schema. Totals are
// credited to player 1 by convention and player 2 is zero-filled.
func FromLegacy(l models.LegacyStatistics) models.MatchStatistics {
	out := models.MatchStatistics{
		Version:       models.StatisticsVersion,
		TotalPoints:   len(l.PointsHistory),
		PointsHistory: make([]models.PointDetail, len(l.PointsHistory)),
	}
	for i, p := range l.PointsHistory {
		out.PointsHistory[i] = p.Clone()
	}
	if l.TotalPoints != nil {
		out.TotalPoints = *l.TotalPoints
	}

	p1 := &out.Player1
	copyInt(&p1.Aces, l.Aces)
	copyInt(&p1.DoubleFaults, l.DoubleFaults)
	copyInt(&p1.Winners, l.Winners)
	copyInt(&p1.UnforcedErrors, l.UnforcedErrors)
	copyInt(&p1.ForcedErrors, l.ForcedErrors)
	copyInt(&p1.ServiceWinners, l.ServiceWinners)
	if l.FirstServePercentage != nil {
		p1.FirstServePercentage = *l.FirstServePercentage
	}

	if l.AvgRallyLength != nil {
		out.Match.AvgRallyLength = *l.AvgRallyLength
	}
	copyInt(&out.Match.LongestRally, l.LongestRally)
	copyInt(&out.Match.ShortestRally, l.ShortestRally)
	out.Match.TotalRallies = len(l.PointsHistory)

	return out
}

func copyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Decode reads statistics in either the current or the legacy shape and returns the current schema
func Decode(raw []byte) (models.MatchStatistics, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.MatchStatistics{}, fmt.Errorf("unable to decode statistics: %w", err)
	}

	_, hasP1 := probe["player1"]
	_, hasP2 := probe["player2"]
	if hasP1 && hasP2 {
		var current models.MatchStatistics
		if err := json.Unmarshal(raw, &current); err != nil {
			return models.MatchStatistics{}, fmt.Errorf("unable to decode statistics: %w", err)
		}
		current.Version = models.StatisticsVersion
		return current, nil
	}

	var legacy models.LegacyStatistics
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return models.MatchStatistics{}, fmt.Errorf("unable to decode legacy statistics: %w", err)
	}
	return FromLegacy(legacy), nil
}
