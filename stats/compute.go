// Package stats derives per-player and per-match statistics from a recorded point history.
//
// Serve-dependent counters need to know who served. The server is read from the point when
// present; otherwise it is inferred from the serve outcome alone (an ace or service winner was
// served by the point's winner, a double fault by its loser). Points where neither applies
// contribute no serve-dependent counters. The inference is a heuristic, not a derivation.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/justinjudd/scoreboard/models"
)

const (
	// RatioSentinel stands in for an infinite ratio (positive numerator, zero denominator)
	RatioSentinel = 999

	shortRallyMax = 4
	longRallyMin  = 9
)

var hundred = decimal.NewFromInt(100)

// Compute derives the statistics snapshot for points. It does not modify points
func Compute(points []models.PointDetail) models.MatchStatistics {
	out := models.MatchStatistics{
		Version:       models.StatisticsVersion,
		TotalPoints:   len(points),
		PointsHistory: make([]models.PointDetail, len(points)),
	}
	var rallies []int

	for i, pt := range points {
		out.PointsHistory[i] = pt.Clone()

		winner := pt.Result.Winner
		if !winner.Valid() {
			winner = ""
		}
		server := ResolveServer(pt)

		var winnerStats, loserStats, serverStats *models.PlayerStatistics
		if winner != "" {
			winnerStats = out.For(winner)
			loserStats = out.For(winner.Opponent())
			winnerStats.PointsWon++
		}
		if server != "" {
			serverStats = out.For(server)
		}

		if pt.Serve != nil {
			if serverStats != nil {
				countServe(serverStats, *pt.Serve, winner != "" && winner == server)
				if winner == server {
					serverStats.ServicePointsWon++
				} else if winnerStats != nil {
					winnerStats.ReturnPointsWon++
				}
			} else {
				if pt.Serve.Type == models.ServeType_ACE && winnerStats != nil {
					winnerStats.Aces++
				}
				if pt.Serve.Type == models.ServeType_DOUBLE_FAULT && loserStats != nil {
					loserStats.DoubleFaults++
				}
			}
		}

		if winnerStats != nil {
			switch pt.Result.Type {
			case models.ResultType_WINNER:
				winnerStats.Winners++
			case models.ResultType_UNFORCED_ERROR:
				loserStats.UnforcedErrors++
			case models.ResultType_FORCED_ERROR:
				loserStats.ForcedErrors++
			}
		}

		if ex := pt.Exchanges(); ex > 0 {
			rallies = append(rallies, ex)
			if winnerStats != nil {
				if ex <= shortRallyMax {
					winnerStats.ShortRallies++
				}
				if ex >= longRallyMin {
					winnerStats.LongRallies++
				}
			}
		}

		if pt.IsBreakPoint && serverStats != nil {
			out.For(server.Opponent()).BreakPoints++
			if winner == server {
				serverStats.BreakPointsSaved++
			}
		}
	}

	finalize(&out.Player1, out.Player2.BreakPointsSaved)
	finalize(&out.Player2, out.Player1.BreakPointsSaved)
	out.Match = rallyStatistics(rallies)

	return out
}

// ResolveServer returns the server of pt, or "" when it can be neither read nor inferred
func ResolveServer(pt models.PointDetail) models.Player {
	if pt.Server.Valid() {
		return pt.Server
	}
	winner := pt.Result.Winner
	if pt.Serve == nil || !winner.Valid() {
		return ""
	}
	switch pt.Serve.Type {
	case models.ServeType_ACE, models.ServeType_SERVICE_WINNER:
		return winner
	case models.ServeType_DOUBLE_FAULT:
		return winner.Opponent()
	}
	return ""
}

func countServe(s *models.PlayerStatistics, serve models.ServeInfo, serverWon bool) {
	s.TotalServes++
	if serve.IsFirstServe {
		s.FirstServes++
		if serverWon {
			s.FirstServeWins++
		}
	} else {
		s.SecondServes++
		if serverWon {
			s.SecondServeWins++
		}
	}

	switch serve.Type {
	case models.ServeType_ACE:
		s.Aces++
	case models.ServeType_SERVICE_WINNER:
		s.ServiceWinners++
	case models.ServeType_DOUBLE_FAULT:
		s.DoubleFaults++
	}
}

func finalize(s *models.PlayerStatistics, opponentSaved int) {
	s.FirstServePercentage = percent(s.FirstServes, s.TotalServes)
	s.FirstServeWinPercentage = percent(s.FirstServeWins, s.FirstServes)
	s.SecondServeWinPercentage = percent(s.SecondServeWins, s.SecondServes)
	s.ServiceHoldPercentage = percent(s.ServicePointsWon, s.TotalServes)
	s.ReturnWinPercentage = percent(s.ReturnPointsWon, s.PointsWon+s.ReturnPointsWon-s.ServicePointsWon)
	s.WinnerToErrorRatio = ratio(s.Winners, s.UnforcedErrors)
	s.DominanceRatio = ratio(s.Winners+s.ForcedErrors, s.UnforcedErrors)

	converted := s.BreakPoints - opponentSaved
	if converted < 0 {
		converted = 0
	}
	s.BreakPointConversion = percent(converted, s.BreakPoints)
}

func rallyStatistics(rallies []int) models.RallyStatistics {
	if len(rallies) == 0 {
		return models.RallyStatistics{}
	}
	rs := models.RallyStatistics{
		TotalRallies:  len(rallies),
		LongestRally:  rallies[0],
		ShortestRally: rallies[0],
	}
	sum := 0
	for _, r := range rallies {
		sum += r
		if r > rs.LongestRally {
			rs.LongestRally = r
		}
		if r < rs.ShortestRally {
			rs.ShortestRally = r
		}
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(rallies))))
	rs.AvgRallyLength = toFloat(avg.Round(1))
	return rs
}

// percent is num/den as a percentage with one decimal, 0 when den is not positive
func percent(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	v := decimal.NewFromInt(int64(num)).Mul(hundred).Div(decimal.NewFromInt(int64(den)))
	return toFloat(v.Round(1))
}

// ratio is num/den with two decimals, RatioSentinel when only den is zero
func ratio(num, den int) float64 {
	if den <= 0 {
		if num > 0 {
			return RatioSentinel
		}
		return 0
	}
	v := decimal.NewFromInt(int64(num)).Div(decimal.NewFromInt(int64(den)))
	return toFloat(v.Round(2))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
