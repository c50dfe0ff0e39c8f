package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinjudd/scoreboard/models"
)

const (
	p1 = models.Player_1
	p2 = models.Player_2
)

func point(server, winner models.Player, serve *models.ServeInfo, result models.ResultType, exchanges int) models.PointDetail {
	pt := models.PointDetail{
		Server: server,
		Serve:  serve,
		Result: models.PointResult{Winner: winner, Type: result},
	}
	if exchanges > 0 {
		pt.Rally = &models.RallyInfo{BallExchanges: exchanges}
	}
	return pt
}

func serve(t models.ServeType, first bool) *models.ServeInfo {
	return &models.ServeInfo{Type: t, IsFirstServe: first}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, models.StatisticsVersion, s.Version)
	assert.Equal(t, 0, s.TotalPoints)
	assert.Empty(t, s.PointsHistory)
	assert.Equal(t, models.PlayerStatistics{}, s.Player1)
	assert.Equal(t, models.RallyStatistics{}, s.Match)
}

func TestComputeExplicitServer(t *testing.T) {
	points := []models.PointDetail{
		point(p1, p1, serve(models.ServeType_ACE, true), models.ResultType_WINNER, 1),
		point(p1, p2, serve(models.ServeType_DOUBLE_FAULT, false), models.ResultType_UNFORCED_ERROR, 0),
		point(p1, p1, serve(models.ServeType_FAULT_FIRST, false), models.ResultType_FORCED_ERROR, 6),
		point(p1, p2, serve(models.ServeType_SERVICE_WINNER, true), models.ResultType_WINNER, 10),
	}

	s := Compute(points)
	require.Equal(t, 4, s.TotalPoints)

	a, b := s.Player1, s.Player2
	assert.Equal(t, 2, a.PointsWon)
	assert.Equal(t, 2, b.PointsWon)

	assert.Equal(t, 4, a.TotalServes)
	assert.Equal(t, 2, a.FirstServes)
	assert.Equal(t, 2, a.SecondServes)
	assert.Equal(t, 1, a.FirstServeWins)
	assert.Equal(t, 1, a.SecondServeWins)
	assert.Equal(t, 1, a.Aces)
	assert.Equal(t, 1, a.DoubleFaults, "double fault counted once")
	assert.Equal(t, 1, a.ServiceWinners)
	assert.Equal(t, 2, a.ServicePointsWon)
	assert.Equal(t, 2, b.ReturnPointsWon)
	assert.Equal(t, 0, b.TotalServes)

	assert.Equal(t, 1, a.Winners)
	assert.Equal(t, 1, b.Winners)
	assert.Equal(t, 1, a.UnforcedErrors, "unforced error charged to the loser")
	assert.Equal(t, 1, b.ForcedErrors, "forced error charged to the loser")

	assert.Equal(t, 50.0, a.FirstServePercentage)
	assert.Equal(t, 50.0, a.FirstServeWinPercentage)
	assert.Equal(t, 50.0, a.SecondServeWinPercentage)
	assert.Equal(t, 50.0, a.ServiceHoldPercentage)
	// player 2 won both points off player 1's serve and served none: 2 / (2 + 2 - 0)
	assert.Equal(t, 50.0, b.ReturnWinPercentage)

	assert.Equal(t, 1.0, a.WinnerToErrorRatio)
	assert.Equal(t, float64(RatioSentinel), b.WinnerToErrorRatio)
	assert.Equal(t, float64(RatioSentinel), b.DominanceRatio)

	assert.Equal(t, 1, a.ShortRallies)
	assert.Equal(t, 1, b.LongRallies)
	assert.Equal(t, 0, a.LongRallies)

	assert.Equal(t, models.RallyStatistics{AvgRallyLength: 5.7, LongestRally: 10, ShortestRally: 1, TotalRallies: 3}, s.Match)
}

func TestComputeInferredServer(t *testing.T) {
	points := []models.PointDetail{
		point("", p2, serve(models.ServeType_ACE, true), models.ResultType_WINNER, 0),
		point("", p2, serve(models.ServeType_SERVICE_WINNER, true), models.ResultType_WINNER, 0),
		point("", p1, serve(models.ServeType_DOUBLE_FAULT, false), models.ResultType_UNFORCED_ERROR, 0),
		point("", p1, serve(models.ServeType_FAULT_FIRST, false), models.ResultType_WINNER, 0),
		point("", p1, nil, models.ResultType_WINNER, 0),
	}

	s := Compute(points)
	a, b := s.Player1, s.Player2

	assert.Equal(t, 3, b.TotalServes, "ace, service winner and double fault resolve to player 2")
	assert.Equal(t, 1, b.Aces)
	assert.Equal(t, 1, b.ServiceWinners)
	assert.Equal(t, 1, b.DoubleFaults)
	assert.Equal(t, 2, b.FirstServeWins)
	assert.Equal(t, 2, b.ServicePointsWon)
	assert.Equal(t, 1, a.ReturnPointsWon)

	assert.Equal(t, 0, a.TotalServes, "unresolvable serve contributes no serve counters")
	assert.Equal(t, 3, a.PointsWon)
	assert.Equal(t, 2, a.Winners)
	assert.Equal(t, 1, b.UnforcedErrors)
}

func TestResolveServer(t *testing.T) {
	assert.Equal(t, p2, ResolveServer(point(p2, p1, nil, models.ResultType_WINNER, 0)))
	assert.Equal(t, p1, ResolveServer(point("", p1, serve(models.ServeType_ACE, true), "", 0)))
	assert.Equal(t, p2, ResolveServer(point("", p1, serve(models.ServeType_DOUBLE_FAULT, false), "", 0)))
	assert.Equal(t, models.Player(""), ResolveServer(point("", p1, serve(models.ServeType_FAULT_FIRST, false), "", 0)))
	assert.Equal(t, models.Player(""), ResolveServer(point("", p1, nil, "", 0)))
}

func TestComputePointsWonSum(t *testing.T) {
	var points []models.PointDetail
	types := []models.ServeType{models.ServeType_ACE, models.ServeType_DOUBLE_FAULT, models.ServeType_SERVICE_WINNER, models.ServeType_FAULT_FIRST}
	for i := 0; i < 40; i++ {
		winner := p1
		if i%3 == 0 {
			winner = p2
		}
		server := models.Player("")
		if i%2 == 0 {
			server = p2
		}
		points = append(points, point(server, winner, serve(types[i%len(types)], i%5 != 0), models.ResultType_UNFORCED_ERROR, i%12))
	}

	s := Compute(points)
	assert.Equal(t, len(points), s.Player1.PointsWon+s.Player2.PointsWon)
	assert.Equal(t, len(points), s.TotalPoints)
}

func TestComputeBreakPoints(t *testing.T) {
	points := []models.PointDetail{
		{Server: p1, IsBreakPoint: true, Result: models.PointResult{Winner: p1}},
		{Server: p1, IsBreakPoint: true, Result: models.PointResult{Winner: p2}},
		{Server: p2, IsBreakPoint: true, Result: models.PointResult{Winner: p2}},
		{Server: p1, IsBreakPoint: true, Result: models.PointResult{Winner: p1}},
	}

	s := Compute(points)
	assert.Equal(t, 3, s.Player2.BreakPoints)
	assert.Equal(t, 2, s.Player1.BreakPointsSaved)
	assert.Equal(t, 33.3, s.Player2.BreakPointConversion)

	assert.Equal(t, 1, s.Player1.BreakPoints)
	assert.Equal(t, 1, s.Player2.BreakPointsSaved)
	assert.Equal(t, 0.0, s.Player1.BreakPointConversion)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 66.7, percent(2, 3))
	assert.Equal(t, 0.0, percent(5, 0))
	assert.Equal(t, 0.67, ratio(2, 3))
	assert.Equal(t, 0.0, ratio(0, 0))
	assert.Equal(t, float64(RatioSentinel), ratio(3, 0))
}

func TestComputeDoesNotAlias(t *testing.T) {
	points := []models.PointDetail{point(p1, p1, serve(models.ServeType_ACE, true), models.ResultType_WINNER, 3)}
	s := Compute(points)
	s.PointsHistory[0].Rally.BallExchanges = 99
	s.PointsHistory[0].Serve.Type = models.ServeType_DOUBLE_FAULT

	assert.Equal(t, 3, points[0].Rally.BallExchanges)
	assert.Equal(t, models.ServeType_ACE, points[0].Serve.Type)
}
