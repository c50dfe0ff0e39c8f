package scoring

import "github.com/justinjudd/scoreboard/models"

// ServingSide returns the half of the court the next point is served from. Even point counts
// serve from the deuce court, odd counts from the ad court.
func (e *Engine) ServingSide() models.CourtSide {
	if e.state.CurrentGame.PointsPlayed()%2 == 0 {
		return models.CourtSide_RIGHT
	}
	return models.CourtSide_LEFT
}

// ShouldChangeSides reports whether players switch ends before the next point. It is advisory and changes no state
func (e *Engine) ShouldChangeSides() bool {
	if e.state.IsFinished {
		return false
	}
	g := e.state.CurrentGame
	played := g.PointsPlayed()
	if played > 0 {
		if !g.Numeric() {
			return false
		}
		if e.config.UseAlternateTiebreakSides {
			return (played-1)%4 == 0
		}
		return played%6 == 0
	}

	games := e.state.CurrentSetState.Games.Total()
	if games > 0 {
		return games%2 == 1
	}
	// first game of a set: ends change if the previous set had an odd number of games
	if n := len(e.state.CompletedSets); n > 0 {
		return e.state.CompletedSets[n-1].Games.Total()%2 == 1
	}
	return false
}

// IsBreakPoint reports whether the receiver would win the current regular game with the next point
func (e *Engine) IsBreakPoint() bool {
	if e.state.IsFinished || e.state.CurrentGame.Numeric() {
		return false
	}
	return e.winsGameOnPoint(e.state.CurrentGame.Server.Opponent())
}
