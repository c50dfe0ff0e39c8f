package scoring

import (
	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/rules"
)

// suddenDeath reports whether deuce is resolved by a single point
func (e *Engine) suddenDeath() bool {
	return e.config.UseNoAd || !e.config.UseAdvantage
}

// winsGameOnPoint reports whether a point to p would end the current regular game
func (e *Engine) winsGameOnPoint(p models.Player) bool {
	g := e.state.CurrentGame
	mine, theirs := g.Points.Get(p), g.Points.Get(p.Opponent())
	switch mine {
	case models.GamePoint_ADVANTAGE:
		return true
	case models.GamePoint_FORTY:
		switch theirs {
		case models.GamePoint_ADVANTAGE:
			return false
		case models.GamePoint_FORTY:
			return e.suddenDeath()
		default:
			return true
		}
	}
	return false
}

func (e *Engine) addRegularPoint(p models.Player) {
	g := &e.state.CurrentGame
	opponent := p.Opponent()
	mine, theirs := g.Points.Get(p), g.Points.Get(opponent)

	if e.winsGameOnPoint(p) {
		e.winGame(p)
		return
	}

	switch {
	case mine == models.GamePoint_FORTY && theirs == models.GamePoint_ADVANTAGE:
		// back to deuce
		g.Points.Set(opponent, models.GamePoint_FORTY)
	case mine == models.GamePoint_FORTY && theirs == models.GamePoint_FORTY:
		g.Points.Set(p, models.GamePoint_ADVANTAGE)
	default:
		g.Points.Set(p, mine.Next())
		if e.config.UseNoAd && g.Points.Player1 == models.GamePoint_FORTY && g.Points.Player2 == models.GamePoint_FORTY {
			g.IsNoAdDecidingPoint = true
		}
	}
}

func (e *Engine) addTiebreakPoint(p models.Player) {
	g := &e.state.CurrentGame
	g.TiebreakPoints.Inc(p)

	// The first server serves one point, then service alternates every two points.
	if g.TiebreakPoints.Total()%2 == 1 {
		g.Server = g.Server.Opponent()
	}

	if rules.WinsTiebreak(e.config, g.IsMatchTiebreak, g.TiebreakPoints.Get(p), g.TiebreakPoints.Get(p.Opponent())) {
		e.winSet(p)
	}
}

func (e *Engine) winGame(p models.Player) {
	e.state.CurrentSetState.Games.Inc(p)
	won := e.state.CurrentSetState.Games.Get(p)
	lost := e.state.CurrentSetState.Games.Get(p.Opponent())

	switch {
	case rules.WinsSet(e.config, won, lost):
		e.winSet(p)
	case rules.StartsTiebreak(e.config, won, lost):
		e.startTiebreak(false)
	default:
		e.nextGame()
	}
}

func (e *Engine) winSet(p models.Player) {
	var tiebreakScore *models.PlayerCount
	if e.state.CurrentGame.Numeric() {
		e.state.CurrentSetState.Games.Inc(p)
		score := e.state.CurrentGame.TiebreakPoints
		tiebreakScore = &score
	}

	e.state.CompletedSets = append(e.state.CompletedSets, models.CompletedSet{
		SetNumber:     e.state.CurrentSet,
		Games:         e.state.CurrentSetState.Games,
		Winner:        p,
		TiebreakScore: tiebreakScore,
	})
	e.state.Sets.Inc(p)
	e.logger.Debug("set won", "set", e.state.CurrentSet, "winner", p, "games", e.state.CurrentSetState.Games)

	if e.state.Sets.Get(p) >= e.config.SetsToWin {
		e.winMatch(p)
		return
	}

	e.state.CurrentSet++
	e.state.CurrentSetState = models.SetState{}

	if e.config.DecidingSetMatchTiebreak && models.IsDecidingSet(e.state) {
		e.startTiebreak(true)
		return
	}
	e.nextGame()
}

func (e *Engine) winMatch(p models.Player) {
	e.state.Winner = p
	e.state.IsFinished = true
	e.logger.Info("match finished", "winner", p, "sets", e.state.Sets)
}

// startTiebreak hands the first tiebreak point to the player due to serve the next game
func (e *Engine) startTiebreak(matchTiebreak bool) {
	e.changeServer()
	e.state.CurrentGame = models.GameState{
		Server:          e.state.Server,
		IsTiebreak:      true,
		IsMatchTiebreak: matchTiebreak,
	}
	e.logger.Debug("tiebreak started", "server", e.state.Server, "match_tiebreak", matchTiebreak)
}

func (e *Engine) nextGame() {
	e.changeServer()
	e.state.CurrentGame = models.GameState{
		Server: e.state.Server,
		Points: models.LoveAll(),
	}
}

func (e *Engine) changeServer() {
	e.state.Server = e.state.Server.Opponent()
}
