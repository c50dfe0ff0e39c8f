package scoreboard

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/rules"
)

// ScoreLine renders the sets of a match from player 1's side, e.g. "6-4 6-7(5) [10-8]".
// Set tiebreaks show the loser's tiebreak points, match tiebreaks are bracketed.
// An unfinished match also lists the games of the set in progress.
func ScoreLine(state models.MatchState) string {
	var parts []string
	for _, cs := range state.CompletedSets {
		parts = append(parts, SetScore(cs))
	}
	if !state.IsFinished {
		g := state.CurrentSetState.Games
		if g.Total() > 0 {
			parts = append(parts, fmt.Sprintf("%d-%d", g.Player1, g.Player2))
		}
	}
	return strings.Join(parts, " ")
}

// SetScore renders a single completed set
func SetScore(cs models.CompletedSet) string {
	tb := cs.TiebreakScore
	switch {
	case tb == nil:
		return fmt.Sprintf("%d-%d", cs.Games.Player1, cs.Games.Player2)
	case isMatchTiebreakSet(cs):
		return fmt.Sprintf("[%d-%d]", tb.Player1, tb.Player2)
	default:
		return fmt.Sprintf("%d-%d(%d)", cs.Games.Player1, cs.Games.Player2, tb.Get(cs.Winner.Opponent()))
	}
}

func isMatchTiebreakSet(cs models.CompletedSet) bool {
	return cs.TiebreakScore != nil && cs.Games.Total() == 1
}

// GameScore is the current game as an umpire calls it, server first
func GameScore(state models.MatchState) string {
	if state.IsFinished {
		return ""
	}
	g := state.CurrentGame
	server, receiver := g.Server, g.Server.Opponent()

	if g.IsTiebreak {
		return fmt.Sprintf("%d-%d", g.TiebreakPoints.Get(server), g.TiebreakPoints.Get(receiver))
	}

	sp, rp := g.Points.Get(server), g.Points.Get(receiver)
	switch {
	case g.IsNoAdDecidingPoint:
		return "Deciding point"
	case sp == models.GamePoint_FORTY && rp == models.GamePoint_FORTY:
		return "Deuce"
	case sp == models.GamePoint_ADVANTAGE:
		return "Ad in"
	case rp == models.GamePoint_ADVANTAGE:
		return "Ad out"
	case sp == rp && sp != models.GamePoint_LOVE:
		return string(sp) + "-all"
	}
	return string(sp) + "-" + string(rp)
}

const scoreboardHTML = `
{{- $state := .State -}}
{{- $live := not $state.IsFinished -}}
<table class="scoreboard{{if $state.IsFinished}} finished{{end}}">
<caption>{{formatName}}</caption>
<thead>
    <tr><th></th>{{range $state.CompletedSets}}<th class="set">{{.SetNumber}}</th>{{end}}{{if $live}}<th class="set current">{{$state.CurrentSet}}</th><th class="game">{{if $state.CurrentGame.IsTiebreak}}TB{{else}}Game{{end}}</th>{{end}}</tr>
</thead>
<tbody>
{{ range $p := players }}
    <tr class="player{{if winner $p}} winner{{end}}" data-player="{{$p}}">
        <td class="name">{{if serving $p}}<span class="serving">&#9679;</span>{{end}}{{name $p}}</td>
        {{- range $cs := $state.CompletedSets }}
        <td class="set{{if eq $cs.Winner $p}} won{{end}}">{{games $cs $p}}{{with tiebreak $cs $p}}<sup>{{.}}</sup>{{end}}</td>
        {{- end }}
        {{- if $live }}
        <td class="set current">{{$state.CurrentSetState.Games.Get $p}}</td>
        <td class="game">{{point $p}}</td>
        {{- end }}
    </tr>
{{ end -}}
</tbody>
</table>
{{if $live}}<p class="call">{{umpireCall}}</p>{{end}}
`

// Scoreboard is the data rendered by ScoreboardHTML
type Scoreboard struct {
	Players models.Players
	State   models.MatchState
}

// HTML renders the scoreboard as an HTML table, one row per player
func (s Scoreboard) HTML() ([]byte, error) {
	state := s.State

	funcMap := template.FuncMap{
		"players": func() []models.Player {
			return []models.Player{models.Player_1, models.Player_2}
		},
		"name": func(p models.Player) string {
			if n := s.Players.Name(p); n != "" {
				return n
			}
			return string(p)
		},
		"formatName": func() string {
			return rules.DisplayName(state.Config.Format)
		},
		"serving": func(p models.Player) bool {
			return !state.IsFinished && state.CurrentGame.Server == p
		},
		"winner": func(p models.Player) bool {
			return state.IsFinished && state.Winner == p
		},
		"games": func(cs models.CompletedSet, p models.Player) int {
			if isMatchTiebreakSet(cs) {
				return cs.TiebreakScore.Get(p)
			}
			return cs.Games.Get(p)
		},
		// Only the loser of a set tiebreak gets a superscript
		"tiebreak": func(cs models.CompletedSet, p models.Player) string {
			if cs.TiebreakScore == nil || isMatchTiebreakSet(cs) || cs.Winner == p {
				return ""
			}
			return strconv.Itoa(cs.TiebreakScore.Get(p))
		},
		"point": func(p models.Player) string {
			if state.CurrentGame.IsTiebreak {
				return strconv.Itoa(state.CurrentGame.TiebreakPoints.Get(p))
			}
			return string(state.CurrentGame.Points.Get(p))
		},
		"umpireCall": func() string {
			return GameScore(state)
		},
	}
	tmpl, err := template.New("scoreboard").Funcs(funcMap).Parse(scoreboardHTML)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, s)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ScoreboardHTML renders state with the given player names
func ScoreboardHTML(players models.Players, state models.MatchState) ([]byte, error) {
	return Scoreboard{Players: players, State: state}.HTML()
}
