package rating

import (
	"sort"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
)

const (
	poorThreshold    = 5.5
	standoutOverride = 9.0

	// maxPoorPerTeam and maxStandoutPerTeam bound how skewed a single
	// team's rating sheet may be.
	maxPoorPerTeam     = 2
	maxStandoutPerTeam = 1
)

// TeamRatings is the rated output for one fixture, both sides ordered
// by roster position.
type TeamRatings struct {
	Home        []fixture.PlayerPerformance
	Away        []fixture.PlayerPerformance
	MVPPlayerID string
}

// DecidingGoalBonus returns the bonus owed to the scorer of the goal
// that put the match out of the loser's reach, and that scorer's player
// id. Goals are indexed in insertion order, which breaks same-minute
// ties deterministically.
func DecidingGoalBonus(events []fixture.MatchEvent, teamID string, teamScore, opponentScore int) (string, float64) {
	if teamScore <= opponentScore {
		return "", 0
	}
	goals := fixture.GoalsFor(events, teamID)
	if opponentScore >= len(goals) {
		return "", 0
	}
	scorer := goals[opponentScore].PlayerID
	if teamScore == 1 && opponentScore == 0 {
		return scorer, 0.5
	}
	return scorer, 0.3
}

// FromEvents rates every starter on both sides from the event stream,
// then enforces the team-wide distribution constraints and picks the
// match MVP.
func FromEvents(home, away team.Team, events []fixture.MatchEvent, homeScore, awayScore int, rng random.Source) TeamRatings {
	out := TeamRatings{
		Home: rateSide(home, events, homeScore, awayScore, rng),
		Away: rateSide(away, events, awayScore, homeScore, rng),
	}

	redistribute(out.Home)
	redistribute(out.Away)

	out.MVPPlayerID = pickMVP(out.Home, out.Away)
	return out
}

func rateSide(t team.Team, events []fixture.MatchEvent, goalsFor, goalsAgainst int, rng random.Source) []fixture.PlayerPerformance {
	result := ResultDraw
	switch {
	case goalsFor > goalsAgainst:
		result = ResultWin
	case goalsFor < goalsAgainst:
		result = ResultLoss
	}

	bonusScorer, bonus := DecidingGoalBonus(events, t.ID, goalsFor, goalsAgainst)

	perfs := make([]fixture.PlayerPerformance, 0, team.LineupSize)
	for _, p := range t.XI() {
		goals, assists, yellows, reds := statLine(events, t.ID, p)

		in := Input{
			Position:      p.Position,
			Skill:         p.Skill,
			Goals:         goals,
			Assists:       assists,
			YellowCards:   yellows,
			RedCards:      reds,
			GoalsConceded: goalsAgainst,
			Result:        result,
			MinutesPlayed: 90,
		}
		if p.ID == bonusScorer {
			in.WinningGoalBonus = bonus
		}

		perfs = append(perfs, fixture.PlayerPerformance{
			PlayerID: p.ID,
			Position: string(p.Position),
			Rating:   Rate(in, rng),
			Goals:    goals,
			Assists:  assists,
		})
	}
	return perfs
}

// statLine extracts one player's countable match line from the events.
func statLine(events []fixture.MatchEvent, teamID string, p player.Player) (goals, assists, yellows, reds int) {
	for _, ev := range events {
		if ev.TeamID != teamID {
			continue
		}
		switch ev.Type {
		case fixture.EventGoal:
			if ev.PlayerID == p.ID {
				goals++
			}
			if ev.AssistID != "" && ev.AssistID == p.ID {
				assists++
			}
		case fixture.EventCardYellow:
			if ev.PlayerID == p.ID {
				yellows++
			}
		case fixture.EventCardRed:
			if ev.PlayerID == p.ID {
				reds++
			}
		}
	}
	return goals, assists, yellows, reds
}

// redistribute applies the per-team skew limits: at most two players
// below 5.5 (the rest are pulled up to exactly 5.5) and at most one
// above 9.0 (the rest are pulled down to exactly 9.0).
func redistribute(perfs []fixture.PlayerPerformance) {
	type ranked struct {
		idx    int
		rating float64
	}

	var poor []ranked
	var standout []ranked
	for i, p := range perfs {
		if p.Rating < poorThreshold {
			poor = append(poor, ranked{idx: i, rating: p.Rating})
		}
		if p.Rating > standoutOverride {
			standout = append(standout, ranked{idx: i, rating: p.Rating})
		}
	}

	if len(poor) > maxPoorPerTeam {
		sort.SliceStable(poor, func(i, j int) bool { return poor[i].rating < poor[j].rating })
		for _, r := range poor[maxPoorPerTeam:] {
			perfs[r.idx].Rating = poorThreshold
		}
	}

	if len(standout) > maxStandoutPerTeam {
		sort.SliceStable(standout, func(i, j int) bool { return standout[i].rating > standout[j].rating })
		for _, r := range standout[maxStandoutPerTeam:] {
			perfs[r.idx].Rating = standoutOverride
		}
	}
}

// pickMVP sorts both sheets together by rating, then goals, then
// assists, and returns the head of the list.
func pickMVP(home, away []fixture.PlayerPerformance) string {
	all := make([]fixture.PlayerPerformance, 0, len(home)+len(away))
	all = append(all, home...)
	all = append(all, away...)
	if len(all) == 0 {
		return ""
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Rating != all[j].Rating {
			return all[i].Rating > all[j].Rating
		}
		if all[i].Goals != all[j].Goals {
			return all[i].Goals > all[j].Goals
		}
		return all[i].Assists > all[j].Assists
	})
	return all[0].PlayerID
}
