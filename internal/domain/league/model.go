package league

import (
	"sort"

	"github.com/footsim/manager/internal/domain/fixture"
)

// Standing is one table row computed from played fixtures.
type Standing struct {
	Position     int
	TeamID       string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

func (s Standing) GoalDiff() int { return s.GoalsFor - s.GoalsAgainst }

// Table computes standings for the given teams from played league
// fixtures. Fixtures from knockout competitions are ignored. Missing
// stats render as neutral rows rather than failing.
func Table(teamIDs []string, fixtures []fixture.Fixture) []Standing {
	rows := make(map[string]*Standing, len(teamIDs))
	for _, id := range teamIDs {
		rows[id] = &Standing{TeamID: id}
	}

	for _, f := range fixtures {
		if !f.Played || f.Competition != fixture.CompetitionLeague {
			continue
		}
		home, okH := rows[f.HomeID]
		away, okA := rows[f.AwayID]
		if !okH || !okA {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += f.HomeScore
		home.GoalsAgainst += f.AwayScore
		away.GoalsFor += f.AwayScore
		away.GoalsAgainst += f.HomeScore

		switch {
		case f.HomeScore > f.AwayScore:
			home.Won++
			home.Points += 3
			away.Lost++
		case f.AwayScore > f.HomeScore:
			away.Won++
			away.Points += 3
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	out := make([]Standing, 0, len(rows))
	for _, id := range teamIDs {
		out = append(out, *rows[id])
	}
	Sort(out)
	return out
}

// Sort orders rows by points, goal difference, goals scored, then team
// id for a stable total order, and renumbers positions.
func Sort(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}
