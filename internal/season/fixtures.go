package season

import (
	"fmt"
	"time"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/league"
	"github.com/footsim/manager/internal/domain/team"
)

// GenerateLeagueFixtures builds the full double round-robin for one
// league using the circle method: one team stays fixed while the rest
// rotate each round. Home and away alternate by round parity so every
// ordered pair appears as a home fixture exactly once across the two
// halves. Each round's matches are split over two consecutive days.
func GenerateLeagueFixtures(teams []team.Team, year int) []fixture.Fixture {
	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return generateRoundRobin(ids, year)
}

func generateRoundRobin(ids []string, year int) []fixture.Fixture {
	n := len(ids)
	if n < 2 {
		return nil
	}

	// Odd team counts get a bye slot that produces no fixture.
	circle := append([]string(nil), ids...)
	if n%2 != 0 {
		circle = append(circle, "")
	}
	size := len(circle)
	rounds := size - 1
	perRound := size / 2

	var fixtures []fixture.Fixture
	var dayOffsets []int

	addRound := func(round, week int, start time.Time) {
		dayOffset := 0
		for i := 0; i < perRound; i++ {
			a := circle[i]
			b := circle[size-1-i]
			if a == "" || b == "" {
				continue
			}

			home, away := a, b
			// Parity alternation keeps home games balanced through the
			// rotation; the fixed team flips with the round index.
			if (round+i)%2 == 1 {
				home, away = away, home
			}

			// Split the round across two calendar days.
			if i >= perRound/2 {
				dayOffset = 1
			}

			fixtures = append(fixtures, fixture.Fixture{
				ID:          fmt.Sprintf("%d-w%02d-%s-%s", year, week, home, away),
				Week:        week,
				Date:        start.AddDate(0, 0, dayOffset),
				HomeID:      home,
				AwayID:      away,
				Competition: fixture.CompetitionLeague,
			})
			dayOffsets = append(dayOffsets, dayOffset)
		}
		rotate(circle)
	}

	firstStart := FirstHalfStart(year)
	for round := 0; round < rounds; round++ {
		addRound(round, round+1, firstStart.AddDate(0, 0, round*7))
	}

	// Second half: same rotation, fixtures mirrored, resuming after the
	// winter break.
	half := len(fixtures)
	secondStart := SecondHalfStart(year)
	for i := 0; i < half; i++ {
		f := fixtures[i]
		week := f.Week + rounds
		fixtures = append(fixtures, fixture.Fixture{
			ID:          fmt.Sprintf("%d-w%02d-%s-%s", year, week, f.AwayID, f.HomeID),
			Week:        week,
			Date:        secondStart.AddDate(0, 0, (f.Week-1)*7+dayOffsets[i]),
			HomeID:      f.AwayID,
			AwayID:      f.HomeID,
			Competition: fixture.CompetitionLeague,
		})
	}

	return fixtures
}

// rotate holds the first element fixed and rotates the rest clockwise.
func rotate(circle []string) {
	if len(circle) < 3 {
		return
	}
	last := circle[len(circle)-1]
	copy(circle[2:], circle[1:len(circle)-1])
	circle[1] = last
}

// leagueComplete reports whether every league fixture for the given
// teams has been played.
func leagueComplete(fixtures []fixture.Fixture, leagueTeamIDs map[string]bool) bool {
	seen := false
	for _, f := range fixtures {
		if f.Competition != fixture.CompetitionLeague || !leagueTeamIDs[f.HomeID] {
			continue
		}
		seen = true
		if !f.Played {
			return false
		}
	}
	return seen
}

// SynthesizePlayoffSemis builds playoff semifinals from the top-ranked
// teams below the automatic promotion places: 3rd hosts 6th and 4th
// hosts 5th.
func SynthesizePlayoffSemis(standings []league.Standing, autoPromoted int, year, week int, date time.Time) []fixture.Fixture {
	if len(standings) < autoPromoted+4 {
		return nil
	}
	contenders := standings[autoPromoted : autoPromoted+4]
	mk := func(home, away league.Standing, idx int) fixture.Fixture {
		return fixture.Fixture{
			ID:          fmt.Sprintf("%d-po-semi%d", year, idx),
			Week:        week,
			Date:        date,
			HomeID:      home.TeamID,
			AwayID:      away.TeamID,
			Competition: fixture.CompetitionPlayoff,
		}
	}
	return []fixture.Fixture{
		mk(contenders[0], contenders[3], 1),
		mk(contenders[1], contenders[2], 2),
	}
}

// SynthesizePlayoffFinal pairs the two semifinal winners. Semis that
// finished level are decided by their recorded penalty scores.
func SynthesizePlayoffFinal(semis []fixture.Fixture, year, week int, date time.Time) *fixture.Fixture {
	if len(semis) != 2 || !semis[0].Played || !semis[1].Played {
		return nil
	}
	w1 := semis[0].Winner()
	w2 := semis[1].Winner()
	if w1 == "" || w2 == "" {
		return nil
	}
	return &fixture.Fixture{
		ID:          fmt.Sprintf("%d-po-final", year),
		Week:        week,
		Date:        date,
		HomeID:      w1,
		AwayID:      w2,
		Competition: fixture.CompetitionPlayoff,
	}
}

// SynthesizeSuperCup seeds the curtain-raiser from the prior season's
// champion and cup winner.
func SynthesizeSuperCup(champion, cupWinner string, year int) *fixture.Fixture {
	if champion == "" || cupWinner == "" || champion == cupWinner {
		return nil
	}
	return &fixture.Fixture{
		ID:          fmt.Sprintf("%d-supercup", year),
		Week:        0,
		Date:        FirstHalfStart(year).AddDate(0, 0, -7),
		HomeID:      champion,
		AwayID:      cupWinner,
		Competition: fixture.CompetitionSuperCup,
	}
}
