package season

import (
	"fmt"
	"testing"
	"time"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/league"
	"github.com/footsim/manager/internal/domain/team"
)

func idTeams(n int) []team.Team {
	out := make([]team.Team, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, team.Team{ID: fmt.Sprintf("t%02d", i+1)})
	}
	return out
}

func TestGenerateLeagueFixturesShape(t *testing.T) {
	t.Parallel()

	const n = 18
	fixtures := GenerateLeagueFixtures(idTeams(n), 2025)

	wantTotal := n * (n - 1)
	if len(fixtures) != wantTotal {
		t.Fatalf("unexpected fixture count: got=%d want=%d", len(fixtures), wantTotal)
	}

	perWeek := map[int]int{}
	maxWeek := 0
	for _, f := range fixtures {
		perWeek[f.Week]++
		if f.Week > maxWeek {
			maxWeek = f.Week
		}
		if f.Competition != fixture.CompetitionLeague {
			t.Fatalf("unexpected competition: %s", f.Competition)
		}
	}
	if maxWeek != 2*(n-1) {
		t.Fatalf("unexpected round count: got=%d want=%d", maxWeek, 2*(n-1))
	}
	for week, count := range perWeek {
		if count != n/2 {
			t.Fatalf("week %d has %d fixtures, want %d", week, count, n/2)
		}
	}
}

func TestEveryOrderedPairHostsOnce(t *testing.T) {
	t.Parallel()

	fixtures := GenerateLeagueFixtures(idTeams(18), 2025)

	seen := map[string]int{}
	for _, f := range fixtures {
		seen[f.HomeID+"|"+f.AwayID]++
	}
	for pair, count := range seen {
		if count != 1 {
			t.Fatalf("pair %s appears %d times as a home fixture, want 1", pair, count)
		}
	}
	if len(seen) != 18*17 {
		t.Fatalf("unexpected ordered pair count: got=%d want=%d", len(seen), 18*17)
	}
}

func TestRoundsSplitAcrossTwoDays(t *testing.T) {
	t.Parallel()

	fixtures := GenerateLeagueFixtures(idTeams(18), 2025)

	dates := map[int]map[time.Time]int{}
	for _, f := range fixtures {
		if dates[f.Week] == nil {
			dates[f.Week] = map[time.Time]int{}
		}
		dates[f.Week][f.Date]++
	}
	for week, byDate := range dates {
		if len(byDate) != 2 {
			t.Fatalf("week %d uses %d dates, want 2", week, len(byDate))
		}
		for date, count := range byDate {
			if count > 5 {
				t.Fatalf("week %d piles %d fixtures onto %s", week, count, date.Format("2006-01-02"))
			}
		}
	}
}

func TestSeasonCalendarHalves(t *testing.T) {
	t.Parallel()

	fixtures := GenerateLeagueFixtures(idTeams(18), 2025)

	first := FirstHalfStart(2025)
	second := SecondHalfStart(2025)
	for _, f := range fixtures {
		if f.Week <= 17 {
			if f.Date.Before(first) || !f.Date.Before(second) {
				t.Fatalf("first-half fixture %s dated %s", f.ID, f.Date.Format("2006-01-02"))
			}
		} else {
			if f.Date.Before(second) {
				t.Fatalf("second-half fixture %s dated before the winter break: %s", f.ID, f.Date.Format("2006-01-02"))
			}
		}
	}
}

func TestOddTeamCountGetsByes(t *testing.T) {
	t.Parallel()

	const n = 5
	fixtures := GenerateLeagueFixtures(idTeams(n), 2025)

	if len(fixtures) != n*(n-1) {
		t.Fatalf("unexpected fixture count: got=%d want=%d", len(fixtures), n*(n-1))
	}
	perWeek := map[int]int{}
	for _, f := range fixtures {
		perWeek[f.Week]++
		if f.HomeID == "" || f.AwayID == "" {
			t.Fatalf("bye leaked into fixture %s", f.ID)
		}
	}
	// Five teams: two matches per round, one team resting.
	for week, count := range perWeek {
		if count != 2 {
			t.Fatalf("week %d has %d fixtures, want 2", week, count)
		}
	}
}

func TestTooFewTeams(t *testing.T) {
	t.Parallel()

	if got := GenerateLeagueFixtures(idTeams(1), 2025); got != nil {
		t.Fatalf("single team should yield no fixtures: got=%d", len(got))
	}
}

func TestSynthesizePlayoffSemis(t *testing.T) {
	t.Parallel()

	standings := []league.Standing{
		{Position: 1, TeamID: "t1"}, {Position: 2, TeamID: "t2"},
		{Position: 3, TeamID: "t3"}, {Position: 4, TeamID: "t4"},
		{Position: 5, TeamID: "t5"}, {Position: 6, TeamID: "t6"},
		{Position: 7, TeamID: "t7"}, {Position: 8, TeamID: "t8"},
	}
	date := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	semis := SynthesizePlayoffSemis(standings, 2, 2025, 35, date)

	if len(semis) != 2 {
		t.Fatalf("unexpected semi count: got=%d want=2", len(semis))
	}
	if semis[0].HomeID != "t3" || semis[0].AwayID != "t6" {
		t.Fatalf("first semi should pair 3rd and 6th: %s vs %s", semis[0].HomeID, semis[0].AwayID)
	}
	if semis[1].HomeID != "t4" || semis[1].AwayID != "t5" {
		t.Fatalf("second semi should pair 4th and 5th: %s vs %s", semis[1].HomeID, semis[1].AwayID)
	}
	for _, s := range semis {
		if s.Competition != fixture.CompetitionPlayoff {
			t.Fatalf("unexpected competition: %s", s.Competition)
		}
	}

	if got := SynthesizePlayoffSemis(standings[:5], 2, 2025, 35, date); got != nil {
		t.Fatal("short table should not produce semis")
	}
}

func TestSynthesizePlayoffFinal(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.April, 8, 0, 0, 0, 0, time.UTC)
	hp, ap := 5, 4
	semis := []fixture.Fixture{
		{ID: "s1", HomeID: "t3", AwayID: "t6", Played: true, HomeScore: 2, AwayScore: 1},
		{ID: "s2", HomeID: "t4", AwayID: "t5", Played: true, HomeScore: 1, AwayScore: 1, HomePens: &hp, AwayPens: &ap},
	}

	final := SynthesizePlayoffFinal(semis, 2025, 36, date)
	if final == nil {
		t.Fatal("expected a final")
	}
	if final.HomeID != "t3" || final.AwayID != "t4" {
		t.Fatalf("unexpected finalists: %s vs %s", final.HomeID, final.AwayID)
	}

	semis[1].Played = false
	if got := SynthesizePlayoffFinal(semis, 2025, 36, date); got != nil {
		t.Fatal("final created before both semis were played")
	}
}

func TestSynthesizeSuperCup(t *testing.T) {
	t.Parallel()

	sc := SynthesizeSuperCup("t1", "t5", 2026)
	if sc == nil {
		t.Fatal("expected a super cup fixture")
	}
	if sc.Competition != fixture.CompetitionSuperCup {
		t.Fatalf("unexpected competition: %s", sc.Competition)
	}
	if !sc.Date.Before(FirstHalfStart(2026)) {
		t.Fatal("super cup should precede the season opener")
	}

	if got := SynthesizeSuperCup("t1", "t1", 2026); got != nil {
		t.Fatal("double winner should skip the super cup")
	}
	if got := SynthesizeSuperCup("", "t5", 2026); got != nil {
		t.Fatal("missing champion should skip the super cup")
	}
}
