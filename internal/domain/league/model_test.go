package league

import (
	"testing"

	"github.com/footsim/manager/internal/domain/fixture"
)

func played(home, away string, hs, as int, comp fixture.Competition) fixture.Fixture {
	return fixture.Fixture{
		ID:          home + "-" + away,
		HomeID:      home,
		AwayID:      away,
		HomeScore:   hs,
		AwayScore:   as,
		Competition: comp,
		Played:      true,
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	teams := []string{"a", "b", "c"}
	fixtures := []fixture.Fixture{
		played("a", "b", 2, 0, fixture.CompetitionLeague),
		played("b", "c", 1, 1, fixture.CompetitionLeague),
		played("c", "a", 0, 1, fixture.CompetitionLeague),
		// Knockout results never count toward the table.
		played("c", "a", 9, 0, fixture.CompetitionPlayoff),
		// Unplayed fixtures never count either.
		{ID: "x", HomeID: "a", AwayID: "c", Competition: fixture.CompetitionLeague},
	}

	rows := Table(teams, fixtures)
	if len(rows) != 3 {
		t.Fatalf("unexpected row count: got=%d want=3", len(rows))
	}

	top := rows[0]
	if top.TeamID != "a" || top.Points != 6 || top.Played != 2 {
		t.Fatalf("unexpected leader: %+v", top)
	}
	if rows[1].TeamID != "b" || rows[1].Points != 1 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].TeamID != "c" || rows[2].GoalDiff() != -1 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("positions not renumbered: got=%d want=%d", row.Position, i+1)
		}
	}
}

func TestSortTieBreaks(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{TeamID: "b", Points: 10, GoalsFor: 12, GoalsAgainst: 8},
		{TeamID: "a", Points: 10, GoalsFor: 12, GoalsAgainst: 8},
		{TeamID: "c", Points: 10, GoalsFor: 15, GoalsAgainst: 11},
		{TeamID: "d", Points: 10, GoalsFor: 10, GoalsAgainst: 4},
	}
	Sort(rows)

	// d wins on goal difference, c on goals scored, then a before b by id.
	want := []string{"d", "c", "a", "b"}
	for i, w := range want {
		if rows[i].TeamID != w {
			t.Fatalf("unexpected order at %d: got=%s want=%s", i, rows[i].TeamID, w)
		}
	}
}
