package fixture

import "testing"

func TestWinner(t *testing.T) {
	t.Parallel()

	t.Run("regulation result", func(t *testing.T) {
		f := Fixture{HomeID: "a", AwayID: "b", HomeScore: 2, AwayScore: 1}
		if got := f.Winner(); got != "a" {
			t.Fatalf("unexpected winner: got=%s want=a", got)
		}
		f.HomeScore, f.AwayScore = 0, 3
		if got := f.Winner(); got != "b" {
			t.Fatalf("unexpected winner: got=%s want=b", got)
		}
	})

	t.Run("draw without penalties", func(t *testing.T) {
		f := Fixture{HomeID: "a", AwayID: "b", HomeScore: 1, AwayScore: 1}
		if got := f.Winner(); got != "" {
			t.Fatalf("unexpected winner for a draw: got=%s want=empty", got)
		}
	})

	t.Run("penalties break the tie", func(t *testing.T) {
		hp, ap := 4, 5
		f := Fixture{HomeID: "a", AwayID: "b", HomeScore: 1, AwayScore: 1, HomePens: &hp, AwayPens: &ap}
		if got := f.Winner(); got != "b" {
			t.Fatalf("unexpected shootout winner: got=%s want=b", got)
		}
	})
}

func TestCountEvents(t *testing.T) {
	t.Parallel()

	events := []MatchEvent{
		{Type: EventGoal, TeamID: "a"},
		{Type: EventGoal, TeamID: "b"},
		{Type: EventGoal, TeamID: "a"},
		{Type: EventCardYellow, TeamID: "a"},
	}
	if got := CountEvents(events, EventGoal, "a"); got != 2 {
		t.Fatalf("unexpected goal count: got=%d want=2", got)
	}
	if got := CountEvents(events, EventCardYellow, "b"); got != 0 {
		t.Fatalf("unexpected yellow count: got=%d want=0", got)
	}
}

func TestGoalsForPreservesOrder(t *testing.T) {
	t.Parallel()

	events := []MatchEvent{
		{Minute: 10, Type: EventGoal, TeamID: "a", PlayerID: "p1"},
		{Minute: 30, Type: EventGoal, TeamID: "b", PlayerID: "p9"},
		{Minute: 30, Type: EventGoal, TeamID: "a", PlayerID: "p2"},
		{Minute: 80, Type: EventGoal, TeamID: "a", PlayerID: "p3"},
	}
	goals := GoalsFor(events, "a")
	if len(goals) != 3 {
		t.Fatalf("unexpected goal count: got=%d want=3", len(goals))
	}
	want := []string{"p1", "p2", "p3"}
	for i, g := range goals {
		if g.PlayerID != want[i] {
			t.Fatalf("order broken at %d: got=%s want=%s", i, g.PlayerID, want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	f := Fixture{ID: "x", HomeID: "a", AwayID: "a"}
	if err := f.Validate(); err == nil {
		t.Fatal("expected error when a team plays itself")
	}
	f = Fixture{ID: "x", HomeID: "a"}
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for missing away team")
	}
	f = Fixture{ID: "x", HomeID: "a", AwayID: "b"}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInvolves(t *testing.T) {
	t.Parallel()

	f := Fixture{HomeID: "a", AwayID: "b"}
	if !f.Involves("a") || !f.Involves("b") || f.Involves("c") {
		t.Fatal("unexpected involvement report")
	}
}
