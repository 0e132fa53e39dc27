package fixture

import (
	"fmt"
	"time"
)

// Competition tags a fixture with the tournament it belongs to.
type Competition string

const (
	CompetitionLeague   Competition = "LEAGUE"
	CompetitionCup      Competition = "CUP"
	CompetitionPlayoff  Competition = "PLAYOFF"
	CompetitionSuperCup Competition = "SUPER_CUP"
)

// EventType is the closed set of discrete things the simulation emits.
type EventType string

const (
	EventGoal         EventType = "GOAL"
	EventCardYellow   EventType = "CARD_YELLOW"
	EventCardRed      EventType = "CARD_RED"
	EventInjury       EventType = "INJURY"
	EventFoul         EventType = "FOUL"
	EventSave         EventType = "SAVE"
	EventOffside      EventType = "OFFSIDE"
	EventCorner       EventType = "CORNER"
	EventMiss         EventType = "MISS"
	EventSubstitution EventType = "SUBSTITUTION"
	EventInfo         EventType = "INFO"
)

// MatchEvent is one minute-stamped occurrence. Immutable once created;
// slice insertion order breaks ties between events in the same minute.
type MatchEvent struct {
	Minute      int
	Type        EventType
	TeamID      string
	PlayerID    string
	Scorer      string
	Assist      string
	AssistID    string
	Description string
}

// PlayerPerformance is one rated appearance inside a match stats sheet.
type PlayerPerformance struct {
	PlayerID string
	Position string
	Rating   float64
	Goals    int
	Assists  int
}

// MatchStats is the aggregated box score of a played fixture.
type MatchStats struct {
	HomeShots         int
	AwayShots         int
	HomeShotsOnTarget int
	AwayShotsOnTarget int
	HomePossession    int
	AwayPossession    int
	HomeCorners       int
	AwayCorners       int
	HomeFouls         int
	AwayFouls         int
	HomeYellowCards   int
	AwayYellowCards   int
	HomeRedCards      int
	AwayRedCards      int
	HomeSaves         int
	AwaySaves         int
	HomeRatings       []PlayerPerformance
	AwayRatings       []PlayerPerformance
	MVPPlayerID       string
}

// Fixture is one scheduled match. Once Played is set the event list and
// stats snapshot are frozen and only read by history views.
type Fixture struct {
	ID          string
	Week        int
	Date        time.Time
	HomeID      string
	AwayID      string
	Competition Competition
	Played      bool
	HomeScore   int
	AwayScore   int
	HomePens    *int
	AwayPens    *int
	Events      []MatchEvent
	Stats       *MatchStats
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.HomeID == "" || f.AwayID == "" {
		return fmt.Errorf("fixture %s is missing a team reference", f.ID)
	}
	if f.HomeID == f.AwayID {
		return fmt.Errorf("fixture %s has a team playing itself", f.ID)
	}
	return nil
}

// CountEvents tallies events of one type for one side.
func CountEvents(events []MatchEvent, typ EventType, teamID string) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ && ev.TeamID == teamID {
			n++
		}
	}
	return n
}

// GoalsFor lists a side's goal events in insertion order, which is also
// minute order for a live match.
func GoalsFor(events []MatchEvent, teamID string) []MatchEvent {
	var out []MatchEvent
	for _, ev := range events {
		if ev.Type == EventGoal && ev.TeamID == teamID {
			out = append(out, ev)
		}
	}
	return out
}

// Winner returns the winning team id, using the recorded penalty scores
// as tiebreak when present. Empty string means a draw.
func (f Fixture) Winner() string {
	switch {
	case f.HomeScore > f.AwayScore:
		return f.HomeID
	case f.AwayScore > f.HomeScore:
		return f.AwayID
	}
	if f.HomePens != nil && f.AwayPens != nil {
		if *f.HomePens > *f.AwayPens {
			return f.HomeID
		}
		if *f.AwayPens > *f.HomePens {
			return f.AwayID
		}
	}
	return ""
}

// Involves reports whether a team plays in this fixture.
func (f Fixture) Involves(teamID string) bool {
	return f.HomeID == teamID || f.AwayID == teamID
}
