package team

import (
	"fmt"

	"github.com/footsim/manager/internal/domain/player"
)

// Stats is the league record accumulated across a season.
type Stats struct {
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

func (s Stats) GoalDiff() int { return s.GoalsFor - s.GoalsAgainst }

// HistoryRecord archives one finished season for a team.
type HistoryRecord struct {
	Year     int
	LeagueID string
	Position int
	Points   int
	Trophies []string
}

// Team is a club with its roster and tactical configuration. The first
// eleven roster entries are the starting lineup by convention.
type Team struct {
	ID         string
	Name       string
	LeagueID   string
	Roster     []player.Player
	Tactics    Tactics
	Rivals     []string
	Stats      Stats
	LossStreak int
	History    []HistoryRecord
}

const LineupSize = 11

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Roster) < LineupSize {
		return fmt.Errorf("team %s roster smaller than a lineup: %d", t.ID, len(t.Roster))
	}
	if err := t.Tactics.Validate(); err != nil {
		return fmt.Errorf("team %s tactics: %w", t.ID, err)
	}
	for _, p := range t.Roster {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("team %s: %w", t.ID, err)
		}
	}

	return nil
}

// XI returns the starting lineup by roster-order convention.
func (t Team) XI() []player.Player {
	if len(t.Roster) < LineupSize {
		return t.Roster
	}
	return t.Roster[:LineupSize]
}

// LineupFor returns a clone whose starting eleven holds only players
// available for the given week, swapping unavailable starters for bench
// players of the same position first, then any available bench player.
// A starter with no available replacement keeps the shirt rather than
// leaving the slot empty.
func (t Team) LineupFor(week int) Team {
	out := t.Clone()
	for i := 0; i < LineupSize && i < len(out.Roster); i++ {
		if out.Roster[i].Available(week) {
			continue
		}
		swap := -1
		for j := LineupSize; j < len(out.Roster); j++ {
			if !out.Roster[j].Available(week) {
				continue
			}
			if out.Roster[j].Position == out.Roster[i].Position {
				swap = j
				break
			}
			if swap == -1 {
				swap = j
			}
		}
		if swap != -1 {
			out.Roster[i], out.Roster[swap] = out.Roster[swap], out.Roster[i]
		}
	}
	return out
}

// Strength is the average skill of the starting lineup.
func (t Team) Strength() float64 {
	xi := t.XI()
	if len(xi) == 0 {
		return 0
	}
	sum := 0
	for _, p := range xi {
		sum += p.Skill
	}
	return float64(sum) / float64(len(xi))
}

// RivalOf reports whether the other team is a flagged derby opponent.
func (t Team) RivalOf(otherID string) bool {
	for _, id := range t.Rivals {
		if id == otherID {
			return true
		}
	}
	return false
}

// FindPlayer returns the roster index of a player id, or -1.
func (t Team) FindPlayer(id string) int {
	for i, p := range t.Roster {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ExhaustedOnPitch counts lineup players below the fatigue threshold.
func (t Team) ExhaustedOnPitch() int {
	n := 0
	for _, p := range t.XI() {
		if p.Exhausted() {
			n++
		}
	}
	return n
}

// Clone deep-copies the team so callers can transform rosters without
// aliasing the original.
func (t Team) Clone() Team {
	out := t
	out.Roster = make([]player.Player, len(t.Roster))
	copy(out.Roster, t.Roster)
	for i := range out.Roster {
		if inj := out.Roster[i].Injury; inj != nil {
			cp := *inj
			out.Roster[i].Injury = &cp
		}
	}
	out.Rivals = append([]string(nil), t.Rivals...)
	out.History = append([]HistoryRecord(nil), t.History...)
	return out
}
