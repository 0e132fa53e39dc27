// Package season drives day-granularity season progression: fixture
// generation, background resolution, standings, knockout brackets,
// transfer windows and the year rollover.
package season

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/league"
	"github.com/footsim/manager/internal/domain/team"
)

// League groups the teams competing in one division.
type League struct {
	ID      string
	Name    string
	Tier    int
	TeamIDs []string
}

// State is the whole simulated world at one calendar day. Scheduler
// operations return new State values; callers can snapshot any State
// for persistence or undo.
type State struct {
	Year               int
	CurrentDate        time.Time
	UserTeamID         string
	Seed               int64
	TransferWindowOpen bool
	Leagues            []League
	Teams              []team.Team
	Fixtures           []fixture.Fixture
	LastChampionID     string
	LastCupWinnerID    string
}

// Validate checks the structural invariants that are fatal when broken.
func (s State) Validate() error {
	byID := make(map[string]bool, len(s.Teams))
	for _, t := range s.Teams {
		if byID[t.ID] {
			return errors.Newf("duplicate team id %q", t.ID)
		}
		byID[t.ID] = true
	}
	for _, f := range s.Fixtures {
		if err := f.Validate(); err != nil {
			return err
		}
		if !byID[f.HomeID] || !byID[f.AwayID] {
			return errors.Newf("fixture %s references a nonexistent team", f.ID)
		}
	}
	for _, l := range s.Leagues {
		for _, id := range l.TeamIDs {
			if !byID[id] {
				return errors.Newf("league %s references a nonexistent team %q", l.ID, id)
			}
		}
	}
	return nil
}

// Clone deep-copies the state so transformations never alias.
func (s State) Clone() State {
	out := s
	out.Leagues = make([]League, len(s.Leagues))
	for i, l := range s.Leagues {
		out.Leagues[i] = l
		out.Leagues[i].TeamIDs = append([]string(nil), l.TeamIDs...)
	}
	out.Teams = make([]team.Team, len(s.Teams))
	for i, t := range s.Teams {
		out.Teams[i] = t.Clone()
	}
	out.Fixtures = append([]fixture.Fixture(nil), s.Fixtures...)
	return out
}

// Team returns the team with the given id.
func (s State) Team(id string) (team.Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return team.Team{}, false
}

func (s State) teamIndex(id string) int {
	for i, t := range s.Teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Standings computes the live table for one league from played league
// fixtures.
func (s State) Standings(leagueID string) ([]league.Standing, error) {
	for _, l := range s.Leagues {
		if l.ID == leagueID {
			return league.Table(l.TeamIDs, s.Fixtures), nil
		}
	}
	return nil, fmt.Errorf("unknown league: %s", leagueID)
}

// CurrentWeek is the earliest week that still has an unplayed league
// fixture, or the final week once everything is done.
func (s State) CurrentWeek() int {
	maxWeek := 0
	week := 0
	for _, f := range s.Fixtures {
		if f.Competition != fixture.CompetitionLeague {
			continue
		}
		if f.Week > maxWeek {
			maxWeek = f.Week
		}
		if !f.Played && (week == 0 || f.Week < week) {
			week = f.Week
		}
	}
	if week == 0 {
		return maxWeek
	}
	return week
}

// leagueByTier returns the league at the given tier, if present.
func (s State) leagueByTier(tier int) (League, bool) {
	for _, l := range s.Leagues {
		if l.Tier == tier {
			return l, true
		}
	}
	return League{}, false
}
