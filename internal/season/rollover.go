package season

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/league"
	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
)

const (
	// autoPromoted is how many second-tier teams go up by rank; the
	// same number of top-tier teams swap down, plus one more slot for
	// the playoff winner.
	autoPromoted = 2
)

// rollover finalizes the finished season: standings are frozen into
// per-team history, league movement is applied, season-scoped stats are
// reset, and the next campaign's fixtures are generated including the
// re-seeded super cup.
func (s *Scheduler) rollover(ctx context.Context, state State) (State, error) {
	top, okTop := state.leagueByTier(1)
	if !okTop {
		return state, errors.New("rollover: no top-tier league")
	}

	topTable, err := state.Standings(top.ID)
	if err != nil {
		return state, err
	}
	if len(topTable) == 0 {
		return state, errors.New("rollover: empty top-tier table")
	}

	champion := topTable[0].TeamID
	runnerUp := ""
	if len(topTable) > 1 {
		runnerUp = topTable[1].TeamID
	}

	playoffWinner := ""
	for _, f := range state.Fixtures {
		if f.Competition == fixture.CompetitionPlayoff && strings.HasSuffix(f.ID, "po-final") && f.Played {
			playoffWinner = f.Winner()
		}
	}

	s.archiveSeason(&state, champion, playoffWinner)

	if lower, okLower := state.leagueByTier(2); okLower {
		lowerTable, err := state.Standings(lower.ID)
		if err != nil {
			return state, err
		}
		moveTeams(&state, top, lower, topTable, lowerTable, playoffWinner)
	}

	resetSeasonScoped(&state)

	state.LastChampionID = champion
	if state.LastCupWinnerID == "" {
		// No cup campaign recorded; the runner-up takes the curtain
		// raiser slot.
		state.LastCupWinnerID = runnerUp
	}

	state.Year++
	state.Fixtures = nil
	for _, l := range state.Leagues {
		var members []team.Team
		for _, id := range l.TeamIDs {
			if t, ok := state.Team(id); ok {
				members = append(members, t)
			}
		}
		state.Fixtures = append(state.Fixtures, GenerateLeagueFixtures(members, state.Year)...)
	}
	if sc := SynthesizeSuperCup(state.LastChampionID, state.LastCupWinnerID, state.Year); sc != nil {
		state.Fixtures = append(state.Fixtures, *sc)
	}
	state.LastCupWinnerID = ""

	if err := state.Validate(); err != nil {
		return state, errors.Wrap(err, "rollover produced an invalid state")
	}

	s.logger.InfoContext(ctx, "season rolled over",
		"year", state.Year,
		"champion", champion,
		"playoff_winner", playoffWinner,
	)
	return state, nil
}

// archiveSeason writes one history record per team from its final
// league placing.
func (s *Scheduler) archiveSeason(state *State, champion, playoffWinner string) {
	positions := make(map[string]league.Standing)
	for _, l := range state.Leagues {
		table := league.Table(l.TeamIDs, state.Fixtures)
		for _, row := range table {
			positions[row.TeamID] = row
		}
	}

	for i := range state.Teams {
		t := &state.Teams[i]
		row := positions[t.ID]

		record := team.HistoryRecord{
			Year:     state.Year,
			LeagueID: t.LeagueID,
			Position: row.Position,
			Points:   row.Points,
		}
		if t.ID == champion {
			record.Trophies = append(record.Trophies, "league title")
		}
		if t.ID == playoffWinner {
			record.Trophies = append(record.Trophies, "playoff")
		}
		t.History = append(t.History, record)
	}
}

// moveTeams swaps the relegation zone of the top tier with the top of
// the second tier, plus the playoff winner for the extra slot.
func moveTeams(state *State, top, lower League, topTable, lowerTable []league.Standing, playoffWinner string) {
	demotedCount := autoPromoted
	if playoffWinner != "" {
		demotedCount++
	}
	if demotedCount > len(topTable) {
		demotedCount = len(topTable)
	}

	var demoted []string
	for _, row := range topTable[len(topTable)-demotedCount:] {
		demoted = append(demoted, row.TeamID)
	}

	var promoted []string
	for _, row := range lowerTable {
		if len(promoted) == autoPromoted {
			break
		}
		promoted = append(promoted, row.TeamID)
	}
	if playoffWinner != "" && !contains(promoted, playoffWinner) {
		promoted = append(promoted, playoffWinner)
	}
	if len(promoted) < demotedCount {
		demotedCount = len(promoted)
		demoted = demoted[len(demoted)-demotedCount:]
	}

	membership := func(l *League, remove, add []string) {
		var next []string
		for _, id := range l.TeamIDs {
			if !contains(remove, id) {
				next = append(next, id)
			}
		}
		next = append(next, add...)
		l.TeamIDs = next
	}

	for i := range state.Leagues {
		switch state.Leagues[i].ID {
		case top.ID:
			membership(&state.Leagues[i], demoted, promoted)
		case lower.ID:
			membership(&state.Leagues[i], promoted, demoted)
		}
	}

	for i := range state.Teams {
		t := &state.Teams[i]
		if contains(promoted, t.ID) {
			t.LeagueID = top.ID
		}
		if contains(demoted, t.ID) {
			t.LeagueID = lower.ID
		}
	}
}

// resetSeasonScoped clears everything that belongs to a single season
// and ages the squads one year.
func resetSeasonScoped(state *State) {
	for i := range state.Teams {
		t := &state.Teams[i]
		t.Stats = team.Stats{}
		t.LossStreak = 0
		for j := range t.Roster {
			p := &t.Roster[j]
			p.SeasonStats = player.SeasonStats{}
			p.AbsentMatches = 0
			p.SuspendedUntilWeek = 0
			p.Age++
		}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
