// Package postmatch propagates a played fixture into player and team
// state: morale, condition, injuries, suspensions and season stats. All
// transformations return new values; inputs are never mutated.
package postmatch

import (
	"math"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
	"github.com/footsim/manager/internal/sim/rating"
)

const (
	// moraleLossFloor caps how much morale a player can lose from one
	// match, injuries excepted.
	moraleLossFloor = -8

	redCardSuspensionWeeks = 3

	// comebackAbsence is the absence streak that earns the big
	// return-to-the-squad morale boost.
	comebackAbsence = 5

	baseConditionDrop = 22.0
)

// Context flags the match framings that amplify fatigue and cards.
type Context struct {
	Derby      bool
	FinalRound bool
}

// injuryTable maps a weighted draw to an injury type and duration.
var injuryTable = []struct {
	typ    player.InjuryType
	weeks  int
	weight float64
}{
	{player.InjuryBruise, 1, 30},
	{player.InjuryStrain, 2, 25},
	{player.InjurySprain, 3, 20},
	{player.InjuryHamstring, 4, 12},
	{player.InjuryTear, 6, 8},
	{player.InjuryFracture, 10, 5},
}

func rollInjury(rng random.Source) player.Injury {
	total := 0.0
	for _, row := range injuryTable {
		total += row.weight
	}
	draw := rng.Float64() * total
	for _, row := range injuryTable {
		draw -= row.weight
		if draw < 0 {
			return player.Injury{Type: row.typ, WeeksLeft: row.weeks}
		}
	}
	last := injuryTable[len(injuryTable)-1]
	return player.Injury{Type: last.typ, WeeksLeft: last.weeks}
}

// Apply processes one played fixture for every team in the slice that
// took part in it, returning new team values. Teams not involved pass
// through untouched (players still present in the output).
func Apply(teams []team.Team, f fixture.Fixture, week int, ctx Context, rng random.Source) []team.Team {
	out := make([]team.Team, len(teams))
	for i, t := range teams {
		if !f.Involves(t.ID) {
			out[i] = t.Clone()
			continue
		}
		out[i] = applyToTeam(t, f, week, ctx, rng)
	}
	return out
}

func applyToTeam(t team.Team, f fixture.Fixture, week int, ctx Context, rng random.Source) team.Team {
	updated := t.Clone()

	goalsFor, goalsAgainst := f.HomeScore, f.AwayScore
	if t.ID == f.AwayID {
		goalsFor, goalsAgainst = f.AwayScore, f.HomeScore
	}

	perfs := teamPerformances(t.ID, f)
	featured := featuredSet(t, f.Events)

	teamDelta := teamMoraleDelta(updated, goalsFor, goalsAgainst)

	for i := range updated.Roster {
		p := &updated.Roster[i]

		perf, played := perfs[p.ID]
		if !played {
			played = featured[p.ID]
		}

		hurtToday := countFor(f.Events, fixture.EventInjury, t.ID, p.ID) > 0

		if played {
			applyAppearance(p, perf, f, t.ID, goalsFor, goalsAgainst, teamDelta, week, ctx, rng)
			p.AbsentMatches = 0
		} else {
			p.AbsentMatches++
			applyAbsence(p, teamDelta)
		}

		// A knock picked up today starts ticking from next week.
		if !hurtToday {
			tickInjury(p)
		}
		p.ClampMeters()
	}

	applyTeamRecord(&updated, goalsFor, goalsAgainst)
	return updated
}

// featuredSet marks starters and anyone brought on via a substitution
// event as having actually played.
func featuredSet(t team.Team, events []fixture.MatchEvent) map[string]bool {
	set := make(map[string]bool, team.LineupSize)
	for _, p := range t.XI() {
		set[p.ID] = true
	}
	for _, ev := range events {
		if ev.Type == fixture.EventSubstitution && ev.TeamID == t.ID && ev.PlayerID != "" {
			set[ev.PlayerID] = true
		}
	}
	return set
}

func teamPerformances(teamID string, f fixture.Fixture) map[string]fixture.PlayerPerformance {
	out := make(map[string]fixture.PlayerPerformance)
	if f.Stats == nil {
		return out
	}
	rows := f.Stats.HomeRatings
	if teamID == f.AwayID {
		rows = f.Stats.AwayRatings
	}
	for _, row := range rows {
		out[row.PlayerID] = row
	}
	return out
}

func applyAppearance(p *player.Player, perf fixture.PlayerPerformance, f fixture.Fixture, teamID string, goalsFor, goalsAgainst, teamDelta int, week int, ctx Context, rng random.Source) {
	minutes := 90

	// Season stat deltas.
	p.SeasonStats.Matches++
	p.SeasonStats.Goals += perf.Goals
	p.SeasonStats.Assists += perf.Assists
	p.SeasonStats.RatingSum += perf.Rating

	depleteCondition(p, minutes, ctx)

	yellows := countFor(f.Events, fixture.EventCardYellow, teamID, p.ID)
	reds := countFor(f.Events, fixture.EventCardRed, teamID, p.ID)
	injured := countFor(f.Events, fixture.EventInjury, teamID, p.ID) > 0

	if reds > 0 {
		p.SuspendedUntilWeek = week + redCardSuspensionWeeks
	}

	delta := teamDelta
	delta += 1 // featured

	if p.AbsentMatches >= comebackAbsence {
		delta += 8
	}

	delta += perf.Goals * 2
	delta += perf.Assists

	if p.Position == player.PositionGoalkeeper && goalsAgainst == 0 {
		delta += 3
	}

	switch {
	case perf.Rating >= 8.0:
		delta += 2
	case perf.Rating > 0 && perf.Rating < 5.0:
		delta -= 2
	}

	if f.Stats != nil && f.Stats.MVPPlayerID == p.ID {
		delta += 4
	}

	if yellows > 1 || (yellows > 0 && reds > 0) {
		// Second yellow: sent off, but softer than a straight red.
		delta -= 4
	} else if reds > 0 {
		delta -= 6
	} else if yellows > 0 {
		delta--
	}

	if delta < moraleLossFloor {
		delta = moraleLossFloor
	}
	p.Morale += delta

	if injured {
		assignInjury(p, rng)
	}
}

func applyAbsence(p *player.Player, teamDelta int) {
	// Non-playing squad members ride the team mood at half strength.
	delta := teamDelta / 2
	if delta < moraleLossFloor {
		delta = moraleLossFloor
	}
	p.Morale += delta
}

// depleteCondition drains fitness by minutes played, scaled by stamina,
// position and match context. Wide players burn fastest, keepers
// barely at all.
func depleteCondition(p *player.Player, minutes int, ctx Context) {
	posFactor := 1.0
	switch p.Position {
	case player.PositionGoalkeeper:
		posFactor = 0.4
	case player.PositionDefender:
		posFactor = 0.9
	case player.PositionWinger:
		posFactor = 1.2
	case player.PositionForward:
		posFactor = 1.05
	}

	staminaFactor := 1.5 - float64(p.Attributes.Stamina)/100.0
	contextFactor := 1.0
	if ctx.Derby || ctx.FinalRound {
		contextFactor = 1.2
	}

	drop := baseConditionDrop * float64(minutes) / 90.0 * staminaFactor * posFactor * contextFactor
	p.Condition -= int(math.Round(drop))
}

// assignInjury rolls the weighted injury table. Taking a knock while
// already carrying one aggravates it instead.
func assignInjury(p *player.Player, rng random.Source) {
	severityLoss := 0
	if p.Injury != nil && p.Injury.WeeksLeft > 0 {
		if random.Chance(rng, 0.35) {
			p.Injury.WeeksLeft += 2
			severityLoss = 4
		}
	} else {
		inj := rollInjury(rng)
		p.Injury = &inj
		severityLoss = 2 * inj.WeeksLeft
	}

	// Injury-driven morale loss scales with severity and bypasses the
	// per-match floor applied to every other cause.
	p.Morale -= severityLoss
}

func tickInjury(p *player.Player) {
	if p.Injury == nil {
		return
	}
	p.Injury.WeeksLeft--
	if p.Injury.WeeksLeft <= 0 {
		p.Injury = nil
	}
}

// teamMoraleDelta is the shared result contribution: wins lift, losses
// sink harder the longer the streak, and blowouts add insult.
func teamMoraleDelta(t team.Team, goalsFor, goalsAgainst int) int {
	switch {
	case goalsFor > goalsAgainst:
		return 6
	case goalsFor == goalsAgainst:
		return 1
	}

	delta := -4
	streakPenalty := t.LossStreak
	if streakPenalty > 3 {
		streakPenalty = 3
	}
	delta -= streakPenalty

	if goalsAgainst-goalsFor >= 3 {
		delta -= 2
	}
	return delta
}

func applyTeamRecord(t *team.Team, goalsFor, goalsAgainst int) {
	t.Stats.Played++
	t.Stats.GoalsFor += goalsFor
	t.Stats.GoalsAgainst += goalsAgainst

	switch {
	case goalsFor > goalsAgainst:
		t.Stats.Won++
		t.Stats.Points += 3
		t.LossStreak = 0
	case goalsFor == goalsAgainst:
		t.Stats.Drawn++
		t.Stats.Points++
		t.LossStreak = 0
	default:
		t.Stats.Lost++
		t.LossStreak++
	}
}

func countFor(events []fixture.MatchEvent, typ fixture.EventType, teamID, playerID string) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ && ev.TeamID == teamID && ev.PlayerID == playerID {
			n++
		}
	}
	return n
}

// Ratings ensures a fixture carries rated stats, computing them from
// events when the resolver did not attach any. Missing data renders
// neutral defaults rather than failing.
func Ratings(home, away team.Team, f *fixture.Fixture, rng random.Source) {
	if f.Stats == nil {
		f.Stats = &fixture.MatchStats{}
	}
	if len(f.Stats.HomeRatings) > 0 || len(f.Stats.AwayRatings) > 0 {
		return
	}
	rated := rating.FromEvents(home, away, f.Events, f.HomeScore, f.AwayScore, rng)
	f.Stats.HomeRatings = rated.Home
	f.Stats.AwayRatings = rated.Away
	f.Stats.MVPPlayerID = rated.MVPPlayerID
}
