package engine

import (
	"math"
	"sort"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
)

// Result is a fully resolved background match: final score, a plausible
// event list consistent with it, and a derived box score.
type Result struct {
	HomeScore int
	AwayScore int
	Events    []fixture.MatchEvent
	Stats     fixture.MatchStats
}

const (
	baseHomeGoalRate = 1.45
	baseAwayGoalRate = 1.15
	minGoalRate      = 0.25
	maxGoalRate      = 4.2
)

// ResolveBackground decides a match the user does not watch. Goal
// counts come from two independent Poisson draws whose rates skew with
// the strength differential, so aggregate output stays statistically in
// line with the minute stepper.
func ResolveBackground(home, away team.Team, ctx Context, rng random.Source) Result {
	homeStrength := InstantStrength(home, 45, true, ctx, 0, rng)
	awayStrength := InstantStrength(away, 45, false, ctx, 0, rng)

	diff := (homeStrength - awayStrength) / 25.0

	homeRate := clampRate(baseHomeGoalRate + diff*0.9)
	awayRate := clampRate(baseAwayGoalRate - diff*0.9)

	homeGoals := poisson(rng, homeRate)
	awayGoals := poisson(rng, awayRate)

	events := synthesizeEvents(home, away, homeGoals, awayGoals, ctx, rng)
	stats := deriveStats(home, away, homeStrength, awayStrength, homeGoals, awayGoals, events)

	return Result{
		HomeScore: homeGoals,
		AwayScore: awayGoals,
		Events:    events,
		Stats:     stats,
	}
}

// PenaltyShootout decides a drawn knockout tie. Five kicks each, then
// sudden death; the returned pair never ties.
func PenaltyShootout(home, away team.Team, rng random.Source) (int, int) {
	homeOdds := shootoutOdds(home)
	awayOdds := shootoutOdds(away)

	h, a := 0, 0
	for i := 0; i < 5; i++ {
		if random.Chance(rng, homeOdds) {
			h++
		}
		if random.Chance(rng, awayOdds) {
			a++
		}
	}
	for h == a {
		if random.Chance(rng, homeOdds) {
			h++
		}
		if random.Chance(rng, awayOdds) {
			a++
		}
	}
	return h, a
}

func shootoutOdds(t team.Team) float64 {
	return 0.62 + t.Strength()/400.0
}

func clampRate(rate float64) float64 {
	if rate < minGoalRate {
		return minGoalRate
	}
	if rate > maxGoalRate {
		return maxGoalRate
	}
	return rate
}

// poisson draws a count by multiplying uniforms until they fall under
// e^-rate (Knuth's rejection scheme).
func poisson(rng random.Source, rate float64) int {
	limit := math.Exp(-rate)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
		if k > 12 {
			return k
		}
	}
}

// synthesizeEvents fabricates an event list consistent with the chosen
// score, drawing scorers and assists from the same role-weighted pools
// the live simulator uses. Cards are drawn first and fed into the
// discipline state, so a sent-off player never appears on the
// scoresheet.
func synthesizeEvents(home, away team.Team, homeGoals, awayGoals int, ctx Context, rng random.Source) []fixture.MatchEvent {
	var events []fixture.MatchEvent
	d := disciplineFrom(nil)

	cardOdds := 0.5
	if ctx.Derby {
		cardOdds *= derbyCardFactor
	}
	for _, t := range []team.Team{home, away} {
		yellows := 0
		if random.Chance(rng, cardOdds) {
			yellows = 1 + rng.Intn(2)
		}
		for i := 0; i < yellows; i++ {
			culprit := pickAggressor(onPitch(t, d), rng)
			d.booked[culprit.ID] = true
			events = append(events, fixture.MatchEvent{
				Minute:      1 + rng.Intn(90),
				Type:        fixture.EventCardYellow,
				TeamID:      t.ID,
				PlayerID:    culprit.ID,
				Description: describe(fixture.EventCardYellow, descContext{Team: t.Name, Player: culprit.Name}, rng),
			})
		}
		if random.Chance(rng, 0.05) {
			culprit := pickAggressor(onPitch(t, d), rng)
			d.sentOff[culprit.ID] = true
			d.reds[t.ID]++
			events = append(events, fixture.MatchEvent{
				Minute:      30 + rng.Intn(60),
				Type:        fixture.EventCardRed,
				TeamID:      t.ID,
				PlayerID:    culprit.ID,
				Description: describe(fixture.EventCardRed, descContext{Team: t.Name, Player: culprit.Name}, rng),
			})
		}
	}

	appendGoals := func(t team.Team, count int) {
		for i := 0; i < count; i++ {
			ev := goalEvent(1+rng.Intn(90), t, d, rng)
			events = append(events, *ev)
		}
	}
	appendGoals(home, homeGoals)
	appendGoals(away, awayGoals)

	if random.Chance(rng, 0.18) {
		if ev := injuryEvent(1+rng.Intn(90), home, away, d, rng); ev != nil {
			events = append(events, *ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Minute < events[j].Minute
	})
	return events
}

// deriveStats computes the box score deterministically from strengths
// and the decided score: shots on target never drop below goals scored,
// and each keeper's saves equal the on-target shots he did not concede.
func deriveStats(home, away team.Team, homeStrength, awayStrength float64, homeGoals, awayGoals int, events []fixture.MatchEvent) fixture.MatchStats {
	total := homeStrength + awayStrength
	if total <= 0 {
		total = 1
	}
	homePossession := int(math.Round(homeStrength / total * 100))
	if homePossession < 25 {
		homePossession = 25
	}
	if homePossession > 75 {
		homePossession = 75
	}

	homeOnTarget := homeGoals + int(homeStrength/18)
	awayOnTarget := awayGoals + int(awayStrength/18)
	homeShots := homeOnTarget + int(homeStrength/11)
	awayShots := awayOnTarget + int(awayStrength/11)

	stats := fixture.MatchStats{
		HomeShots:         homeShots,
		AwayShots:         awayShots,
		HomeShotsOnTarget: homeOnTarget,
		AwayShotsOnTarget: awayOnTarget,
		HomePossession:    homePossession,
		AwayPossession:    100 - homePossession,
		HomeCorners:       homeShots / 2,
		AwayCorners:       awayShots / 2,
		HomeFouls:         fixture.CountEvents(events, fixture.EventFoul, home.ID) + 8,
		AwayFouls:         fixture.CountEvents(events, fixture.EventFoul, away.ID) + 8,
		HomeYellowCards:   fixture.CountEvents(events, fixture.EventCardYellow, home.ID),
		AwayYellowCards:   fixture.CountEvents(events, fixture.EventCardYellow, away.ID),
		HomeRedCards:      fixture.CountEvents(events, fixture.EventCardRed, home.ID),
		AwayRedCards:      fixture.CountEvents(events, fixture.EventCardRed, away.ID),
		HomeSaves:         awayOnTarget - awayGoals,
		AwaySaves:         homeOnTarget - homeGoals,
	}
	return stats
}
