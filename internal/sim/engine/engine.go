// Package engine produces match outcomes: a minute-indexed event
// stream for live viewing and a bulk resolver for backgrounded matches.
// Both draw players from the same role-weighted pools so downstream
// rating and post-match processing treat them identically.
package engine

import (
	"math"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
	"github.com/footsim/manager/internal/sim/tactics"
)

const (
	// eventGateProb is the base "does anything happen this minute" roll.
	eventGateProb = 0.30

	// homeAdvantage is added to the home side's base strength.
	homeAdvantage = 4.0

	// redCardStrengthFactor is applied once per active red card.
	redCardStrengthFactor = 0.78

	// secondYellowConversion is the base odds a booked player's second
	// offense turns straight into a red.
	secondYellowConversion = 0.65

	derbyCardFactor = 1.5
)

// Score is the running scoreline handed back into every step.
type Score struct {
	Home int
	Away int
}

// Context carries the match framing that shifts probabilities.
type Context struct {
	Derby   bool
	Neutral bool
}

// InstantStrength is one team's effective strength for a single minute:
// base (plus home advantage) times the tactical multiplier, reduced per
// active red card.
func InstantStrength(t team.Team, minute int, isHome bool, ctx Context, reds int, rng random.Source) float64 {
	base := t.Strength()
	if isHome && !ctx.Neutral {
		base += homeAdvantage
	}
	mult, _ := tactics.Efficiency(t, minute, rng)
	strength := base * mult
	for i := 0; i < reds; i++ {
		strength *= redCardStrengthFactor
	}
	return strength
}

// Step advances the live match by one minute. It returns nil when
// nothing notable happens, otherwise a populated event. All state lives
// in the accumulated prior event list handed back by the caller.
func Step(minute int, home, away team.Team, score Score, prior []fixture.MatchEvent, ctx Context, rng random.Source) *fixture.MatchEvent {
	if !random.Chance(rng, eventGateProb) {
		return nil
	}

	d := disciplineFrom(prior)

	homeStrength := InstantStrength(home, minute, true, ctx, d.reds[home.ID], rng)
	awayStrength := InstantStrength(away, minute, false, ctx, d.reds[away.ID], rng)

	total := homeStrength + awayStrength
	if total <= 0 {
		total = 1
	}
	dominance := homeStrength / total
	offensive := offensiveDominance(dominance)

	totalReds := d.reds[home.ID] + d.reds[away.ID]
	exhausted := home.ExhaustedOnPitch() + away.ExhaustedOnPitch()

	probs := categoryProbabilities(totalReds, exhausted)

	homeAttacking := rng.Float64() < offensive
	attacker, defender := home, away
	if !homeAttacking {
		attacker, defender = away, home
	}

	draw := rng.Float64()
	cum := 0.0
	for _, cat := range categoryOrder {
		cum += probs[cat]
		if draw >= cum {
			continue
		}
		switch cat {
		case catGoal:
			return goalEvent(minute, attacker, d, rng)
		case catInjury:
			return injuryEvent(minute, home, away, d, rng)
		case catFoul:
			return foulEvent(minute, defender, d, ctx, rng)
		case catSave:
			return saveEvent(minute, defender, d, rng)
		case catOffside:
			return simpleAttackerEvent(minute, fixture.EventOffside, attacker, d, rng)
		case catCorner:
			return cornerEvent(minute, attacker, rng)
		case catMiss:
			return simpleAttackerEvent(minute, fixture.EventMiss, attacker, d, rng)
		}
		break
	}

	possessor := home
	if rng.Float64() >= dominance {
		possessor = away
	}
	ev := fixture.MatchEvent{Minute: minute, Type: fixture.EventInfo, TeamID: possessor.ID}
	ev.Description = describe(ev.Type, descContext{Team: possessor.Name}, rng)
	return &ev
}

// offensiveDominance exaggerates the dominant side's attacking share.
func offensiveDominance(dominance float64) float64 {
	a := dominance * dominance
	b := (1 - dominance) * (1 - dominance)
	if a+b == 0 {
		return 0.5
	}
	return a / (a + b)
}

type category int

const (
	catGoal category = iota
	catInjury
	catFoul
	catSave
	catOffside
	catCorner
	catMiss
)

var categoryOrder = []category{catGoal, catInjury, catFoul, catSave, catOffside, catCorner, catMiss}

// categoryProbabilities shifts with accumulated red cards (more chaos)
// and with the number of exhausted players on the pitch (more knocks).
// The remainder up to 1.0 falls through to a generic info event.
func categoryProbabilities(totalReds, exhausted int) map[category]float64 {
	probs := map[category]float64{
		catGoal:    0.14 + 0.02*float64(totalReds),
		catInjury:  0.06 + 0.015*float64(exhausted),
		catFoul:    0.20 + 0.02*float64(totalReds),
		catSave:    0.15,
		catOffside: 0.09,
		catCorner:  0.15,
		catMiss:    0.12,
	}
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if sum > 0.95 {
		scale := 0.95 / sum
		for cat := range probs {
			probs[cat] *= scale
		}
	}
	return probs
}

func goalEvent(minute int, attacker team.Team, d discipline, rng random.Source) *fixture.MatchEvent {
	pool := onPitch(attacker, d)
	scorer := pickScorer(pool, rng)

	ev := fixture.MatchEvent{
		Minute:   minute,
		Type:     fixture.EventGoal,
		TeamID:   attacker.ID,
		PlayerID: scorer.ID,
		Scorer:   scorer.Name,
	}
	if assist, ok := teammateFor(pool, scorer.ID, rng); ok && random.Chance(rng, 0.65) {
		ev.Assist = assist.Name
		ev.AssistID = assist.ID
	}
	ev.Description = describe(ev.Type, descContext{Team: attacker.Name, Scorer: scorer.Name, Assist: ev.Assist}, rng)
	return &ev
}

func injuryEvent(minute int, home, away team.Team, d discipline, rng random.Source) *fixture.MatchEvent {
	all := append(poolEntries(home, d), poolEntries(away, d)...)
	if len(all) == 0 {
		return nil
	}
	victim := pickEntryWeighted(all, rng)

	ev := fixture.MatchEvent{
		Minute:   minute,
		Type:     fixture.EventInjury,
		TeamID:   victim.teamID,
		PlayerID: victim.p.ID,
	}
	ev.Description = describe(ev.Type, descContext{Team: victim.teamName, Victim: victim.p.Name}, rng)
	return &ev
}

func foulEvent(minute int, offender team.Team, d discipline, ctx Context, rng random.Source) *fixture.MatchEvent {
	pool := onPitch(offender, d)
	culprit := pickAggressor(pool, rng)

	cardOdds := 0.30 * (0.5 + float64(culprit.Attributes.Aggression)/100.0)
	if ctx.Derby {
		cardOdds *= derbyCardFactor
	}

	ev := fixture.MatchEvent{
		Minute:   minute,
		TeamID:   offender.ID,
		PlayerID: culprit.ID,
	}

	if !random.Chance(rng, cardOdds) {
		ev.Type = fixture.EventFoul
		ev.Description = describe(ev.Type, descContext{Team: offender.Name, Player: culprit.Name}, rng)
		return &ev
	}

	if d.booked[culprit.ID] {
		conversion := secondYellowConversion + float64(culprit.Attributes.Aggression)/400.0
		if ctx.Derby {
			conversion = math.Min(1, conversion*1.1)
		}
		if random.Chance(rng, conversion) {
			ev.Type = fixture.EventCardRed
			ev.Description = describe(ev.Type, descContext{Team: offender.Name, Player: culprit.Name}, rng)
			return &ev
		}
		// Referee keeps the card in the pocket; it stays a foul rather
		// than stacking a third yellow on a booked player.
		ev.Type = fixture.EventFoul
		ev.Description = describe(ev.Type, descContext{Team: offender.Name, Player: culprit.Name}, rng)
		return &ev
	}

	ev.Type = fixture.EventCardYellow
	ev.Description = describe(ev.Type, descContext{Team: offender.Name, Player: culprit.Name}, rng)
	return &ev
}

func saveEvent(minute int, defending team.Team, d discipline, rng random.Source) *fixture.MatchEvent {
	keeper := keeperOf(defending, d)
	ev := fixture.MatchEvent{
		Minute:   minute,
		Type:     fixture.EventSave,
		TeamID:   defending.ID,
		PlayerID: keeper.ID,
	}
	ev.Description = describe(ev.Type, descContext{Team: defending.Name, Keeper: keeper.Name}, rng)
	return &ev
}

func cornerEvent(minute int, attacker team.Team, rng random.Source) *fixture.MatchEvent {
	ev := fixture.MatchEvent{Minute: minute, Type: fixture.EventCorner, TeamID: attacker.ID}
	ev.Description = describe(ev.Type, descContext{Team: attacker.Name}, rng)
	return &ev
}

func simpleAttackerEvent(minute int, typ fixture.EventType, attacker team.Team, d discipline, rng random.Source) *fixture.MatchEvent {
	pool := onPitch(attacker, d)
	p := pickScorer(pool, rng)
	ev := fixture.MatchEvent{Minute: minute, Type: typ, TeamID: attacker.ID, PlayerID: p.ID}
	ev.Description = describe(typ, descContext{Team: attacker.Name, Player: p.Name}, rng)
	return &ev
}
