package engine

import (
	"math"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
)

// discipline is the per-match card bookkeeping reconstructed from the
// accumulated event list on every step.
type discipline struct {
	sentOff map[string]bool
	booked  map[string]bool
	reds    map[string]int
}

func disciplineFrom(prior []fixture.MatchEvent) discipline {
	d := discipline{
		sentOff: make(map[string]bool),
		booked:  make(map[string]bool),
		reds:    make(map[string]int),
	}
	for _, ev := range prior {
		switch ev.Type {
		case fixture.EventCardYellow:
			d.booked[ev.PlayerID] = true
		case fixture.EventCardRed:
			d.sentOff[ev.PlayerID] = true
			d.reds[ev.TeamID]++
		}
	}
	return d
}

// onPitch is the starting eleven minus anyone already sent off. An
// empty result falls back to the remaining roster rather than failing.
func onPitch(t team.Team, d discipline) []player.Player {
	pool := make([]player.Player, 0, team.LineupSize)
	for _, p := range t.XI() {
		if !d.sentOff[p.ID] {
			pool = append(pool, p)
		}
	}
	if len(pool) > 0 {
		return pool
	}
	for _, p := range t.Roster {
		if !d.sentOff[p.ID] {
			pool = append(pool, p)
		}
	}
	if len(pool) > 0 {
		return pool
	}
	return t.Roster
}

// scorerWeight biases the scoring pool toward the front line. The pool
// is built with duplicated entries, so weights are small integers.
func scorerWeight(p player.Player) int {
	switch p.Position {
	case player.PositionForward:
		return 4
	case player.PositionWinger:
		return 3
	case player.PositionMidfielder:
		return 2
	case player.PositionDefender:
		return 1
	default:
		return 0
	}
}

func pickScorer(pool []player.Player, rng random.Source) player.Player {
	weighted := make([]player.Player, 0, len(pool)*4)
	for _, p := range pool {
		for i := 0; i < scorerWeight(p); i++ {
			weighted = append(weighted, p)
		}
	}
	if len(weighted) == 0 {
		// Keepers only. Someone still has to score it.
		return pickAny(pool, rng)
	}
	return weighted[rng.Intn(len(weighted))]
}

// injuryWeight grows sharply once a player drops under half condition
// and scales with intrinsic susceptibility.
func injuryWeight(p player.Player) float64 {
	w := float64(p.Attributes.InjuryProne) / 50.0
	if p.Condition < 50 {
		w *= math.Pow(1.6, float64(50-p.Condition)/10.0)
	}
	return w
}

func aggressionWeight(p player.Player) float64 {
	return float64(p.Attributes.Aggression)
}

func pickAggressor(pool []player.Player, rng random.Source) player.Player {
	return pickWeighted(pool, aggressionWeight, rng)
}

func pickWeighted(pool []player.Player, weight func(player.Player) float64, rng random.Source) player.Player {
	if len(pool) == 0 {
		return player.Player{}
	}
	total := 0.0
	for _, p := range pool {
		total += weight(p)
	}
	if total <= 0 {
		return pickAny(pool, rng)
	}
	draw := rng.Float64() * total
	for _, p := range pool {
		draw -= weight(p)
		if draw < 0 {
			return p
		}
	}
	return pool[len(pool)-1]
}

func pickAny(pool []player.Player, rng random.Source) player.Player {
	if len(pool) == 0 {
		return player.Player{}
	}
	return pool[rng.Intn(len(pool))]
}

// poolEntry tags a pitch player with the team it belongs to, for draws
// that span both sides.
type poolEntry struct {
	teamID   string
	teamName string
	p        player.Player
}

func poolEntries(t team.Team, d discipline) []poolEntry {
	pitch := onPitch(t, d)
	out := make([]poolEntry, 0, len(pitch))
	for _, p := range pitch {
		out = append(out, poolEntry{teamID: t.ID, teamName: t.Name, p: p})
	}
	return out
}

// pickEntryWeighted draws one entry by injury weight across both teams.
func pickEntryWeighted(entries []poolEntry, rng random.Source) poolEntry {
	total := 0.0
	for _, e := range entries {
		total += injuryWeight(e.p)
	}
	if total <= 0 {
		return entries[rng.Intn(len(entries))]
	}
	draw := rng.Float64() * total
	for _, e := range entries {
		draw -= injuryWeight(e.p)
		if draw < 0 {
			return e
		}
	}
	return entries[len(entries)-1]
}

// keeperOf returns the goalkeeper still on the pitch, or any remaining
// player when the keeper is gone.
func keeperOf(t team.Team, d discipline) player.Player {
	for _, p := range t.XI() {
		if p.Position == player.PositionGoalkeeper && !d.sentOff[p.ID] {
			return p
		}
	}
	pool := onPitch(t, d)
	if len(pool) == 0 {
		return player.Player{}
	}
	return pool[0]
}

// teammateFor picks an assist candidate distinct from the scorer.
func teammateFor(pool []player.Player, scorerID string, rng random.Source) (player.Player, bool) {
	others := make([]player.Player, 0, len(pool))
	for _, p := range pool {
		if p.ID != scorerID && p.Position != player.PositionGoalkeeper {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return player.Player{}, false
	}
	return pickScorer(others, rng), true
}
