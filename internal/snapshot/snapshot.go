// Package snapshot encodes season state for the save layer. Loading is
// forgiving: partial snapshots are backfilled with safe defaults, and
// only broken structural invariants abort a load.
package snapshot

import (
	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/season"
)

// CurrentVersion tags snapshots for forward-compatible loads.
const CurrentVersion = 1

// Envelope wraps the state with versioning metadata.
type Envelope struct {
	Version int          `json:"version" validate:"gte=0"`
	State   season.State `json:"state"`
}

var validate = validator.New()

// Encode serializes a season state.
func Encode(state season.State) ([]byte, error) {
	raw, err := sonic.Marshal(Envelope{Version: CurrentVersion, State: state})
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	return raw, nil
}

// Decode parses a snapshot, backfills missing fields with defaults and
// verifies structural invariants. A partial snapshot loads; a snapshot
// whose fixtures reference nonexistent teams does not.
func Decode(raw []byte) (season.State, error) {
	var env Envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return season.State{}, errors.Wrap(err, "decode snapshot")
	}

	if err := validate.Struct(env); err != nil {
		return season.State{}, errors.Wrap(err, "snapshot failed validation")
	}

	state := env.State
	backfill(&state)

	if err := state.Validate(); err != nil {
		return season.State{}, errors.Wrap(err, "snapshot violates structural invariants")
	}
	return state, nil
}

// backfill repairs the omissions a truncated or older snapshot may
// carry. It never rejects; that is Validate's job.
func backfill(state *season.State) {
	if state.Year == 0 {
		state.Year = 2025
	}
	if state.CurrentDate.IsZero() {
		state.CurrentDate = season.FirstHalfStart(state.Year)
	}
	if state.Seed == 0 {
		state.Seed = 1
	}

	for i := range state.Teams {
		t := &state.Teams[i]
		if t.Tactics.Formation == "" {
			t.Tactics = team.DefaultTactics()
		}
		for j := range t.Roster {
			backfillPlayer(&t.Roster[j])
		}
	}
}

func backfillPlayer(p *player.Player) {
	if p.Position == "" {
		p.Position = player.PositionMidfielder
	}
	if p.Skill == 0 {
		p.Skill = player.MinSkill
	}
	if p.Condition == 0 && p.Morale == 0 && p.SeasonStats.Matches == 0 {
		// A fresh or truncated record rather than a genuinely drained
		// player: start it healthy.
		p.Condition = 100
		p.Morale = 70
	}
	p.ClampMeters()
}
