// Package tactics converts a lineup and its tactical configuration into
// an effective strength multiplier for a given match minute.
package tactics

import (
	"fmt"

	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
)

// MinMultiplier is the floor: a team can never become unplayable.
const MinMultiplier = 0.4

// highTempoFadeMinute is where an aggressive tempo stops paying off and
// fatigue starts costing instead.
const highTempoFadeMinute = 60

// supportThreshold is the group average above which a setting is
// considered backed by the players asked to execute it.
const supportThreshold = 65.0

const (
	rewardStep  = 0.035
	penaltyStep = 0.045
	warningOdds = 0.08
)

// GroupAverages are the lineup attribute means the settings are judged
// against.
type GroupAverages struct {
	DefenderTackling float64
	MidfieldPassing  float64
	WingerPace       float64
	StrikerShooting  float64
	SquadStamina     float64
	SquadPassing     float64
	SquadPace        float64
	SquadAggression  float64
}

// Averages computes attribute-group means over the starting eleven.
// Groups with no players fall back to the squad-wide mean so a lopsided
// lineup renders neutral numbers instead of dividing by zero.
func Averages(t team.Team) GroupAverages {
	xi := t.XI()

	var g GroupAverages
	var defN, midN, wingN, fwdN int
	var staminaSum, passSum, paceSum, aggroSum float64

	for _, p := range xi {
		staminaSum += float64(p.Attributes.Stamina)
		passSum += float64(p.Attributes.Passing)
		paceSum += float64(p.Attributes.Pace)
		aggroSum += float64(p.Attributes.Aggression)

		switch p.Position {
		case player.PositionDefender:
			g.DefenderTackling += float64(p.Attributes.Tackling)
			defN++
		case player.PositionMidfielder:
			g.MidfieldPassing += float64(p.Attributes.Passing)
			midN++
		case player.PositionWinger:
			g.WingerPace += float64(p.Attributes.Pace)
			wingN++
		case player.PositionForward:
			g.StrikerShooting += float64(p.Attributes.Shooting)
			fwdN++
		}
	}

	n := float64(len(xi))
	if n == 0 {
		n = 1
	}
	g.SquadStamina = staminaSum / n
	g.SquadPassing = passSum / n
	g.SquadPace = paceSum / n
	g.SquadAggression = aggroSum / n

	g.DefenderTackling = groupMean(g.DefenderTackling, defN, g.SquadPassing)
	g.MidfieldPassing = groupMean(g.MidfieldPassing, midN, g.SquadPassing)
	g.WingerPace = groupMean(g.WingerPace, wingN, g.SquadPace)
	g.StrikerShooting = groupMean(g.StrikerShooting, fwdN, g.SquadPassing)

	return g
}

func groupMean(sum float64, n int, fallback float64) float64 {
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}

// Efficiency evaluates every tactical setting against the lineup and
// returns the running multiplier for this minute, plus an occasional
// narrative warning when a mismatch is severe. Pure apart from the
// injected random source; time-dependent settings make the result
// minute-sensitive, so callers re-evaluate per minute.
func Efficiency(t team.Team, minute int, rng random.Source) (float64, string) {
	g := Averages(t)
	cfg := t.Tactics

	multiplier := 1.0
	warning := ""

	adjust := func(supported bool, label string) {
		if supported {
			multiplier += rewardStep
			return
		}
		multiplier -= penaltyStep
		if warning == "" && random.Chance(rng, warningOdds) {
			warning = fmt.Sprintf("%s does not suit this squad", label)
		}
	}

	switch cfg.Passing {
	case team.PassingShort:
		adjust(g.SquadPassing >= supportThreshold, "possession passing")
	case team.PassingDirect:
		adjust(g.StrikerShooting >= supportThreshold, "direct passing")
	}

	switch cfg.Tempo {
	case team.TempoHigh:
		if minute < highTempoFadeMinute {
			multiplier += rewardStep
		} else {
			// Legs go after the hour unless the squad is built for it.
			adjust(g.SquadStamina >= supportThreshold, "high tempo")
		}
	case team.TempoSlow:
		adjust(g.SquadPassing >= supportThreshold, "slow buildup")
	}

	switch cfg.Width {
	case team.WidthWide:
		adjust(g.WingerPace >= supportThreshold, "wide play")
	case team.WidthNarrow:
		adjust(g.MidfieldPassing >= supportThreshold, "narrow play")
	}

	switch cfg.Mentality {
	case team.MentalityAttacking:
		adjust(g.StrikerShooting >= supportThreshold, "attacking mentality")
	case team.MentalityDefensive:
		adjust(g.DefenderTackling >= supportThreshold, "defensive mentality")
	}

	if cfg.Pressing == team.PressingHigh {
		if minute < highTempoFadeMinute {
			adjust(g.SquadStamina >= supportThreshold-5, "high pressing")
		} else {
			adjust(g.SquadStamina >= supportThreshold+5, "high pressing")
		}
	}

	switch cfg.DefensiveLine {
	case team.LineHigh:
		adjust(g.SquadPace >= supportThreshold, "high defensive line")
	case team.LineDeep:
		adjust(g.DefenderTackling >= supportThreshold, "deep block")
	}

	if cfg.Marking == team.MarkingMan {
		adjust(g.DefenderTackling >= supportThreshold, "man marking")
	}

	if cfg.Tackling == team.TacklingAggressive {
		adjust(g.SquadAggression >= supportThreshold, "aggressive tackling")
	}

	if cfg.CounterAttack == team.ToggleOn {
		adjust(g.SquadPace >= supportThreshold, "counterattacks")
	}

	if cfg.OffsideTrap == team.ToggleOn {
		adjust(g.DefenderTackling >= supportThreshold && g.SquadPace >= supportThreshold-5, "the offside trap")
	}

	if cfg.TimeWasting == team.ToggleOn && minute >= 75 {
		// Only pays late, and only for organized sides.
		adjust(g.DefenderTackling >= supportThreshold-5, "time wasting")
	}

	if cfg.Crossing == team.CrossingOften {
		adjust(g.WingerPace >= supportThreshold, "constant crossing")
	}

	if cfg.Dribbling == team.DribblingOften {
		adjust(g.SquadPace >= supportThreshold, "dribbling runs")
	}

	switch cfg.Shooting {
	case team.ShootingDistance:
		adjust(g.StrikerShooting >= supportThreshold+5, "long shots")
	case team.ShootingBox:
		adjust(g.SquadPassing >= supportThreshold, "working the ball into the box")
	}

	if cfg.GoalKicks == team.GoalKickShort {
		adjust(g.SquadPassing >= supportThreshold-10, "playing out from the back")
	}

	if multiplier < MinMultiplier {
		multiplier = MinMultiplier
	}

	return multiplier, warning
}
