// Package rating converts event streams and player skill into bounded
// match ratings with team-wide distribution constraints.
package rating

import (
	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/platform/random"
)

const (
	MinRating = 3.0
	MaxRating = 10.0

	// standoutCeiling gates ratings above 8.5 behind a genuinely
	// standout contribution.
	standoutCeiling = 8.5
)

// MatchResult is the team outcome fed into the result-impact term.
type MatchResult int

const (
	ResultLoss MatchResult = iota
	ResultDraw
	ResultWin
)

// Input is one player's line for a single match.
type Input struct {
	Position         player.Position
	Skill            int
	Goals            int
	Assists          int
	YellowCards      int
	RedCards         int
	GoalsConceded    int
	Result           MatchResult
	MinutesPlayed    int
	WinningGoalBonus float64
}

// subStats are the hidden granular numbers synthesized per match from
// skill and position. They never leave this package but drive the
// weighted sums.
type subStats struct {
	passAccuracy float64
	duelsWonPct  float64
	tackles      int
	keyPasses    int
	saves        int
	claims       int
	errorToShot  bool
	errorToGoal  bool
}

func synthesize(in Input, rng random.Source) subStats {
	skill := float64(in.Skill)

	s := subStats{
		passAccuracy: clampPct(skill*0.65 + random.Between(rng, 5, 30)),
		duelsWonPct:  clampPct(skill*0.55 + random.Between(rng, 5, 35)),
	}

	switch in.Position {
	case player.PositionGoalkeeper:
		s.saves = int(skill/16) + rng.Intn(4)
		s.claims = rng.Intn(3)
		if in.GoalsConceded > 0 {
			s.saves += rng.Intn(2)
		}
	case player.PositionDefender:
		s.tackles = 2 + int(skill/25) + rng.Intn(3)
	case player.PositionMidfielder, player.PositionWinger:
		s.keyPasses = int(skill/30) + rng.Intn(3)
		s.tackles = 1 + rng.Intn(3)
	case player.PositionForward:
		s.keyPasses = rng.Intn(2)
	}

	s.errorToShot = random.Chance(rng, 0.05)
	s.errorToGoal = in.GoalsConceded > 0 && random.Chance(rng, 0.04)

	return s
}

func clampPct(v float64) float64 {
	if v < 30 {
		return 30
	}
	if v > 99 {
		return 99
	}
	return v
}

// Rate computes one bounded match rating. The team-wide distribution
// constraints are applied by FromEvents, not here.
func Rate(in Input, rng random.Source) float64 {
	rating := baseline(in.Position)

	// Result impact, suppressed when the match-deciding goal bonus
	// already rewards the same contribution.
	if in.WinningGoalBonus == 0 {
		switch in.Result {
		case ResultWin:
			rating += 0.4
		case ResultLoss:
			rating -= 0.4
		}
	}

	s := synthesize(in, rng)

	switch in.Position {
	case player.PositionGoalkeeper:
		rating += float64(s.saves) * 0.15
		rating += float64(s.claims) * 0.05
		rating -= float64(in.GoalsConceded) * 0.35
		if in.GoalsConceded == 0 && in.MinutesPlayed >= 60 {
			rating += 0.6
		}
		if s.errorToGoal {
			rating -= 1.3
		}
	case player.PositionDefender:
		rating += float64(s.tackles) * 0.1
		rating += (s.duelsWonPct - 50) / 60
		if in.GoalsConceded == 0 {
			rating += 0.5
		}
		rating -= float64(in.GoalsConceded) * 0.15
		rating += float64(in.Goals)*0.9 + float64(in.Assists)*0.6
	case player.PositionMidfielder, player.PositionWinger:
		rating += (s.passAccuracy - 60) / 50
		rating += float64(s.keyPasses) * 0.15
		rating += float64(in.Goals)*1.0 + float64(in.Assists)*0.7
	case player.PositionForward:
		goalTerm := float64(in.Goals) * 1.1
		if in.Goals == 0 {
			// Capped downside: a quiet night is not a disaster.
			goalTerm = -0.3
		}
		rating += goalTerm
		rating += float64(in.Assists) * 0.6
		rating += float64(s.keyPasses) * 0.1
	}

	rating -= float64(in.YellowCards) * 0.3
	rating -= float64(in.RedCards) * 1.0
	if s.errorToShot {
		rating -= 0.2
	}
	if s.errorToGoal && in.Position != player.PositionGoalkeeper {
		rating -= 0.8
	}

	// Floor rules for standout box-score lines.
	if in.Position == player.PositionDefender && in.Assists >= 2 && rating < 8.0 {
		rating = 8.0
	}
	if in.Position == player.PositionForward {
		if in.Goals >= 3 && rating < 8.8 {
			rating = 8.8
		} else if in.Goals == 2 && rating < 8.3 {
			rating = 8.3
		}
	}

	rating += in.WinningGoalBonus

	if rating > standoutCeiling && !standoutAllowed(in, s) {
		rating = standoutCeiling
	}

	return clampRating(rating)
}

// standoutAllowed lists the contributions that may break 8.5: a brace,
// a goal plus an assist, or a busy clean sheet in goal.
func standoutAllowed(in Input, s subStats) bool {
	if in.Goals >= 2 {
		return true
	}
	if in.Goals >= 1 && in.Assists >= 1 {
		return true
	}
	if in.Position == player.PositionGoalkeeper && in.GoalsConceded == 0 && s.saves >= 5 {
		return true
	}
	return false
}

func baseline(pos player.Position) float64 {
	// Keepers start from a "no mistakes" prior.
	switch pos {
	case player.PositionGoalkeeper:
		return 6.8
	case player.PositionDefender:
		return 6.5
	case player.PositionForward:
		return 6.3
	default:
		return 6.4
	}
}

func clampRating(v float64) float64 {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}
