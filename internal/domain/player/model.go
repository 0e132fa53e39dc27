package player

import "fmt"

// Position represents the role categories the simulation distinguishes.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionWinger     Position = "WING"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionWinger:     {},
	PositionForward:    {},
}

const (
	MinSkill = 20
	MaxSkill = 99
)

// Attributes is the structured skill bundle behind the headline skill
// number. Each value lives in [MinSkill, MaxSkill].
type Attributes struct {
	Pace        int
	Passing     int
	Tackling    int
	Shooting    int
	Stamina     int
	Aggression  int
	InjuryProne int
	Positioning int
	Handling    int
}

// InjuryType identifies an entry in the weighted injury table.
type InjuryType string

const (
	InjuryBruise    InjuryType = "BRUISE"
	InjuryStrain    InjuryType = "STRAIN"
	InjurySprain    InjuryType = "SPRAIN"
	InjuryHamstring InjuryType = "HAMSTRING"
	InjuryTear      InjuryType = "MUSCLE_TEAR"
	InjuryFracture  InjuryType = "FRACTURE"
)

// Injury tracks an active knock and the weeks until it clears.
type Injury struct {
	Type      InjuryType
	WeeksLeft int
}

// SeasonStats accumulates per-season output and a rolling rating.
type SeasonStats struct {
	Goals     int
	Assists   int
	Matches   int
	RatingSum float64
}

func (s SeasonStats) AvgRating() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.RatingSum / float64(s.Matches)
}

// Player is one squad member. Owned by exactly one team at a time and
// re-parented on transfer, never deleted.
type Player struct {
	ID                 string
	Name               string
	Position           Position
	Skill              int
	Attributes         Attributes
	Age                int
	Condition          int
	Morale             int
	Injury             *Injury
	SuspendedUntilWeek int
	AbsentMatches      int
	SeasonStats        SeasonStats
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Skill < MinSkill || p.Skill > MaxSkill {
		return fmt.Errorf("player skill out of range: %d", p.Skill)
	}
	if p.Condition < 0 || p.Condition > 100 {
		return fmt.Errorf("player condition out of range: %d", p.Condition)
	}
	if p.Morale < 0 || p.Morale > 100 {
		return fmt.Errorf("player morale out of range: %d", p.Morale)
	}

	return nil
}

// Injured reports whether the player currently carries an injury.
func (p Player) Injured() bool {
	return p.Injury != nil && p.Injury.WeeksLeft > 0
}

// Suspended reports whether the player is banned for the given week.
func (p Player) Suspended(week int) bool {
	return p.SuspendedUntilWeek > 0 && week < p.SuspendedUntilWeek
}

// Available reports whether the player can be selected for the given week.
func (p Player) Available(week int) bool {
	return !p.Injured() && !p.Suspended(week)
}

// Exhausted reports whether fatigue makes the player an elevated injury
// risk on the pitch.
func (p Player) Exhausted() bool {
	return p.Condition < 50
}

// ClampMeters bounds condition and morale back into [0, 100].
func (p *Player) ClampMeters() {
	p.Condition = clampMeter(p.Condition)
	p.Morale = clampMeter(p.Morale)
}

func clampMeter(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
