package team

import "fmt"

// Formation is a shape label only; the simulation reads roles from
// player positions, not from pitch coordinates.
type Formation string

const (
	Formation442  Formation = "4-4-2"
	Formation433  Formation = "4-3-3"
	Formation352  Formation = "3-5-2"
	Formation4231 Formation = "4-2-3-1"
	Formation532  Formation = "5-3-2"
)

var AllFormations = map[Formation]struct{}{
	Formation442:  {},
	Formation433:  {},
	Formation352:  {},
	Formation4231: {},
	Formation532:  {},
}

type PassingStyle string

const (
	PassingShort  PassingStyle = "SHORT"
	PassingMixed  PassingStyle = "MIXED"
	PassingDirect PassingStyle = "DIRECT"
)

type Tempo string

const (
	TempoSlow   Tempo = "SLOW"
	TempoNormal Tempo = "NORMAL"
	TempoHigh   Tempo = "HIGH"
)

type Width string

const (
	WidthNarrow Width = "NARROW"
	WidthNormal Width = "NORMAL"
	WidthWide   Width = "WIDE"
)

type Mentality string

const (
	MentalityDefensive Mentality = "DEFENSIVE"
	MentalityBalanced  Mentality = "BALANCED"
	MentalityAttacking Mentality = "ATTACKING"
)

type Pressing string

const (
	PressingLow  Pressing = "LOW"
	PressingMid  Pressing = "MID"
	PressingHigh Pressing = "HIGH"
)

type DefensiveLine string

const (
	LineDeep   DefensiveLine = "DEEP"
	LineNormal DefensiveLine = "NORMAL"
	LineHigh   DefensiveLine = "HIGH"
)

type Marking string

const (
	MarkingZonal Marking = "ZONAL"
	MarkingMan   Marking = "MAN"
)

type TacklingStyle string

const (
	TacklingCautious   TacklingStyle = "CAUTIOUS"
	TacklingNormal     TacklingStyle = "NORMAL"
	TacklingAggressive TacklingStyle = "AGGRESSIVE"
)

type Toggle string

const (
	ToggleOff Toggle = "OFF"
	ToggleOn  Toggle = "ON"
)

type Crossing string

const (
	CrossingRare  Crossing = "RARE"
	CrossingMixed Crossing = "MIXED"
	CrossingOften Crossing = "OFTEN"
)

type Dribbling string

const (
	DribblingRare  Dribbling = "RARE"
	DribblingMixed Dribbling = "MIXED"
	DribblingOften Dribbling = "OFTEN"
)

type ShootingRange string

const (
	ShootingBox      ShootingRange = "WORK_INTO_BOX"
	ShootingMixed    ShootingRange = "MIXED"
	ShootingDistance ShootingRange = "FROM_DISTANCE"
)

type GoalKickStyle string

const (
	GoalKickShort GoalKickStyle = "SHORT"
	GoalKickLong  GoalKickStyle = "LONG"
)

// Tactics is the full tactical configuration: a formation plus the
// independent style settings, each adjusting the strength multiplier
// depending on whether the roster supports it.
type Tactics struct {
	Formation     Formation
	Passing       PassingStyle
	Tempo         Tempo
	Width         Width
	Mentality     Mentality
	Pressing      Pressing
	DefensiveLine DefensiveLine
	Marking       Marking
	Tackling      TacklingStyle
	CounterAttack Toggle
	OffsideTrap   Toggle
	TimeWasting   Toggle
	Crossing      Crossing
	Dribbling     Dribbling
	Shooting      ShootingRange
	GoalKicks     GoalKickStyle
}

// DefaultTactics is the neutral configuration new teams start with.
func DefaultTactics() Tactics {
	return Tactics{
		Formation:     Formation442,
		Passing:       PassingMixed,
		Tempo:         TempoNormal,
		Width:         WidthNormal,
		Mentality:     MentalityBalanced,
		Pressing:      PressingMid,
		DefensiveLine: LineNormal,
		Marking:       MarkingZonal,
		Tackling:      TacklingNormal,
		CounterAttack: ToggleOff,
		OffsideTrap:   ToggleOff,
		TimeWasting:   ToggleOff,
		Crossing:      CrossingMixed,
		Dribbling:     DribblingMixed,
		Shooting:      ShootingMixed,
		GoalKicks:     GoalKickShort,
	}
}

func (t Tactics) Validate() error {
	if _, ok := AllFormations[t.Formation]; !ok {
		return fmt.Errorf("invalid formation: %s", t.Formation)
	}
	return nil
}
