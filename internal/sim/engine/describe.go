package engine

import (
	"text/template"

	"github.com/valyala/bytebufferpool"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/platform/random"
)

// descContext carries the named placeholders the event templates fill.
type descContext struct {
	Team   string
	Scorer string
	Assist string
	Keeper string
	Victim string
	Player string
}

var descTemplates = map[fixture.EventType][]*template.Template{
	fixture.EventGoal: parseAll(
		"GOAL! {{.Scorer}} finds the net for {{.Team}}!",
		"{{.Scorer}} scores! {{.Team}} erupt!",
		"A clinical finish from {{.Scorer}} puts {{.Team}} on the scoresheet",
	),
	fixture.EventCardYellow: parseAll(
		"{{.Player}} goes into the book for {{.Team}}",
		"Yellow card. {{.Player}} catches his man late",
	),
	fixture.EventCardRed: parseAll(
		"RED CARD! {{.Player}} is off, {{.Team}} down to ten... or fewer",
		"{{.Player}} sees red and {{.Team}} must reshuffle",
	),
	fixture.EventInjury: parseAll(
		"{{.Victim}} is down and signals to the bench",
		"Worry for {{.Team}}: {{.Victim}} cannot continue at full pace",
	),
	fixture.EventFoul: parseAll(
		"{{.Player}} concedes a free kick",
		"Cynical challenge by {{.Player}}, play stops",
	),
	fixture.EventSave: parseAll(
		"Brilliant stop by {{.Keeper}}!",
		"{{.Keeper}} gets down well to deny the effort",
	),
	fixture.EventOffside: parseAll(
		"The flag is up against {{.Player}}",
		"{{.Player}} times the run badly, offside",
	),
	fixture.EventCorner: parseAll(
		"Corner for {{.Team}}",
		"{{.Team}} swing in a corner",
	),
	fixture.EventMiss: parseAll(
		"{{.Player}} drags it wide!",
		"So close! {{.Player}} cannot keep the shot down",
	),
	fixture.EventInfo: parseAll(
		"{{.Team}} knock it around midfield",
		"A lull in the game as {{.Team}} keep possession",
		"End to end stuff, neither side on top",
	),
}

func parseAll(patterns ...string) []*template.Template {
	out := make([]*template.Template, 0, len(patterns))
	for i, p := range patterns {
		out = append(out, template.Must(template.New(string(rune('a'+i))).Parse(p)))
	}
	return out
}

// describe renders a random template variant for the event type.
func describe(typ fixture.EventType, ctx descContext, rng random.Source) string {
	variants := descTemplates[typ]
	if len(variants) == 0 {
		return ""
	}
	tmpl := variants[rng.Intn(len(variants))]

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tmpl.Execute(buf, ctx); err != nil {
		return ""
	}
	return buf.String()
}
