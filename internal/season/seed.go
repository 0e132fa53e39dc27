package season

import (
	"fmt"

	"github.com/footsim/manager/internal/domain/player"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
)

var firstNames = []string{
	"Alex", "Bruno", "Carlos", "Dmitri", "Emre", "Felix", "Goran", "Hugo",
	"Ivan", "Jonas", "Kofi", "Luca", "Mateo", "Nico", "Oscar", "Pablo",
	"Rafael", "Sergei", "Tomas", "Victor", "Yusuf", "Zlatko",
}

var lastNames = []string{
	"Almeida", "Bergström", "Costa", "Dragović", "Eriksen", "Ferreira",
	"Galván", "Hoffmann", "Ivanov", "Jansen", "Kovač", "Lindqvist",
	"Moreau", "Novak", "Okafor", "Petrov", "Quintero", "Rossi",
	"Schneider", "Takács", "Ueda", "Vidal", "Weber", "Zielinski",
}

var clubNames = []string{
	"Northbridge United", "Harborview FC", "Eastfield Rovers", "Oldtown Athletic",
	"Riverside City", "Kingsport Wanderers", "Westgate Albion", "Stonecross Town",
	"Lakemont FC", "Ironhill United", "Southmoor Rangers", "Clearwater FC",
	"Redbrook City", "Foxdale Athletic", "Millhaven Town", "Brightonne FC",
	"Ashworth County", "Glenmoor United", "Thornfield FC", "Silverlake Rovers",
	"Copperfield Town", "Windmere City", "Bramblewood FC", "Duskvale Athletic",
	"Hartcliffe United", "Marrowgate FC", "Pinecrest Rovers", "Quarryside Town",
	"Roseport City", "Summerden FC", "Tidemouth Athletic", "Umberfield United",
	"Valewood Rovers", "Wrenhill Town", "Yarrowgate FC", "Zephyr Harbour",
}

// lineupShape is the XI composition every seeded squad starts with.
var lineupShape = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
	player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
	player.PositionWinger, player.PositionWinger,
	player.PositionForward,
}

var benchShape = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionWinger,
	player.PositionForward,
	player.PositionDefender,
	player.PositionForward,
}

// NewWorld seeds a two-tier world with generated squads and a full
// fixture list for the opening season.
func NewWorld(year, teamsPerLeague, squadSize int, seed int64) State {
	rng := random.NewSeeded(seed)

	state := State{
		Year:        year,
		CurrentDate: FirstHalfStart(year).AddDate(0, 0, -1),
		Seed:        seed,
	}

	tiers := []struct {
		id   string
		name string
		tier int
	}{
		{"league-1", "Premier Division", 1},
		{"league-2", "Second Division", 2},
	}

	clubIdx := 0
	for _, tier := range tiers {
		l := League{ID: tier.id, Name: tier.name, Tier: tier.tier}
		for i := 0; i < teamsPerLeague; i++ {
			t := seedTeam(clubIdx, tier.id, tier.tier, squadSize, rng)
			l.TeamIDs = append(l.TeamIDs, t.ID)
			state.Teams = append(state.Teams, t)
			clubIdx++
		}
		state.Leagues = append(state.Leagues, l)
	}

	// Neighbouring clubs in the same division are rivals, which seeds a
	// couple of derbies per season.
	for i := range state.Teams {
		if i%2 == 0 && i+1 < len(state.Teams) && state.Teams[i].LeagueID == state.Teams[i+1].LeagueID {
			state.Teams[i].Rivals = []string{state.Teams[i+1].ID}
			state.Teams[i+1].Rivals = []string{state.Teams[i].ID}
		}
	}

	for _, l := range state.Leagues {
		var members []team.Team
		for _, id := range l.TeamIDs {
			if t, ok := state.Team(id); ok {
				members = append(members, t)
			}
		}
		state.Fixtures = append(state.Fixtures, GenerateLeagueFixtures(members, year)...)
	}

	return state
}

func seedTeam(idx int, leagueID string, tier, squadSize int, rng random.Source) team.Team {
	name := clubNames[idx%len(clubNames)]
	if idx >= len(clubNames) {
		name = fmt.Sprintf("%s II", name)
	}

	// Lower tiers field weaker squads on average.
	baseSkill := 72 - (tier-1)*12 + rng.Intn(8)

	t := team.Team{
		ID:       fmt.Sprintf("team-%02d", idx+1),
		Name:     name,
		LeagueID: leagueID,
		Tactics:  team.DefaultTactics(),
	}

	shapes := append(append([]player.Position(nil), lineupShape...), benchShape...)
	for len(shapes) < squadSize {
		shapes = append(shapes, player.PositionMidfielder)
	}
	shapes = shapes[:squadSize]

	for i, pos := range shapes {
		t.Roster = append(t.Roster, seedPlayer(fmt.Sprintf("%s-p%02d", t.ID, i+1), pos, baseSkill, rng))
	}
	return t
}

func seedPlayer(pid string, pos player.Position, baseSkill int, rng random.Source) player.Player {
	skill := clampSkill(baseSkill - 6 + rng.Intn(13))

	p := player.Player{
		ID:        pid,
		Name:      firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
		Position:  pos,
		Skill:     skill,
		Age:       18 + rng.Intn(16),
		Condition: 100,
		Morale:    70,
		Attributes: player.Attributes{
			Pace:        around(skill, rng),
			Passing:     around(skill, rng),
			Tackling:    around(skill, rng),
			Shooting:    around(skill, rng),
			Stamina:     around(skill, rng),
			Aggression:  clampSkill(30 + rng.Intn(50)),
			InjuryProne: clampSkill(25 + rng.Intn(45)),
			Positioning: around(skill, rng),
			Handling:    around(skill, rng),
		},
	}

	// Sharpen the attribute that defines the role.
	switch pos {
	case player.PositionGoalkeeper:
		p.Attributes.Handling = clampSkill(skill + 8)
	case player.PositionDefender:
		p.Attributes.Tackling = clampSkill(skill + 8)
	case player.PositionMidfielder:
		p.Attributes.Passing = clampSkill(skill + 8)
	case player.PositionWinger:
		p.Attributes.Pace = clampSkill(skill + 8)
	case player.PositionForward:
		p.Attributes.Shooting = clampSkill(skill + 8)
	}

	return p
}

func around(center int, rng random.Source) int {
	return clampSkill(center - 8 + rng.Intn(17))
}

func clampSkill(v int) int {
	if v < player.MinSkill {
		return player.MinSkill
	}
	if v > player.MaxSkill {
		return player.MaxSkill
	}
	return v
}
