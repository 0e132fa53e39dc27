package season

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel"

	"github.com/footsim/manager/internal/domain/fixture"
	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/logging"
	"github.com/footsim/manager/internal/platform/random"
	"github.com/footsim/manager/internal/sim/engine"
	"github.com/footsim/manager/internal/sim/postmatch"
)

var seasonTracer = otel.Tracer("manager/internal/season")

// dailyRecovery is the condition regained per rest day.
const dailyRecovery = 5

// Scheduler advances the world one day at a time.
type Scheduler struct {
	logger  *logging.Logger
	workers int
}

func NewScheduler(logger *logging.Logger, workers int) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &Scheduler{logger: logger, workers: workers}
}

// AdvanceDay resolves every fixture scheduled for the current date that
// does not involve the user's team, applies post-match processing,
// ticks recovery, refreshes the transfer window flag, synthesizes
// knockout rounds as feeders complete, and handles the year rollover.
// It returns a new State and never mutates the input.
func (s *Scheduler) AdvanceDay(ctx context.Context, state State) (State, error) {
	ctx, span := seasonTracer.Start(ctx, "season.AdvanceDay")
	defer span.End()

	next := state.Clone()

	due := s.dueFixtures(next)
	if len(due) > 0 {
		if err := s.resolveFixtures(ctx, &next, due); err != nil {
			return state, err
		}
	}

	s.tickRecovery(&next, playedToday(next))
	s.synthesizeKnockouts(&next)

	next.TransferWindowOpen = TransferWindowOpen(next.CurrentDate)

	if SameDay(next.CurrentDate, RolloverDate(next.Year)) {
		rolled, err := s.rollover(ctx, next)
		if err != nil {
			return state, err
		}
		next = rolled
	}

	next.CurrentDate = next.CurrentDate.AddDate(0, 0, 1)
	return next, nil
}

// dueFixtures lists the indexes of today's unplayed fixtures that are
// resolved in the background. The user's own match is left for the
// live stepper.
func (s *Scheduler) dueFixtures(state State) []int {
	var due []int
	for i, f := range state.Fixtures {
		if f.Played || !SameDay(f.Date, state.CurrentDate) {
			continue
		}
		if state.UserTeamID != "" && f.Involves(state.UserTeamID) {
			continue
		}
		due = append(due, i)
	}
	return due
}

// resolveFixtures runs the background resolver for each due fixture on
// a worker pool. Every fixture fields the lineup available for its week
// and gets a random source forked from the season seed and its own id,
// so parallel execution stays replayable, and results are applied in
// fixture-id order.
func (s *Scheduler) resolveFixtures(ctx context.Context, state *State, due []int) error {
	base := random.NewSeeded(state.Seed)

	// Validate references and field lineups before any work is queued.
	type matchup struct {
		home team.Team
		away team.Team
	}
	lineups := make([]matchup, len(due))
	for slot, idx := range due {
		f := state.Fixtures[idx]
		home, okH := state.Team(f.HomeID)
		away, okA := state.Team(f.AwayID)
		if !okH || !okA {
			return errors.Newf("fixture %s references a missing team: home=%q away=%q", f.ID, f.HomeID, f.AwayID)
		}
		lineups[slot] = matchup{home: home.LineupFor(f.Week), away: away.LineupFor(f.Week)}
	}

	results := make([]engine.Result, len(due))

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for slot, idx := range due {
		slot := slot
		f := state.Fixtures[idx]
		home, away := lineups[slot].home, lineups[slot].away
		rng := base.Fork(f.ID)
		mctx := engine.Context{Derby: home.RivalOf(away.ID)}

		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[slot] = engine.ResolveBackground(home, away, mctx, rng)
		}); err != nil {
			wg.Done()
			return err
		}
	}
	wg.Wait()

	order := make([]int, len(due))
	copy(order, due)
	sort.Slice(order, func(i, j int) bool {
		return state.Fixtures[order[i]].ID < state.Fixtures[order[j]].ID
	})

	slotOf := make(map[int]int, len(due))
	for slot, idx := range due {
		slotOf[idx] = slot
	}

	finalWeek := maxLeagueWeek(state.Fixtures)

	for _, idx := range order {
		slot := slotOf[idx]
		res := results[slot]
		f := &state.Fixtures[idx]

		home, away := lineups[slot].home, lineups[slot].away

		f.Played = true
		f.HomeScore = res.HomeScore
		f.AwayScore = res.AwayScore
		f.Events = res.Events
		stats := res.Stats
		f.Stats = &stats

		// Knockout ties must produce a winner.
		if f.Competition != fixture.CompetitionLeague && f.HomeScore == f.AwayScore {
			hp, ap := engine.PenaltyShootout(home, away, base.Fork(f.ID+"/pens"))
			f.HomePens, f.AwayPens = &hp, &ap
		}

		postmatch.Ratings(home, away, f, base.Fork(f.ID+"/rate"))

		mctx := postmatch.Context{
			Derby:      home.RivalOf(away.ID),
			FinalRound: f.Week == finalWeek,
		}
		pair := postmatch.Apply([]team.Team{home, away}, *f, f.Week, mctx, base.Fork(f.ID+"/post"))
		state.Teams[state.teamIndex(home.ID)] = pair[0]
		state.Teams[state.teamIndex(away.ID)] = pair[1]

		s.logger.InfoContext(ctx, "resolved background match",
			"fixture", f.ID,
			"home", f.HomeID,
			"away", f.AwayID,
			"home_score", res.HomeScore,
			"away_score", res.AwayScore,
		)
	}

	return nil
}

// playedToday collects the teams that took the pitch on the current
// date; they rest tomorrow instead.
func playedToday(state State) map[string]bool {
	out := make(map[string]bool)
	for _, f := range state.Fixtures {
		if f.Played && SameDay(f.Date, state.CurrentDate) {
			out[f.HomeID] = true
			out[f.AwayID] = true
		}
	}
	return out
}

// tickRecovery restores condition for every player whose team did not
// play today. Meters stay clamped to [0, 100].
func (s *Scheduler) tickRecovery(state *State, played map[string]bool) {
	for ti := range state.Teams {
		if played[state.Teams[ti].ID] {
			continue
		}
		for pi := range state.Teams[ti].Roster {
			p := &state.Teams[ti].Roster[pi]
			p.Condition += dailyRecovery
			p.ClampMeters()
		}
	}
}

// synthesizeKnockouts creates playoff rounds once their feeder results
// exist: semifinals when the second tier finishes its league program,
// the final when both semifinals are decided.
func (s *Scheduler) synthesizeKnockouts(state *State) {
	lower, ok := state.leagueByTier(2)
	if !ok {
		return
	}

	ids := make(map[string]bool, len(lower.TeamIDs))
	for _, id := range lower.TeamIDs {
		ids[id] = true
	}
	if !leagueComplete(state.Fixtures, ids) {
		return
	}

	var semis []fixture.Fixture
	var final *fixture.Fixture
	for i := range state.Fixtures {
		f := state.Fixtures[i]
		if f.Competition != fixture.CompetitionPlayoff {
			continue
		}
		if strings.HasSuffix(f.ID, "po-final") {
			final = &state.Fixtures[i]
		} else {
			semis = append(semis, f)
		}
	}

	if len(semis) == 0 {
		standings, err := state.Standings(lower.ID)
		if err != nil {
			return
		}
		week := maxLeagueWeek(state.Fixtures) + 1
		created := SynthesizePlayoffSemis(standings, autoPromoted, state.Year, week, state.CurrentDate.AddDate(0, 0, 7))
		if len(created) > 0 {
			state.Fixtures = append(state.Fixtures, created...)
			s.logger.Info("playoff semifinals scheduled", "count", len(created))
		}
		return
	}

	if final == nil && len(semis) == 2 && semis[0].Played && semis[1].Played {
		created := SynthesizePlayoffFinal(semis, state.Year, maxLeagueWeek(state.Fixtures)+2, state.CurrentDate.AddDate(0, 0, 7))
		if created != nil {
			state.Fixtures = append(state.Fixtures, *created)
			s.logger.Info("playoff final scheduled", "home", created.HomeID, "away", created.AwayID)
		}
	}
}

func maxLeagueWeek(fixtures []fixture.Fixture) int {
	maxWeek := 0
	for _, f := range fixtures {
		if f.Competition == fixture.CompetitionLeague && f.Week > maxWeek {
			maxWeek = f.Week
		}
	}
	return maxWeek
}
