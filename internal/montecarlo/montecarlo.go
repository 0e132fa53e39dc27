// Package montecarlo batch-runs the background resolver to expose the
// aggregate distributions the single-match API hides. The statistical
// test suite and the demo runner both use it.
package montecarlo

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/footsim/manager/internal/domain/team"
	"github.com/footsim/manager/internal/platform/random"
	"github.com/footsim/manager/internal/sim/engine"
)

// Tally aggregates outcomes over a batch of simulated matches.
type Tally struct {
	Matches   int
	HomeWins  int
	Draws     int
	AwayWins  int
	HomeGoals int
	AwayGoals int
}

func (t Tally) HomeWinRate() float64 { return rate(t.HomeWins, t.Matches) }
func (t Tally) DrawRate() float64    { return rate(t.Draws, t.Matches) }
func (t Tally) AwayWinRate() float64 { return rate(t.AwayWins, t.Matches) }

func (t Tally) String() string {
	return fmt.Sprintf("n=%d W/D/L=%.2f/%.2f/%.2f goals=%d:%d",
		t.Matches, t.HomeWinRate(), t.DrawRate(), t.AwayWinRate(), t.HomeGoals, t.AwayGoals)
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// Run resolves n background matches between the two teams. Each match
// gets its own source forked from the seed, so results are independent
// of scheduling order and reproducible for a fixed seed.
func Run(n int, home, away team.Team, ctx engine.Context, seed int64) Tally {
	base := random.NewSeeded(seed)

	var homeWins, draws, awayWins, homeGoals, awayGoals atomic.Int64

	p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		rng := base.Fork(fmt.Sprintf("match-%d", i))
		p.Go(func() {
			res := engine.ResolveBackground(home, away, ctx, rng)
			homeGoals.Add(int64(res.HomeScore))
			awayGoals.Add(int64(res.AwayScore))
			switch {
			case res.HomeScore > res.AwayScore:
				homeWins.Add(1)
			case res.AwayScore > res.HomeScore:
				awayWins.Add(1)
			default:
				draws.Add(1)
			}
		})
	}
	p.Wait()

	return Tally{
		Matches:   n,
		HomeWins:  int(homeWins.Load()),
		Draws:     int(draws.Load()),
		AwayWins:  int(awayWins.Load()),
		HomeGoals: int(homeGoals.Load()),
		AwayGoals: int(awayGoals.Load()),
	}
}
