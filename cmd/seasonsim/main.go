package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/footsim/manager/internal/config"
	"github.com/footsim/manager/internal/observability"
	"github.com/footsim/manager/internal/platform/logging"
	"github.com/footsim/manager/internal/platform/random"
	"github.com/footsim/manager/internal/season"
	"github.com/footsim/manager/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *logging.Logger
	if cfg.LogJSON {
		logger = logging.NewJSON(cfg.LogLevel)
	} else {
		logger = logging.NewConsole(cfg.LogLevel)
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("start profiler", "error", err)
		os.Exit(1)
	}
	defer func() { _ = stopProfiler() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return err
		}
		seed = generated
	}

	state, err := loadOrSeedWorld(cfg, seed, logger)
	if err != nil {
		return err
	}

	logger.Info("world ready",
		"year", state.Year,
		"seed", state.Seed,
		"teams", len(state.Teams),
		"fixtures", len(state.Fixtures),
	)

	scheduler := season.NewScheduler(logger, cfg.Workers)

	targetYear := state.Year + cfg.Seasons
	for state.Year < targetYear {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "date", state.CurrentDate.Format("2006-01-02"))
			return saveSnapshot(cfg, state, logger)
		default:
		}

		state, err = scheduler.AdvanceDay(ctx, state)
		if err != nil {
			return err
		}
	}

	for _, l := range state.Leagues {
		logFinalTable(logger, state, l)
	}
	logger.Info("simulation complete",
		"seasons", cfg.Seasons,
		"champion", state.LastChampionID,
		"playoff_winner", state.LastCupWinnerID,
	)

	return saveSnapshot(cfg, state, logger)
}

func loadOrSeedWorld(cfg config.Config, seed int64, logger *logging.Logger) (season.State, error) {
	if cfg.SnapshotPath != "" {
		raw, err := os.ReadFile(cfg.SnapshotPath)
		if err == nil {
			state, err := snapshot.Decode(raw)
			if err != nil {
				return season.State{}, err
			}
			logger.Info("snapshot loaded", "path", cfg.SnapshotPath, "year", state.Year)
			state.UserTeamID = cfg.UserTeamID
			return state, nil
		}
		if !os.IsNotExist(err) {
			return season.State{}, err
		}
	}

	state := season.NewWorld(2025, cfg.TeamsPerLeague, cfg.SquadSize, seed)
	state.UserTeamID = cfg.UserTeamID
	if err := state.Validate(); err != nil {
		return season.State{}, err
	}
	return state, nil
}

func saveSnapshot(cfg config.Config, state season.State, logger *logging.Logger) error {
	if cfg.SnapshotPath == "" {
		return nil
	}
	raw, err := snapshot.Encode(state)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.SnapshotPath, raw, 0o644); err != nil {
		return err
	}
	logger.Info("snapshot saved", "path", cfg.SnapshotPath, "bytes", len(raw))
	return nil
}

func logFinalTable(logger *logging.Logger, state season.State, l season.League) {
	standings, err := state.Standings(l.ID)
	if err != nil {
		logger.Warn("standings unavailable", "league", l.ID, "error", err)
		return
	}
	top := standings
	if len(top) > 4 {
		top = top[:4]
	}
	for _, s := range top {
		name := s.TeamID
		if t, ok := state.Team(s.TeamID); ok {
			name = t.Name
		}
		logger.Info("final table",
			"league", l.Name,
			"pos", s.Position,
			"team", name,
			"points", s.Points,
			"goal_diff", s.GoalDiff(),
		)
	}
}
