package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/codearena/go/clients/contest_api_client"
	"github.com/mcdev12/codearena/go/internal/contest"
	"github.com/mcdev12/codearena/go/internal/identity"
	"github.com/mcdev12/codearena/go/internal/leaderboard"
	"github.com/mcdev12/codearena/go/internal/poller"
	"github.com/mcdev12/codearena/go/internal/submission"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if getEnv("CODEARENA_DEBUG", "") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Get configuration
	cfg, err := loadConfig(getEnv("CODEARENA_CONFIG", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.applyEnvOverrides()

	username := getEnv("CODEARENA_USERNAME", "")
	contestID := getEnv("CODEARENA_CONTEST_ID", "")
	submitFile := getEnv("CODEARENA_SUBMIT_FILE", "")
	if username == "" {
		log.Fatal().Msg("CODEARENA_USERNAME is required")
	}

	log.Info().
		Str("base_url", cfg.BaseURL).
		Str("username", username).
		Str("contest_id", contestID).
		Msg("starting contest client")

	client := contest_api_client.NewContestApiClient(cfg.BaseURL)

	if contestID == "" {
		contests, err := client.ListContests(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to list contests")
		}
		for _, c := range contests {
			log.Info().Str("contest_id", c.ID).Str("name", c.Name).Msg("available contest")
		}
		log.Fatal().Msg("set CODEARENA_CONTEST_ID to one of the contests above")
	}
	clock := clockwork.NewRealClock()
	poll := poller.New(clock)
	store := identity.NewStore(client)
	cache := contest.NewCache(client)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	participant, err := store.Join(ctx, username)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to join")
	}

	loaded, err := cache.Load(ctx, contestID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load contest")
	}
	for _, p := range loaded.Problems {
		log.Info().Str("problem_id", p.ID).Str("title", p.Title).Msg("problem")
	}

	lb := leaderboard.NewSync(client, poll)
	lb.Watch(ctx, contestID, time.Duration(cfg.LeaderboardPollIntervalSec)*time.Second)
	defer lb.Stop()

	tracker := submission.NewTracker(client, store, cache, poll,
		time.Duration(cfg.SubmissionPollIntervalSec)*time.Second)
	defer tracker.Close()

	if submitFile != "" {
		code, err := os.ReadFile(submitFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", submitFile).Msg("failed to read solution file")
		}
		submissionID, err := tracker.Submit(ctx, string(code), cfg.Language)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to submit solution")
		}
		go watchVerdict(ctx, clock, tracker, submissionID)
	}

	history, err := client.ListUserSubmissions(ctx, participant.ID)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch submission history")
	} else {
		log.Info().Int("count", len(history)).Msg("previous submissions")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case update := <-lb.Updates():
			if update.Err != nil {
				log.Warn().Err(update.Err).Msg("leaderboard refresh failed")
				continue
			}
			for rank, entry := range update.Entries {
				log.Info().
					Int("rank", rank+1).
					Str("username", entry.Username).
					Int("total_score", entry.TotalScore).
					Msg("leaderboard")
			}
		}
	}
}

// watchVerdict logs status changes until the tracked submission reaches
// a terminal verdict.
func watchVerdict(ctx context.Context, clock clockwork.Clock, tracker *submission.Tracker, submissionID string) {
	var last submission.Snapshot
	for {
		select {
		case <-ctx.Done():
			return
		case <-clock.After(time.Second):
		}

		snap := tracker.Snapshot()
		if snap.SubmissionID != submissionID {
			// superseded by a newer submission
			return
		}
		if snap != last {
			log.Info().
				Str("submission_id", snap.SubmissionID).
				Str("status", string(snap.Status)).
				Msg("submission status")
			last = snap
		}
		if snap.Status.IsTerminal() {
			return
		}
	}
}
