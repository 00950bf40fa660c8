package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcdev12/codearena/go/internal/models"
	"github.com/mcdev12/codearena/go/internal/poller"
	"github.com/rs/zerolog/log"
)

// DefaultRefreshInterval is how often the leaderboard is refetched.
const DefaultRefreshInterval = 20 * time.Second

// LeaderboardClient defines what the sync needs from the contest API
type LeaderboardClient interface {
	GetLeaderboard(ctx context.Context, contestID string) ([]models.LeaderboardEntry, error)
}

// Update is one refresh outcome. On a failed attempt Err is set and
// Entries carries the previous visible snapshot.
type Update struct {
	ContestID string
	Entries   []models.LeaderboardEntry
	Err       error
}

// Sync keeps a ranked leaderboard view eventually consistent for one
// contest at a time. Each successful fetch replaces the visible entries
// wholesale; a failed fetch keeps the previous entries and flags the
// attempt. Switching contests stops the old poll handle and bumps the
// generation so a late result for the old contest can never overwrite
// the view.
type Sync struct {
	client LeaderboardClient
	poll   *poller.Poller

	mu        sync.RWMutex
	gen       uint64
	handle    *poller.Handle
	contestID string
	entries   []models.LeaderboardEntry
	lastErr   error

	updates chan Update
}

// NewSync creates a leaderboard Sync backed by the given API client
func NewSync(client LeaderboardClient, poll *poller.Poller) *Sync {
	return &Sync{
		client:  client,
		poll:    poll,
		updates: make(chan Update, 8),
	}
}

// Watch starts refreshing the leaderboard for contestID: one fetch
// immediately, then every interval. Any previous watch is superseded.
func (s *Sync) Watch(ctx context.Context, contestID string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	s.mu.Lock()
	if s.handle != nil {
		s.handle.Stop()
	}
	s.gen++
	gen := s.gen
	s.contestID = contestID
	s.entries = nil
	s.lastErr = nil
	s.handle = s.poll.Start(ctx, interval, func(ctx context.Context) {
		s.refresh(ctx, gen, contestID)
	})
	s.mu.Unlock()

	log.Info().
		Str("contest_id", contestID).
		Dur("interval", interval).
		Msg("watching leaderboard")
}

// refresh is the scheduled poll action for one contest watch
func (s *Sync) refresh(ctx context.Context, gen uint64, contestID string) {
	entries, err := s.client.GetLeaderboard(ctx, contestID)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		log.Debug().
			Str("contest_id", contestID).
			Msg("discarding stale leaderboard result")
		return
	}
	if err != nil {
		// Previous entries stay visible; the flag is per attempt and
		// cleared by the next successful tick.
		s.lastErr = err
		log.Debug().
			Err(err).
			Str("contest_id", contestID).
			Msg("leaderboard refresh failed, keeping previous entries")
	} else {
		s.lastErr = nil
		s.entries = sortEntries(entries)
	}
	update := Update{
		ContestID: contestID,
		Entries:   copyEntries(s.entries),
		Err:       err,
	}
	s.mu.Unlock()

	select {
	case s.updates <- update:
	default:
	}
}

// sortEntries defensively re-sorts descending by total score. The sort
// is stable so ties keep the server's order. An already-sorted response
// passes through unchanged.
func sortEntries(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	sorted := copyEntries(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return sorted
}

func copyEntries(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	if entries == nil {
		return nil
	}
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)
	return out
}

// Snapshot returns the visible entries and the error of the most recent
// attempt, if it failed.
func (s *Sync) Snapshot() ([]models.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEntries(s.entries), s.lastErr
}

// Updates returns a best-effort notification channel. Slow consumers
// drop updates rather than block the poll action; Snapshot always has
// the latest applied state.
func (s *Sync) Updates() <-chan Update {
	return s.updates
}

// Stop tears down the active watch, if any. Idempotent.
func (s *Sync) Stop() {
	s.mu.Lock()
	s.gen++
	handle := s.handle
	s.handle = nil
	s.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
}
