package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/codearena/go/internal/models"
	"github.com/mcdev12/codearena/go/internal/poller"
	"github.com/stretchr/testify/require"
)

type fakeLeaderboardClient struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	fetch func(contestID string, call int) ([]models.LeaderboardEntry, error)
	calls map[string]int
}

func (f *fakeLeaderboardClient) GetLeaderboard(ctx context.Context, contestID string) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[contestID]++
	call := f.calls[contestID]
	gate := f.gates[contestID]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.fetch(contestID, call)
}

func TestSortEntriesIsStableAndIdempotent(t *testing.T) {
	sorted := []models.LeaderboardEntry{
		{UserID: "u1", Username: "alice", TotalScore: 300},
		{UserID: "u2", Username: "bob", TotalScore: 200},
		{UserID: "u3", Username: "carol", TotalScore: 200},
		{UserID: "u4", Username: "dave", TotalScore: 100},
	}

	// An already-sorted-descending sequence passes through unchanged,
	// ties keeping their input order.
	require.Equal(t, sorted, sortEntries(sorted))
	require.Equal(t, sorted, sortEntries(sortEntries(sorted)))
}

func TestSortEntriesDefendsAgainstUnsortedResponse(t *testing.T) {
	unsorted := []models.LeaderboardEntry{
		{UserID: "u4", Username: "dave", TotalScore: 100},
		{UserID: "u2", Username: "bob", TotalScore: 200},
		{UserID: "u1", Username: "alice", TotalScore: 300},
		{UserID: "u3", Username: "carol", TotalScore: 200},
	}

	got := sortEntries(unsorted)
	require.Equal(t, []models.LeaderboardEntry{
		{UserID: "u1", Username: "alice", TotalScore: 300},
		{UserID: "u2", Username: "bob", TotalScore: 200},
		{UserID: "u3", Username: "carol", TotalScore: 200},
		{UserID: "u4", Username: "dave", TotalScore: 100},
	}, got)

	// The input is not mutated.
	require.Equal(t, "u4", unsorted[0].UserID)
}

func TestWatchRefreshesOnInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := &fakeLeaderboardClient{
		fetch: func(contestID string, call int) ([]models.LeaderboardEntry, error) {
			return []models.LeaderboardEntry{
				{UserID: "u1", Username: "alice", TotalScore: call * 100},
			}, nil
		},
	}
	lb := NewSync(client, poller.New(clock))
	defer lb.Stop()

	lb.Watch(context.Background(), "c1", 20*time.Second)

	require.Eventually(t, func() bool {
		entries, _ := lb.Snapshot()
		return len(entries) == 1 && entries[0].TotalScore == 100
	}, time.Second, time.Millisecond, "first fetch fires immediately")

	clock.BlockUntil(1)
	clock.Advance(20 * time.Second)
	require.Eventually(t, func() bool {
		entries, _ := lb.Snapshot()
		return entries[0].TotalScore == 200
	}, time.Second, time.Millisecond)
}

func TestFailedRefreshKeepsPreviousEntries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	fetchErr := errors.New("leaderboard unavailable")
	client := &fakeLeaderboardClient{
		fetch: func(contestID string, call int) ([]models.LeaderboardEntry, error) {
			switch call {
			case 2:
				return nil, fetchErr
			default:
				return []models.LeaderboardEntry{
					{UserID: "u1", Username: "alice", TotalScore: 100},
				}, nil
			}
		},
	}
	lb := NewSync(client, poller.New(clock))
	defer lb.Stop()

	lb.Watch(context.Background(), "c1", 20*time.Second)

	require.Eventually(t, func() bool {
		entries, err := lb.Snapshot()
		return err == nil && len(entries) == 1
	}, time.Second, time.Millisecond)

	// A failed tick flags the attempt but the entries stay visible.
	clock.BlockUntil(1)
	clock.Advance(20 * time.Second)
	require.Eventually(t, func() bool {
		_, err := lb.Snapshot()
		return errors.Is(err, fetchErr)
	}, time.Second, time.Millisecond)

	entries, _ := lb.Snapshot()
	require.Len(t, entries, 1)

	// The flag is not sticky: the next successful tick clears it.
	clock.BlockUntil(1)
	clock.Advance(20 * time.Second)
	require.Eventually(t, func() bool {
		_, err := lb.Snapshot()
		return err == nil
	}, time.Second, time.Millisecond)
}

func TestSwitchingContestDiscardsLateResult(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gateC1 := make(chan struct{})
	client := &fakeLeaderboardClient{
		gates: map[string]chan struct{}{"c1": gateC1},
		fetch: func(contestID string, call int) ([]models.LeaderboardEntry, error) {
			if contestID == "c1" {
				return []models.LeaderboardEntry{{UserID: "u9", Username: "stale", TotalScore: 999}}, nil
			}
			return []models.LeaderboardEntry{{UserID: "u1", Username: "alice", TotalScore: 100}}, nil
		},
	}
	lb := NewSync(client, poller.New(clock))
	defer lb.Stop()

	// Watch c1; its fetch hangs in flight.
	lb.Watch(context.Background(), "c1", 20*time.Second)
	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.calls["c1"] == 1
	}, time.Second, time.Millisecond)

	// Switch to c2 before c1 resolves.
	lb.Watch(context.Background(), "c2", 20*time.Second)
	require.Eventually(t, func() bool {
		entries, _ := lb.Snapshot()
		return len(entries) == 1 && entries[0].UserID == "u1"
	}, time.Second, time.Millisecond)

	// Deliver the late c1 result: it must never overwrite the view.
	close(gateC1)
	time.Sleep(20 * time.Millisecond)

	entries, err := lb.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "u1", entries[0].UserID)
}

func TestStopEndsRefreshing(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := &fakeLeaderboardClient{
		fetch: func(contestID string, call int) ([]models.LeaderboardEntry, error) {
			return nil, nil
		},
	}
	lb := NewSync(client, poller.New(clock))

	lb.Watch(context.Background(), "c1", 20*time.Second)
	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.calls["c1"] == 1
	}, time.Second, time.Millisecond)
	clock.BlockUntil(1)

	lb.Stop()

	clock.Advance(5 * time.Minute)
	time.Sleep(20 * time.Millisecond)
	client.mu.Lock()
	defer client.mu.Unlock()
	require.Equal(t, 1, client.calls["c1"])
}
