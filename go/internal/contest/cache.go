package contest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mcdev12/codearena/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrStaleLoad is returned when a load completes after a newer load for
// a different contest has been requested; its result is discarded.
var ErrStaleLoad = errors.New("contest load superseded by a newer request")

// ErrUnknownProblem is returned when selecting a problem that is not
// part of the cached contest.
var ErrUnknownProblem = errors.New("problem is not part of the current contest")

// ContestClient defines what the cache needs from the contest API
type ContestClient interface {
	GetContest(ctx context.Context, contestID string) (*models.Contest, error)
}

// Cache fetches and holds the active contest. Loads are tagged with a
// generation at request time; a result is applied only if no newer load
// has been requested by the time it completes. Cancellation never
// aborts the transport call, it only discards the result at apply time.
type Cache struct {
	client ContestClient

	mu         sync.RWMutex
	loadGen    uint64
	contest    *models.Contest
	selectedID string
}

// NewCache creates a contest Cache backed by the given API client
func NewCache(client ContestClient) *Cache {
	return &Cache{client: client}
}

// Load fetches the contest and replaces the cached one wholesale. If a
// newer Load is requested while this one is in flight, the completed
// result is dropped and ErrStaleLoad returned regardless of whether the
// fetch itself succeeded. On success the selected-problem pointer is
// moved to the first problem unless the current selection is still a
// member of the loaded contest.
func (c *Cache) Load(ctx context.Context, contestID string) (*models.Contest, error) {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.mu.Unlock()

	contest, err := c.client.GetContest(ctx, contestID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		log.Debug().
			Str("contest_id", contestID).
			Uint64("load_gen", gen).
			Msg("discarding stale contest load")
		return nil, ErrStaleLoad
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}

	c.contest = contest
	if _, ok := contest.ProblemByID(c.selectedID); !ok {
		if len(contest.Problems) > 0 {
			c.selectedID = contest.Problems[0].ID
		} else {
			c.selectedID = ""
		}
	}

	log.Info().
		Str("contest_id", contest.ID).
		Str("name", contest.Name).
		Int("problems", len(contest.Problems)).
		Msg("loaded contest")

	return contest, nil
}

// Current returns the most recently applied contest, if any
func (c *Cache) Current() (*models.Contest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.contest == nil {
		return nil, false
	}
	return c.contest, true
}

// SelectProblem moves the selected-problem pointer. The problem must be
// a member of the cached contest.
func (c *Cache) SelectProblem(problemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contest == nil {
		return ErrUnknownProblem
	}
	if _, ok := c.contest.ProblemByID(problemID); !ok {
		return ErrUnknownProblem
	}
	c.selectedID = problemID
	return nil
}

// SelectedProblem resolves the selected-problem pointer. It always
// resolves to a member of the current contest's problem list, falling
// back to the first problem, or reports false when no contest is loaded
// or the contest has no problems.
func (c *Cache) SelectedProblem() (models.Problem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.contest == nil || len(c.contest.Problems) == 0 {
		return models.Problem{}, false
	}
	if p, ok := c.contest.ProblemByID(c.selectedID); ok {
		return p, true
	}
	return c.contest.Problems[0], true
}
