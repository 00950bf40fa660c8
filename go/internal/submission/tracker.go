package submission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mcdev12/codearena/go/clients/contest_api_client"
	"github.com/mcdev12/codearena/go/internal/models"
	"github.com/mcdev12/codearena/go/internal/poller"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often a tracked submission's status is
// fetched from the judge.
const DefaultPollInterval = 3 * time.Second

// Phase represents where the tracker is in a submission's lifecycle
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseTracking   Phase = "TRACKING"
)

// Snapshot is a point-in-time view of the tracked submission
type Snapshot struct {
	Phase        Phase
	SubmissionID string
	Status       models.SubmissionStatus
}

// JudgeClient defines what the tracker needs from the contest API
type JudgeClient interface {
	CreateSubmission(ctx context.Context, req contest_api_client.CreateSubmissionRequest) (string, error)
	GetSubmissionStatus(ctx context.Context, submissionID string) (models.SubmissionStatus, error)
}

// IdentityProvider supplies the joined participant, if any
type IdentityProvider interface {
	Current() (models.Participant, bool)
}

// ProblemProvider supplies the currently selected problem, if any
type ProblemProvider interface {
	SelectedProblem() (models.Problem, bool)
}

// Tracker drives one submission at a time from creation to a terminal
// verdict. Starting a new submission supersedes the previous one: its
// poll handle is stopped and any in-flight status result is discarded
// by a generation check at apply time. The server keeps judging
// superseded submissions; the client just detaches.
type Tracker struct {
	client   JudgeClient
	identity IdentityProvider
	problems ProblemProvider
	poll     *poller.Poller
	interval time.Duration

	mu           sync.RWMutex
	gen          uint64
	handle       *poller.Handle
	phase        Phase
	submissionID string
	status       models.SubmissionStatus
	closed       bool
}

// NewTracker creates a submission Tracker polling at the given interval
func NewTracker(client JudgeClient, identity IdentityProvider, problems ProblemProvider, poll *poller.Poller, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{
		client:   client,
		identity: identity,
		problems: problems,
		poll:     poll,
		interval: interval,
		phase:    PhaseIdle,
	}
}

// Submit creates a submission for the selected problem and starts
// polling its status. Any previously tracked submission is superseded
// once the create call succeeds; a failed create leaves prior tracking
// untouched on the polling side.
func (t *Tracker) Submit(ctx context.Context, code, language string) (string, error) {
	participant, ok := t.identity.Current()
	if !ok {
		return "", ErrNotJoined
	}
	problem, ok := t.problems.SelectedProblem()
	if !ok {
		return "", ErrNoProblemSelected
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return "", ErrTrackerClosed
	}
	t.phase = PhaseSubmitting
	t.submissionID = ""
	t.status = ""
	t.mu.Unlock()

	submissionID, err := t.client.CreateSubmission(ctx, contest_api_client.CreateSubmissionRequest{
		UserID:    participant.ID,
		ProblemID: problem.ID,
		Code:      code,
		Language:  language,
	})
	if err != nil {
		t.mu.Lock()
		if t.phase == PhaseSubmitting {
			t.phase = PhaseIdle
		}
		t.mu.Unlock()
		return "", fmt.Errorf("failed to submit solution: %w", err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return "", ErrTrackerClosed
	}
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
	t.gen++
	gen := t.gen
	t.submissionID = submissionID
	t.status = models.SubmissionStatusPending
	t.phase = PhaseTracking
	t.handle = t.poll.Start(ctx, t.interval, func(ctx context.Context) {
		t.pollStatus(ctx, gen, submissionID)
	})
	t.mu.Unlock()

	log.Info().
		Str("submission_id", submissionID).
		Str("problem_id", problem.ID).
		Str("user_id", participant.ID).
		Str("language", language).
		Msg("submission created, tracking status")

	return submissionID, nil
}

// pollStatus is the scheduled poll action for one submission. A failed
// fetch skips the tick; the next one retries. Results for a superseded
// generation are dropped.
func (t *Tracker) pollStatus(ctx context.Context, gen uint64, submissionID string) {
	status, err := t.client.GetSubmissionStatus(ctx, submissionID)
	if err != nil {
		log.Debug().
			Err(err).
			Str("submission_id", submissionID).
			Msg("status poll failed, skipping tick")
		return
	}

	t.mu.Lock()
	if t.closed || gen != t.gen {
		t.mu.Unlock()
		log.Debug().
			Str("submission_id", submissionID).
			Str("status", string(status)).
			Msg("discarding stale status result")
		return
	}
	t.status = status
	var handle *poller.Handle
	if status.IsTerminal() && t.handle != nil {
		handle = t.handle
		t.handle = nil
	}
	t.mu.Unlock()

	if handle != nil {
		handle.Stop()
		log.Info().
			Str("submission_id", submissionID).
			Str("status", string(status)).
			Msg("submission reached terminal verdict")
	}
}

// Snapshot returns the current lifecycle view
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Phase:        t.phase,
		SubmissionID: t.submissionID,
		Status:       t.status,
	}
}

// Close tears the tracker down unconditionally, stopping any active
// poll handle and invalidating in-flight results. Used when the owning
// view goes away.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.gen++
	handle := t.handle
	t.handle = nil
	t.mu.Unlock()

	if handle != nil {
		handle.Stop()
	}
}
