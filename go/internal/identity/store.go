package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mcdev12/codearena/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrUsernameEmpty is returned when Join is called with a blank username
var ErrUsernameEmpty = errors.New("username is required")

// JoinClient defines what the store needs from the contest API
type JoinClient interface {
	Join(ctx context.Context, username string) (*models.Participant, error)
}

// Store holds the participant identity for the session. The identity is
// written once by Join and survives view transitions; there is no
// expiry or re-validation against the server.
type Store struct {
	client JoinClient

	mu          sync.RWMutex
	participant *models.Participant
}

// NewStore creates an identity Store backed by the given API client
func NewStore(client JoinClient) *Store {
	return &Store{client: client}
}

// Join registers the username with the server and persists the returned
// identity. Later calls replace the identity only on success; a failed
// join leaves any existing identity untouched.
func (s *Store) Join(ctx context.Context, username string) (*models.Participant, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	participant, err := s.client.Join(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("join failed: %w", err)
	}

	s.mu.Lock()
	s.participant = participant
	s.mu.Unlock()

	log.Info().
		Str("user_id", participant.ID).
		Str("username", participant.Username).
		Msg("joined contest platform")

	return participant, nil
}

// Current returns the joined participant, if any
func (s *Store) Current() (models.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.participant == nil {
		return models.Participant{}, false
	}
	return *s.participant, true
}
