package contest_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/codearena/go/internal/models"
)

type joinRequest struct {
	Username string `json:"username"`
}

// Join registers the username with the contest server and returns the
// participant identity assigned to it.
func (c *ContestApiClient) Join(ctx context.Context, username string) (*models.Participant, error) {
	payload, err := json.Marshal(joinRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal join request: %w", err)
	}

	body, err := c.Post(ctx, "join", JoinEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to join: %w", err)
	}

	var participant models.Participant
	if err := json.Unmarshal(body, &participant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return &participant, nil
}
