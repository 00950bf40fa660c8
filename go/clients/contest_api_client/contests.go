package contest_api_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/codearena/go/internal/models"
)

// GetContest fetches a contest with its ordered problem list.
func (c *ContestApiClient) GetContest(ctx context.Context, contestID string) (*models.Contest, error) {
	endpoint := fmt.Sprintf("%s/%s", ContestsEndpoint, contestID)
	body, err := c.Get(ctx, "get contest", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}

	var contest models.Contest
	if err := json.Unmarshal(body, &contest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return &contest, nil
}

// ListContests fetches summaries of all contests known to the server.
func (c *ContestApiClient) ListContests(ctx context.Context) ([]models.ContestSummary, error) {
	body, err := c.Get(ctx, "list contests", ContestsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}

	var contests []models.ContestSummary
	if err := json.Unmarshal(body, &contests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return contests, nil
}

// GetLeaderboard fetches the current leaderboard snapshot for a contest.
// The server is expected to return entries sorted descending by total
// score, but callers should not rely on that.
func (c *ContestApiClient) GetLeaderboard(ctx context.Context, contestID string) ([]models.LeaderboardEntry, error) {
	endpoint := fmt.Sprintf("%s/%s/leaderboard", ContestsEndpoint, contestID)
	body, err := c.Get(ctx, "get leaderboard", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return entries, nil
}
