package contest_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/codearena/go/internal/models"
)

// CreateSubmissionRequest represents the data needed to submit a solution
type CreateSubmissionRequest struct {
	UserID    string `json:"userId"`
	ProblemID string `json:"problemId"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

type createSubmissionResponse struct {
	SubmissionID string `json:"submissionId"`
}

type submissionStatusResponse struct {
	Status models.SubmissionStatus `json:"status"`
}

// CreateSubmission submits a solution for judging and returns the id
// assigned by the server.
func (c *ContestApiClient) CreateSubmission(ctx context.Context, req CreateSubmissionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission request: %w", err)
	}

	body, err := c.Post(ctx, "create submission", SubmissionsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create submission: %w", err)
	}

	var response createSubmissionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return response.SubmissionID, nil
}

// GetSubmissionStatus fetches the current judge status of a submission.
func (c *ContestApiClient) GetSubmissionStatus(ctx context.Context, submissionID string) (models.SubmissionStatus, error) {
	endpoint := fmt.Sprintf("%s/%s", SubmissionsEndpoint, submissionID)
	body, err := c.Get(ctx, "get submission status", endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to get submission status: %w", err)
	}

	var response submissionStatusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return response.Status, nil
}

// ListUserSubmissions fetches the submission history for a user.
func (c *ContestApiClient) ListUserSubmissions(ctx context.Context, userID string) ([]models.Submission, error) {
	endpoint := fmt.Sprintf("%s/user/%s", SubmissionsEndpoint, userID)
	body, err := c.Get(ctx, "list user submissions", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list user submissions: %w", err)
	}

	var submissions []models.Submission
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return submissions, nil
}
