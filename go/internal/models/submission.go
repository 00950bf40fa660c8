package models

// SubmissionStatus represents the judge-side lifecycle of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending     SubmissionStatus = "Pending"
	SubmissionStatusRunning     SubmissionStatus = "Running"
	SubmissionStatusAccepted    SubmissionStatus = "Accepted"
	SubmissionStatusWrongAnswer SubmissionStatus = "Wrong Answer"
	SubmissionStatusError       SubmissionStatus = "Error"
)

// IsTerminal reports whether the status ends polling for a submission
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case SubmissionStatusAccepted, SubmissionStatusWrongAnswer, SubmissionStatusError:
		return true
	}
	return false
}

// Submission represents one attempt at solving a problem
type Submission struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	ProblemID string           `json:"problemId"`
	Code      string           `json:"code"`
	Language  string           `json:"language"`
	Status    SubmissionStatus `json:"status"`
}
