package models

// Participant represents the joined user for the current session
type Participant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
