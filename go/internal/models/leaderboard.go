package models

// LeaderboardEntry is one ranked row of a contest leaderboard snapshot
type LeaderboardEntry struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	TotalScore int    `json:"totalScore"`
}
