package models

// Contest represents a contest with its ordered problem list
type Contest struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Problems []Problem `json:"problems"`
}

// ContestSummary is the list-view shape returned by the contests index
type ContestSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Problem represents a single task inside a contest
type Problem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProblemByID returns the problem with the given id, if present
func (c *Contest) ProblemByID(id string) (Problem, bool) {
	for _, p := range c.Problems {
		if p.ID == id {
			return p, true
		}
	}
	return Problem{}, false
}
