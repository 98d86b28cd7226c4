package finder

import "github.com/google/uuid"

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusError      Status = "ERROR"
)

type Status string

// Solution holds the representative words of five pairwise disjoint candidates,
// ordered by candidate index.
type Solution [5]string

type Stats struct {
	Lines      int `json:"lines"`
	Rejected   int `json:"rejected"`
	Anagrams   int `json:"anagrams"`
	Candidates int `json:"candidates"`
}

type Progress struct {
	RunID          uuid.UUID `json:"run_id"`
	Status         Status    `json:"status"`
	UnitsDone      int64     `json:"units_done"`
	TotalUnits     int64     `json:"total_units"`
	SolutionsFound int       `json:"solutions_found"`
	Error          string    `json:"error,omitempty"`
}

type Result struct {
	RunID  uuid.UUID `json:"run_id"`
	Status Status    `json:"status"`
	Stats  Stats     `json:"stats"`
	// Complete is false when the run stopped at the solution limit.
	Complete  bool       `json:"complete"`
	Solutions []Solution `json:"solutions"`
	Error     string     `json:"error,omitempty"`
}
