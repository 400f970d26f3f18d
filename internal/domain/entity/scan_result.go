package entity

import "time"

// ScanResult summarizes one pipeline run.
type ScanResult struct {
	RunID         string            `json:"run_id"`
	StartedAt     time.Time         `json:"started_at"`
	FinishedAt    time.Time         `json:"finished_at"`
	Queries       []string          `json:"queries"`
	Fetched       int               `json:"fetched"`
	Passed        int               `json:"passed"`
	FailedQueries []QueryFailure    `json:"failed_queries,omitempty"`
	Ranked        []ScoredCandidate `json:"-"`
	Top           []ScoredCandidate `json:"top"`
}

// QueryFailure records a skipped query term.
type QueryFailure struct {
	Query   string `json:"query"`
	Message string `json:"message"`
}

// Empty reports whether the run produced no opportunities.
func (r *ScanResult) Empty() bool {
	return r == nil || len(r.Top) == 0
}
