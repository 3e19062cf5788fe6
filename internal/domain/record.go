package domain

import "time"

// Record is a single candidate from a batch input.
type Record struct {
	// Line is the 1-based line number in the input.
	Line      int    `json:"line" yaml:"line"`
	Candidate string `json:"candidate" yaml:"candidate"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Valid     bool   `json:"valid" yaml:"valid"`
}

// Summary aggregates the outcome of a batch run.
type Summary struct {
	Kind     string        `json:"kind" yaml:"kind"`
	Total    int           `json:"total" yaml:"total"`
	Valid    int           `json:"valid" yaml:"valid"`
	Invalid  int           `json:"invalid" yaml:"invalid"`
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
}

// Report is the result of validating a batch.
type Report struct {
	Summary Summary  `json:"summary" yaml:"summary"`
	Records []Record `json:"records" yaml:"records"`
}

// Summarize counts records by verdict.
func Summarize(kind string, records []Record, took time.Duration) Summary {
	s := Summary{Kind: kind, Total: len(records), Duration: took}
	for _, r := range records {
		if r.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}
	}
	return s
}
