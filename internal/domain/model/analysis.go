package model

import "time"

// ScanResult is everything the scanner found on one page.
type ScanResult struct {
	Goals         []GoalEvent         `json:"goals" yaml:"goals"`
	Cards         []CardEvent         `json:"cards" yaml:"cards"`
	Substitutions []SubstitutionEvent `json:"substitutions" yaml:"substitutions"`
	// Timeline is in document order; use SortTimeline for minute order.
	Timeline []TimelineEntry `json:"timeline" yaml:"timeline"`
	// SubOrderAssumed is set when no substitution order was configured and the
	// scanner fell back to "first player leaves".
	SubOrderAssumed bool `json:"sub_order_assumed" yaml:"sub_order_assumed"`
}

// InvalidMinutes counts events whose minute could not be parsed.
func (r ScanResult) InvalidMinutes() int {
	n := 0
	for _, e := range r.Timeline {
		if !e.Minute.Valid() {
			n++
		}
	}
	return n
}

// Document is a report to analyze: one text per page.
type Document struct {
	ID     string
	Source string
	Pages  []string
	// Page is the 1-based page to scan; zero picks the default page.
	Page int
}

// Analysis is one analysis session. It lives only as long as the session store keeps it.
type Analysis struct {
	ID                string        `json:"id" yaml:"id"`
	Source            string        `json:"source" yaml:"source"`
	CreatedAt         time.Time     `json:"created_at" yaml:"created_at"`
	PageCount         int           `json:"page_count" yaml:"page_count"`
	Page              int           `json:"page" yaml:"page"`
	PageText          string        `json:"-" yaml:"-"`
	Scan              ScanResult    `json:"scan" yaml:"scan"`
	DetectedTeams     []TeamID      `json:"detected_teams" yaml:"detected_teams"`
	DetectionStrategy string        `json:"detection_strategy" yaml:"detection_strategy"`
	FocusTeam         TeamID        `json:"focus_team" yaml:"focus_team"`
	OpponentTeam      TeamID        `json:"opponent_team" yaml:"opponent_team"`
	Report            *ImpactReport `json:"report,omitempty" yaml:"report,omitempty"`
}
