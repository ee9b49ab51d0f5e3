// Package model contains domain models passed between layers.
package model

import (
	"sort"

	"github.com/okian/cambios/internal/domain/minute"
)

// TeamID is a canonical lowercase team token, e.g. "pumas".
type TeamID string

// NoTeam marks an event not yet assigned to either side.
const NoTeam TeamID = ""

// Player identifies a player by jersey number (dorsal) and printed name.
type Player struct {
	Dorsal string `json:"dorsal" yaml:"dorsal"`
	Name   string `json:"name" yaml:"name"`
}

// GoalEvent is a goal found in the report. Team and OwnGoal are filled in by the
// classification step, never by the scanner. Team is the scorer's side.
type GoalEvent struct {
	Dorsal     string       `json:"dorsal" yaml:"dorsal"`
	PlayerName string       `json:"player_name" yaml:"player_name"`
	MinuteText string       `json:"minute_text" yaml:"minute_text"`
	Minute     minute.Value `json:"minute" yaml:"minute"`
	Team       TeamID       `json:"team,omitempty" yaml:"team,omitempty"`
	OwnGoal    bool         `json:"own_goal" yaml:"own_goal"`
}

// CardKind is the colour of a card.
type CardKind string

// Card kinds.
const (
	CardYellow    CardKind = "yellow"
	CardRed       CardKind = "red"
	CardRedDouble CardKind = "red_double"
)

// CardEvent is a booking found in the report.
type CardEvent struct {
	Kind       CardKind     `json:"kind" yaml:"kind"`
	Dorsal     string       `json:"dorsal" yaml:"dorsal"`
	PlayerName string       `json:"player_name" yaml:"player_name"`
	MinuteText string       `json:"minute_text" yaml:"minute_text"`
	Minute     minute.Value `json:"minute" yaml:"minute"`
}

// SubstitutionEvent is a player change. Team is filled in by classification.
type SubstitutionEvent struct {
	Out        Player       `json:"out" yaml:"out"`
	In         Player       `json:"in" yaml:"in"`
	MinuteText string       `json:"minute_text" yaml:"minute_text"`
	Minute     minute.Value `json:"minute" yaml:"minute"`
	Team       TeamID       `json:"team,omitempty" yaml:"team,omitempty"`
}

// EventKind tags timeline entries.
type EventKind string

// Event kinds.
const (
	KindGoal         EventKind = "goal"
	KindCard         EventKind = "card"
	KindSubstitution EventKind = "substitution"
)

// TimelineEntry is one event in discovery order. Order is the scan order and also the
// tie-break when entries are presented by minute.
type TimelineEntry struct {
	Order      int          `json:"order" yaml:"order"`
	Minute     minute.Value `json:"minute" yaml:"minute"`
	MinuteText string       `json:"minute_text" yaml:"minute_text"`
	Kind       EventKind    `json:"kind" yaml:"kind"`
	Summary    string       `json:"summary" yaml:"summary"`
}

// SortTimeline returns a copy of entries ordered by (Minute, Order). The input, which
// is in document order, is left untouched. Invalid minutes (-1) sort first.
func SortTimeline(entries []TimelineEntry) []TimelineEntry {
	out := make([]TimelineEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		return out[i].Order < out[j].Order
	})
	return out
}
