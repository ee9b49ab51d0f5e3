// Package types contains small value types shared across the domain packages.
package types

import "strconv"

// Score is a (focus, opponent) scoreline. When viewed from one side it reads as
// (mine, theirs); Flip swaps the perspective.
type Score struct {
	Focus    int `json:"focus" yaml:"focus"`
	Opponent int `json:"opponent" yaml:"opponent"`
}

// Flip returns the score seen from the other side.
func (s Score) Flip() Score {
	return Score{Focus: s.Opponent, Opponent: s.Focus}
}

// String renders the score as "2-1".
func (s Score) String() string {
	return strconv.Itoa(s.Focus) + "-" + strconv.Itoa(s.Opponent)
}
