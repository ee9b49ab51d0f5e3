package model

// ScoreCheckpoint is the score right after a goal.
type ScoreCheckpoint struct {
	Minute   int `json:"minute" yaml:"minute"`
	Focus    int `json:"focus" yaml:"focus"`
	Opponent int `json:"opponent" yaml:"opponent"`
}

// CreditedTo returns the side whose tally a goal increases. Team on a goal is the
// scorer's side, so an own goal counts for the other side. Goals assigned to neither
// side credit nobody.
func CreditedTo(g GoalEvent, focus, opponent TeamID) TeamID {
	var scorer, other TeamID
	switch {
	case g.Team == NoTeam:
		return NoTeam
	case g.Team == focus:
		scorer, other = focus, opponent
	case g.Team == opponent:
		scorer, other = opponent, focus
	default:
		return NoTeam
	}
	if g.OwnGoal {
		return other
	}
	return scorer
}
