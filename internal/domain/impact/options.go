package impact

// Window bounds in minutes.
const (
	MinWindow     = 5
	MaxWindow     = 30
	DefaultWindow = 15
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWindow sets the windowed-delta length. Values outside [MinWindow, MaxWindow] are
// ignored.
func WithWindow(minutes int) Option {
	return func(e *Evaluator) {
		if ValidWindow(minutes) {
			e.window = minutes
		}
	}
}

// WithRivalSubstitutions also evaluates the opponent's substitutions, each from the
// opponent's side.
func WithRivalSubstitutions(enabled bool) Option {
	return func(e *Evaluator) {
		e.rival = enabled
	}
}

// ValidWindow reports whether minutes is an accepted window length.
func ValidWindow(minutes int) bool {
	return minutes >= MinWindow && minutes <= MaxWindow
}
