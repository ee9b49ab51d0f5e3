package scanner

// SubstitutionOrder says which player of a "(d) A por (d) B" pair leaves the pitch.
type SubstitutionOrder int

const (
	// OrderOutFirst reads the first pair as the player leaving. Recent reports use it.
	OrderOutFirst SubstitutionOrder = iota
	// OrderInFirst reads the first pair as the player entering.
	OrderInFirst
)

// String returns the config name of the order.
func (o SubstitutionOrder) String() string {
	switch o {
	case OrderInFirst:
		return "in_first"
	default:
		return "out_first"
	}
}

// ParseOrder maps a config name to an order. The empty string reports ok=false so
// callers can tell "not configured" from an explicit choice.
func ParseOrder(s string) (SubstitutionOrder, bool) {
	switch s {
	case "out_first", "out-first", "out":
		return OrderOutFirst, true
	case "in_first", "in-first", "in":
		return OrderInFirst, true
	default:
		return OrderOutFirst, false
	}
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSubstitutionOrder fixes the substitution pair order and clears the
// "order assumed" flag on results.
func WithSubstitutionOrder(o SubstitutionOrder) Option {
	return func(s *Scanner) {
		if o != OrderOutFirst && o != OrderInFirst {
			return
		}
		s.order = o
		s.orderAssumed = false
	}
}
