// Package scanner extracts goals, cards and substitutions from referee report text.
//
// Matching is positional: at each step the recognizer whose next match starts first
// wins, with ties broken Goal > Card > Substitution. Text that happens to fit more than
// one grammar (a substitution line that also looks like a goal line) is resolved by
// that rule alone and can be misclassified; callers review the result. A name span may
// be empty ("Gol de (1) Min: 3"); the event is kept with only its dorsal.
package scanner

import (
	"fmt"
	"strings"

	"github.com/okian/cambios/internal/domain/model"
)

// Result is what one page yields.
type Result = model.ScanResult

// Scanner is stateless between calls and safe for concurrent use.
type Scanner struct {
	order        SubstitutionOrder
	orderAssumed bool
}

// New returns a Scanner. Without WithSubstitutionOrder the scanner reads the first pair
// as leaving and marks every result with SubOrderAssumed.
func New(opts ...Option) *Scanner {
	s := &Scanner{order: OrderOutFirst, orderAssumed: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Order returns the configured substitution order and whether it was assumed.
func (s *Scanner) Order() (SubstitutionOrder, bool) {
	return s.order, s.orderAssumed
}

// Normalize collapses every whitespace run, newlines included, to one space and trims
// both ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Scan extracts events from one page. Slices are never nil.
func (s *Scanner) Scan(pageText string) Result {
	text := Normalize(pageText)
	res := Result{
		Goals:           []model.GoalEvent{},
		Cards:           []model.CardEvent{},
		Substitutions:   []model.SubstitutionEvent{},
		Timeline:        []model.TimelineEntry{},
		SubOrderAssumed: s.orderAssumed,
	}

	order := 0
	for i := 0; i < len(text); {
		m, ok := s.next(text, i)
		if !ok {
			break
		}
		entry := model.TimelineEntry{Order: order}
		switch m.kind {
		case kindGoal:
			res.Goals = append(res.Goals, m.goal)
			entry.Minute, entry.MinuteText = m.goal.Minute, m.goal.MinuteText
			entry.Kind = model.KindGoal
			entry.Summary = fmt.Sprintf("Goal %s (#%s)", m.goal.PlayerName, m.goal.Dorsal)
		case kindCard:
			res.Cards = append(res.Cards, m.card)
			entry.Minute, entry.MinuteText = m.card.Minute, m.card.MinuteText
			entry.Kind = model.KindCard
			entry.Summary = fmt.Sprintf("%s card %s (#%s)", cardTitle(m.card.Kind), m.card.PlayerName, m.card.Dorsal)
		case kindSub:
			res.Substitutions = append(res.Substitutions, m.sub)
			entry.Minute, entry.MinuteText = m.sub.Minute, m.sub.MinuteText
			entry.Kind = model.KindSubstitution
			entry.Summary = fmt.Sprintf("Out %s (#%s), in %s (#%s)",
				m.sub.Out.Name, m.sub.Out.Dorsal, m.sub.In.Name, m.sub.In.Dorsal)
		}
		res.Timeline = append(res.Timeline, entry)
		order++
		i = m.end
	}
	return res
}

// next returns the earliest match at or after i across all recognizers.
func (s *Scanner) next(text string, i int) (match, bool) {
	var (
		best  match
		found bool
	)
	consider := func(m match, ok bool) {
		if !ok {
			return
		}
		if !found || m.start < best.start || (m.start == best.start && m.kind < best.kind) {
			best, found = m, true
		}
	}
	consider(findGoal(text, i))
	consider(findCard(text, i))
	consider(s.findSub(text, i))
	return best, found
}

func cardTitle(k model.CardKind) string {
	switch k {
	case model.CardYellow:
		return "Yellow"
	case model.CardRedDouble:
		return "Second yellow red"
	default:
		return "Red"
	}
}
