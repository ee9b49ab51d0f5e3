package scanner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/cambios/internal/domain/minute"
	"github.com/okian/cambios/internal/domain/model"
)

const minLiteral = "Min:"

var (
	goalPrefix = regexp.MustCompile(`Gol de\s*\(\s*(\d+)\s*\)`)
	cardPrefix = regexp.MustCompile(`(Amarilla|Roja Directa|Roja(?:\s*\(([^)]*)\))?)\s+de\s*\(\s*(\d+)\s*\)`)
	subPrefix  = regexp.MustCompile(`\(\s*(\d+)\s*\)`)
	// porInfix separates the two halves of a substitution; it is searched inside the
	// first name span only.
	porInfix = regexp.MustCompile(`\s+por\s*\(\s*(\d+)\s*\)`)
	// minuteToken accepts any stoppage suffix so a malformed one still yields an event.
	minuteToken = regexp.MustCompile(`^\s*(\d+(?:\+[0-9A-Za-z]*)?)`)
)

// kind doubles as the tie-break priority: lower wins.
type kind int

const (
	kindGoal kind = iota
	kindCard
	kindSub
)

type match struct {
	kind       kind
	start, end int
	goal       model.GoalEvent
	card       model.CardEvent
	sub        model.SubstitutionEvent
}

// nameAndMinute reads "<name> Min: <minute>" at text[from:]. The name is the shortest
// span up to the next "Min:" and so never contains it. An empty name is kept: the
// dorsal still identifies the player.
func nameAndMinute(text string, from int) (name, minuteText string, end int, ok bool) {
	idx := strings.Index(text[from:], minLiteral)
	if idx < 0 {
		return "", "", 0, false
	}
	name = strings.TrimSpace(text[from : from+idx])
	after := from + idx + len(minLiteral)
	loc := minuteToken.FindStringSubmatchIndex(text[after:])
	if loc == nil {
		return "", "", 0, false
	}
	return name, text[after+loc[2] : after+loc[3]], after + loc[1], true
}

// findFrom returns the leftmost complete match at or after from. Candidate starts come
// from prefix; a candidate whose tail does not complete is skipped.
func findFrom(text string, from int, prefix *regexp.Regexp, complete func(loc []int, base int) (match, bool)) (match, bool) {
	pos := from
	for pos <= len(text) {
		loc := prefix.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			return match{}, false
		}
		if m, ok := complete(loc, pos); ok {
			return m, true
		}
		start := pos + loc[0]
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			size = 1
		}
		pos = start + size
	}
	return match{}, false
}

func sub(text string, loc []int, base, group int) string {
	if loc[2*group] < 0 {
		return ""
	}
	return text[base+loc[2*group] : base+loc[2*group+1]]
}

func findGoal(text string, from int) (match, bool) {
	return findFrom(text, from, goalPrefix, func(loc []int, base int) (match, bool) {
		name, mt, end, ok := nameAndMinute(text, base+loc[1])
		if !ok {
			return match{}, false
		}
		return match{
			kind:  kindGoal,
			start: base + loc[0],
			end:   end,
			goal: model.GoalEvent{
				Dorsal:     sub(text, loc, base, 1),
				PlayerName: name,
				MinuteText: mt,
				Minute:     minute.Parse(mt),
			},
		}, true
	})
}

func findCard(text string, from int) (match, bool) {
	return findFrom(text, from, cardPrefix, func(loc []int, base int) (match, bool) {
		name, mt, end, ok := nameAndMinute(text, base+loc[1])
		if !ok {
			return match{}, false
		}
		return match{
			kind:  kindCard,
			start: base + loc[0],
			end:   end,
			card: model.CardEvent{
				Kind:       cardKind(sub(text, loc, base, 1), sub(text, loc, base, 2)),
				Dorsal:     sub(text, loc, base, 3),
				PlayerName: name,
				MinuteText: mt,
				Minute:     minute.Parse(mt),
			},
		}, true
	})
}

func (s *Scanner) findSub(text string, from int) (match, bool) {
	return findFrom(text, from, subPrefix, func(loc []int, base int) (match, bool) {
		nameStart := base + loc[1]
		limit := strings.Index(text[nameStart:], minLiteral)
		if limit < 0 {
			return match{}, false
		}
		span := text[nameStart : nameStart+limit]
		// The first "por (d)" gives the shortest first name; later ones are tried only
		// when the tail does not complete.
		for _, por := range porInfix.FindAllStringSubmatchIndex(span, -1) {
			first := strings.TrimSpace(span[:por[0]])
			second, mt, end, ok := nameAndMinute(text, nameStart+por[1])
			if !ok {
				continue
			}
			a := model.Player{Dorsal: sub(text, loc, base, 1), Name: first}
			b := model.Player{Dorsal: span[por[2]:por[3]], Name: second}
			ev := model.SubstitutionEvent{Out: a, In: b, MinuteText: mt, Minute: minute.Parse(mt)}
			if s.order == OrderInFirst {
				ev.Out, ev.In = b, a
			}
			return match{kind: kindSub, start: base + loc[0], end: end, sub: ev}, true
		}
		return match{}, false
	})
}

func cardKind(token, qualifier string) model.CardKind {
	switch {
	case token == "Amarilla":
		return model.CardYellow
	case token == "Roja Directa":
		return model.CardRed
	}
	q := strings.ToLower(qualifier)
	for _, marker := range []string{"doble", "segunda", "2a", "2da", "2ª"} {
		if strings.Contains(q, marker) {
			return model.CardRedDouble
		}
	}
	return model.CardRed
}
