package teams

import (
	"regexp"
	"sort"
	"strings"

	"github.com/okian/cambios/internal/domain/model"
)

// Detection strategies.
const (
	StrategyVersus    = "versus"
	StrategyLabeled   = "labeled"
	StrategyFrequency = "frequency"
	StrategyNone      = "none"
)

// Detection is a suggestion of the two clubs in a document. Teams may hold fewer than
// two entries; callers fall back to a default and let the user override.
type Detection struct {
	Teams    []model.TeamID `json:"teams" yaml:"teams"`
	Strategy string         `json:"strategy" yaml:"strategy"`
}

var (
	versusSep    = regexp.MustCompile(`\s+(?:vs\.?|v\.?|contra|-|—|–)\s+`)
	localField   = regexp.MustCompile(`(?:equipo\s+)?local\s*:\s*(.+?)\s*(?:(?:equipo\s+)?visitante\s*:|$)`)
	visitorField = regexp.MustCompile(`(?:equipo\s+)?visitante\s*:\s*(.+?)\s*(?:(?:equipo\s+)?local\s*:|$)`)
)

// Detect tries, in order, a "A vs B" line, "Local:"/"Visitante:" fields and alias
// frequency, and returns as soon as one of them names two distinct teams.
func (r *Resolver) Detect(document string) Detection {
	lines := foldLines(document)

	if a, b, ok := r.detectVersus(lines); ok {
		return Detection{Teams: []model.TeamID{a, b}, Strategy: StrategyVersus}
	}
	if found := r.detectLabeled(lines); len(found) == 2 {
		return Detection{Teams: found, Strategy: StrategyLabeled}
	}
	if found := r.detectFrequency(Fold(document)); len(found) > 0 {
		return Detection{Teams: found, Strategy: StrategyFrequency}
	}
	return Detection{Teams: []model.TeamID{}, Strategy: StrategyNone}
}

func foldLines(document string) []string {
	raw := strings.Split(document, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if f := Fold(l); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// detectVersus tries every separator on every line, splitting the line around it.
func (r *Resolver) detectVersus(lines []string) (model.TeamID, model.TeamID, bool) {
	for _, line := range lines {
		for _, loc := range versusSep.FindAllStringIndex(line, -1) {
			left, lok := r.Resolve(line[:loc[0]])
			right, rok := r.Resolve(line[loc[1]:])
			if lok && rok && left != right {
				return left, right, true
			}
		}
	}
	return model.NoTeam, model.NoTeam, false
}

func (r *Resolver) detectLabeled(lines []string) []model.TeamID {
	var found []model.TeamID
	add := func(text string) {
		id, ok := r.Resolve(text)
		if !ok {
			return
		}
		for _, f := range found {
			if f == id {
				return
			}
		}
		found = append(found, id)
	}
	for _, line := range lines {
		for _, re := range []*regexp.Regexp{localField, visitorField} {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				add(m[1])
			}
		}
	}
	return found
}

type hit struct {
	id    model.TeamID
	count int
	first int
}

// detectFrequency ranks teams by alias occurrences in the folded document, ties going
// to the team mentioned first.
func (r *Resolver) detectFrequency(folded string) []model.TeamID {
	var hits []hit
	for i, re := range r.pattern {
		if re == nil {
			continue
		}
		locs := re.FindAllStringIndex(folded, -1)
		if len(locs) == 0 {
			continue
		}
		hits = append(hits, hit{id: r.teams[i].ID, count: len(locs), first: locs[0][0]})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return hits[i].first < hits[j].first
	})
	out := make([]model.TeamID, 0, 2)
	for _, h := range hits {
		if len(out) == 2 {
			break
		}
		out = append(out, h.id)
	}
	return out
}
