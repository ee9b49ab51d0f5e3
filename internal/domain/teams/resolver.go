package teams

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/okian/cambios/internal/domain/model"
)

// Resolver matches text against a catalog. It is read-only after New and safe for
// concurrent use.
type Resolver struct {
	teams []Team
	index map[model.TeamID]int
	// folded[i] holds the folded aliases of teams[i], display form included.
	folded [][]string
	// pattern[i] finds any alias of teams[i]; longest alias first.
	pattern []*regexp.Regexp
}

// NewResolver builds a resolver over catalog. The catalog slice is copied.
func NewResolver(catalog []Team, opts ...Option) *Resolver {
	r := &Resolver{index: make(map[model.TeamID]int, len(catalog))}
	for _, t := range catalog {
		if _, dup := r.index[t.ID]; dup || t.ID == "" {
			continue
		}
		r.index[t.ID] = len(r.teams)
		r.teams = append(r.teams, Team{ID: t.ID, Display: t.Display, Aliases: append([]string(nil), t.Aliases...)})
	}
	for _, opt := range opts {
		opt(r)
	}

	r.folded = make([][]string, len(r.teams))
	r.pattern = make([]*regexp.Regexp, len(r.teams))
	for i, t := range r.teams {
		seen := map[string]bool{}
		for _, a := range append([]string{t.Display}, t.Aliases...) {
			f := Fold(a)
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			r.folded[i] = append(r.folded[i], f)
		}
		r.pattern[i] = aliasPattern(r.folded[i])
	}
	return r
}

func aliasPattern(aliases []string) *regexp.Regexp {
	if len(aliases) == 0 {
		return nil
	}
	sorted := append([]string(nil), aliases...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, a := range sorted {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// Teams returns a copy of the effective catalog.
func (r *Resolver) Teams() []Team {
	out := make([]Team, len(r.teams))
	for i, t := range r.teams {
		out[i] = Team{ID: t.ID, Display: t.Display, Aliases: append([]string(nil), t.Aliases...)}
	}
	return out
}

// Resolve returns the first team, in catalog order, with an alias contained in token or
// containing it. An empty token never matches.
func (r *Resolver) Resolve(token string) (model.TeamID, bool) {
	f := Fold(token)
	if f == "" {
		return model.NoTeam, false
	}
	for i, aliases := range r.folded {
		for _, a := range aliases {
			if strings.Contains(f, a) || strings.Contains(a, f) {
				return r.teams[i].ID, true
			}
		}
	}
	return model.NoTeam, false
}

// Canonical resolves label, falling back to the folded label itself so a club outside
// the catalog can still be named by hand.
func (r *Resolver) Canonical(label string) model.TeamID {
	if id, ok := r.Resolve(label); ok {
		return id
	}
	return model.TeamID(Fold(label))
}

// Display returns the printable name of id, or id itself when it is not in the catalog.
func (r *Resolver) Display(id model.TeamID) string {
	if i, ok := r.index[id]; ok && r.teams[i].Display != "" {
		return r.teams[i].Display
	}
	return string(id)
}

// Known reports whether id is in the catalog.
func (r *Resolver) Known(id model.TeamID) bool {
	_, ok := r.index[id]
	return ok
}

// Validate checks a catalog for empty and duplicate IDs.
func Validate(catalog []Team) error {
	if len(catalog) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[model.TeamID]bool, len(catalog))
	for _, t := range catalog {
		if t.ID == "" {
			return fmt.Errorf("team %q: empty id", t.Display)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateTeam, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
