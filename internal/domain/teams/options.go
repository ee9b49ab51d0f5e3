package teams

import "github.com/okian/cambios/internal/domain/model"

// Option configures a Resolver.
type Option func(*Resolver)

// WithTeams merges extra teams into the catalog. A team whose ID is already known adds
// its aliases (and replaces the display name when set); a new ID is appended. IDs are
// folded, so "Pumas" merges into "pumas".
func WithTeams(extra []Team) Option {
	return func(r *Resolver) {
		for _, t := range extra {
			t.ID = model.TeamID(Fold(string(t.ID)))
			if t.ID == "" {
				continue
			}
			if i, ok := r.index[t.ID]; ok {
				if t.Display != "" {
					r.teams[i].Display = t.Display
				}
				r.teams[i].Aliases = append(r.teams[i].Aliases, t.Aliases...)
				continue
			}
			r.index[t.ID] = len(r.teams)
			r.teams = append(r.teams, Team{ID: t.ID, Display: t.Display, Aliases: append([]string(nil), t.Aliases...)})
		}
	}
}
