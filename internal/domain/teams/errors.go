package teams

import "errors"

// ErrEmptyCatalog is returned by Validate for a catalog without teams.
var ErrEmptyCatalog = errors.New("team catalog is empty")

// ErrDuplicateTeam is returned by Validate when two teams share an ID.
var ErrDuplicateTeam = errors.New("duplicate team id")
