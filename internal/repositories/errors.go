package repositories

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateTitle  = errors.New("title already exists")
	ErrTeamNotFound    = errors.New("team not found")
	ErrTeamHasProposal = errors.New("team already has a project")
	ErrDuplicateEntry  = errors.New("duplicate entry")
)
