package services

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCorpusUnavailable  = errors.New("similarity corpus unavailable")
	ErrNotTeamMember      = errors.New("you are not a member of any team")
	ErrNotTeamLeader      = errors.New("only team leaders can perform this action")
	ErrTeamHasProposal    = errors.New("your team already has a project")
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrDuplicateMember    = errors.New("team members must have unique emails")
	ErrSupervisorNotFound = errors.New("supervisor associated with the college idea does not exist")
	ErrAlreadyRequested   = errors.New("team has already requested this idea")
	ErrAlreadyAccepted    = errors.New("team has already been accepted for this idea")

	ErrRecommenderUnavailable = errors.New("external recommendation service unavailable")
	ErrRecommenderBadResponse = errors.New("invalid response from external recommendation service")
)
