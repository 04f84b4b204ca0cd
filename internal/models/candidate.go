package models

// Source tags reported to clients for each comparison corpus.
const (
	SourceProject      = "Project"
	SourceCollegeIdea  = "College Idea"
	SourceTeamProposal = "Team Project"
)

// Candidate is anything a new proposal is compared against.
type Candidate interface {
	CandidateTitle() string
	CandidateDescription() string
	Source() string
}

func (p Project) CandidateTitle() string       { return p.Title }
func (p Project) CandidateDescription() string { return p.Description }
func (Project) Source() string                 { return SourceProject }

func (c CollegeIdea) CandidateTitle() string       { return c.Title }
func (c CollegeIdea) CandidateDescription() string { return c.Description }
func (CollegeIdea) Source() string                 { return SourceCollegeIdea }

func (t TeamProposal) CandidateTitle() string       { return t.Title }
func (t TeamProposal) CandidateDescription() string { return t.Description }
func (TeamProposal) Source() string                 { return SourceTeamProposal }

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Supervisor{},
		&Team{},
		&TeamMember{},
		&Project{},
		&ProjectTeamMember{},
		&CollegeIdea{},
		&CollegeIdeaRequest{},
		&TeamProposal{},
	}
}
