package repositories

import "gorm.io/gorm"

// Repository groups every repository behind one handle so that callers take
// a single dependency.
type Repository struct {
	Corpus      CorpusRepository
	Proposal    ProposalRepository
	Team        TeamRepository
	User        UserRepository
	Project     ProjectRepository
	CollegeIdea CollegeIdeaRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Corpus:      NewCorpusRepository(db),
		Proposal:    NewProposalRepository(db),
		Team:        NewTeamRepository(db),
		User:        NewUserRepository(db),
		Project:     NewProjectRepository(db),
		CollegeIdea: NewCollegeIdeaRepository(db),
	}
}
