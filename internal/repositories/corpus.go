package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/capstone-matcher/internal/models"
)

// CorpusRepository reads the three comparison corpora for one proposal year.
type CorpusRepository interface {
	AcceptedProjectsByYear(ctx context.Context, year int) ([]models.Project, error)
	CollegeIdeasByYear(ctx context.Context, year int) ([]models.CollegeIdea, error)
	TeamProposalsByYear(ctx context.Context, year int) ([]models.TeamProposal, error)
}

type corpusRepository struct {
	db *gorm.DB
}

func NewCorpusRepository(db *gorm.DB) CorpusRepository {
	return &corpusRepository{db: db}
}

func (r *corpusRepository) AcceptedProjectsByYear(ctx context.Context, year int) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Where("year = ?", year).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to load projects for %d: %w", year, err)
	}
	return projects, nil
}

func (r *corpusRepository) CollegeIdeasByYear(ctx context.Context, year int) ([]models.CollegeIdea, error) {
	var ideas []models.CollegeIdea
	if err := r.db.WithContext(ctx).Where("year = ?", year).Order("id ASC").Find(&ideas).Error; err != nil {
		return nil, fmt.Errorf("failed to load college ideas for %d: %w", year, err)
	}
	return ideas, nil
}

func (r *corpusRepository) TeamProposalsByYear(ctx context.Context, year int) ([]models.TeamProposal, error) {
	var proposals []models.TeamProposal
	if err := r.db.WithContext(ctx).Where("year = ?", year).Order("id ASC").Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("failed to load team projects for %d: %w", year, err)
	}
	return proposals, nil
}
