package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/capstone-matcher/internal/models"
)

type ProposalRepository interface {
	FindByTeamID(ctx context.Context, teamID uint) (*models.TeamProposal, error)
	FindByTitle(ctx context.Context, title string) (*models.TeamProposal, error)
	List(ctx context.Context) ([]models.TeamProposal, error)
	// Admit inserts a new proposal in a single transaction after checking
	// that the team exists and has no proposal yet. Nothing is written when
	// an error is returned.
	Admit(ctx context.Context, proposal *models.TeamProposal) error
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) FindByTeamID(ctx context.Context, teamID uint) (*models.TeamProposal, error) {
	var proposal models.TeamProposal
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team project: %w", err)
	}
	return &proposal, nil
}

func (r *proposalRepository) FindByTitle(ctx context.Context, title string) (*models.TeamProposal, error) {
	var proposal models.TeamProposal
	if err := r.db.WithContext(ctx).Preload("Team").Where("title = ?", title).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team project: %w", err)
	}
	return &proposal, nil
}

func (r *proposalRepository) List(ctx context.Context) ([]models.TeamProposal, error) {
	var proposals []models.TeamProposal
	err := r.db.WithContext(ctx).
		Joins("Team").
		Order("team_projects.id ASC").
		Find(&proposals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list team projects: %w", err)
	}
	return proposals, nil
}

func (r *proposalRepository) Admit(ctx context.Context, proposal *models.TeamProposal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Select("id").Where("id = ?", proposal.TeamID).First(&team).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to load team: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.TeamProposal{}).Where("team_id = ?", proposal.TeamID).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing team project: %w", err)
		}
		if existing > 0 {
			return ErrTeamHasProposal
		}

		if err := tx.Create(proposal).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTitle
			}
			return fmt.Errorf("failed to create team project: %w", err)
		}
		return nil
	})
}
