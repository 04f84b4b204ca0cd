package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/capstone-matcher/internal/models"
)

type TeamRepository interface {
	FindMembershipByEmail(ctx context.Context, email string) (*models.TeamMember, error)
	FindByID(ctx context.Context, id uint) (*models.Team, error)
	FindAll(ctx context.Context) ([]models.Team, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Team, error)
	// MembersWithUsers returns the team's memberships with User preloaded.
	MembersWithUsers(ctx context.Context, teamID uint) ([]models.TeamMember, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) FindMembershipByEmail(ctx context.Context, email string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.WithContext(ctx).Where("user_email = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team membership: %w", err)
	}
	return &member, nil
}

func (r *teamRepository) FindByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return &team, nil
}

func (r *teamRepository) FindAll(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (r *teamRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Team, error) {
	var teams []models.Team
	if len(ids) == 0 {
		return teams, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to find teams: %w", err)
	}
	return teams, nil
}

func (r *teamRepository) MembersWithUsers(ctx context.Context, teamID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("id ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}
