package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/capstone-matcher/internal/models"
)

type CollegeIdeaRepository interface {
	FindAll(ctx context.Context) ([]models.CollegeIdea, error)
	// FindByTitle preloads the owning supervisor.
	FindByTitle(ctx context.Context, title string) (*models.CollegeIdea, error)
	// FindOpenRequest returns the team's pending or accepted request for the
	// given idea, or ErrNotFound.
	FindOpenRequest(ctx context.Context, teamID uint, title string) (*models.CollegeIdeaRequest, error)
	CreateRequest(ctx context.Context, req *models.CollegeIdeaRequest) error
}

type collegeIdeaRepository struct {
	db *gorm.DB
}

func NewCollegeIdeaRepository(db *gorm.DB) CollegeIdeaRepository {
	return &collegeIdeaRepository{db: db}
}

func (r *collegeIdeaRepository) FindAll(ctx context.Context) ([]models.CollegeIdea, error) {
	var ideas []models.CollegeIdea
	if err := r.db.WithContext(ctx).Preload("Supervisor").Order("id ASC").Find(&ideas).Error; err != nil {
		return nil, fmt.Errorf("failed to list college ideas: %w", err)
	}
	return ideas, nil
}

func (r *collegeIdeaRepository) FindByTitle(ctx context.Context, title string) (*models.CollegeIdea, error) {
	var idea models.CollegeIdea
	if err := r.db.WithContext(ctx).Preload("Supervisor").Where("title = ?", title).First(&idea).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find college idea: %w", err)
	}
	return &idea, nil
}

func (r *collegeIdeaRepository) FindOpenRequest(ctx context.Context, teamID uint, title string) (*models.CollegeIdeaRequest, error) {
	var req models.CollegeIdeaRequest
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND college_idea_title = ?", teamID, title).
		Where("status IN ?", []models.RequestStatus{models.RequestPending, models.RequestAccepted}).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find college idea request: %w", err)
	}
	return &req, nil
}

func (r *collegeIdeaRepository) CreateRequest(ctx context.Context, req *models.CollegeIdeaRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create college idea request: %w", err)
	}
	return nil
}
