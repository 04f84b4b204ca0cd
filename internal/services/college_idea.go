package services

import (
	"context"
	"errors"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

type CollegeIdeaService interface {
	List(ctx context.Context) ([]models.CollegeIdeaResponse, error)
	GetByTitle(ctx context.Context, title string) (*models.CollegeIdeaResponse, error)
	// Request files a pending request from the leader's team for an idea.
	Request(ctx context.Context, email, title string) (*models.CollegeIdeaRequestResponse, error)
}

type collegeIdeaService struct {
	repo *repositories.Repository
}

func NewCollegeIdeaService(repo *repositories.Repository) CollegeIdeaService {
	return &collegeIdeaService{repo: repo}
}

func (s *collegeIdeaService) List(ctx context.Context) ([]models.CollegeIdeaResponse, error) {
	ideas, err := s.repo.CollegeIdea.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CollegeIdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		if idea.Supervisor == nil {
			continue
		}
		out = append(out, collegeIdeaResponse(idea))
	}
	return out, nil
}

func (s *collegeIdeaService) GetByTitle(ctx context.Context, title string) (*models.CollegeIdeaResponse, error) {
	idea, err := s.repo.CollegeIdea.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if idea.Supervisor == nil {
		return nil, repositories.ErrNotFound
	}

	resp := collegeIdeaResponse(*idea)
	return &resp, nil
}

func (s *collegeIdeaService) Request(ctx context.Context, email, title string) (*models.CollegeIdeaRequestResponse, error) {
	if title == "" {
		return nil, ErrInvalidInput
	}

	member, err := s.repo.Team.FindMembershipByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, err
	}
	if !member.IsLeader {
		return nil, ErrNotTeamLeader
	}

	idea, err := s.repo.CollegeIdea.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if idea.Supervisor == nil {
		return nil, ErrSupervisorNotFound
	}

	existing, err := s.repo.CollegeIdea.FindOpenRequest(ctx, member.TeamID, title)
	switch {
	case err == nil && existing.Status == models.RequestAccepted:
		return nil, ErrAlreadyAccepted
	case err == nil:
		return nil, ErrAlreadyRequested
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	req := &models.CollegeIdeaRequest{
		TeamID:           member.TeamID,
		CollegeIdeaTitle: title,
		Status:           models.RequestPending,
		SupervisorEmail:  idea.SupervisorEmail,
	}
	if err := s.repo.CollegeIdea.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	return &models.CollegeIdeaRequestResponse{
		ID:                 req.ID,
		TeamID:             req.TeamID,
		CollegeIdeaTitle:   req.CollegeIdeaTitle,
		Status:             req.Status,
		SupervisorUsername: idea.Supervisor.Username,
		CreatedAt:          req.CreatedAt,
	}, nil
}

func collegeIdeaResponse(idea models.CollegeIdea) models.CollegeIdeaResponse {
	sup := idea.Supervisor
	return models.CollegeIdeaResponse{
		Title:       idea.Title,
		Description: idea.Description,
		Year:        idea.Year,
		Status:      idea.Status,
		SupervisorInfo: &models.SupervisorResponse{
			ID:         sup.ID,
			FirstName:  sup.FirstName,
			LastName:   sup.LastName,
			Username:   sup.Username,
			Email:      sup.Email,
			University: sup.University,
			Department: sup.Department,
		},
	}
}
