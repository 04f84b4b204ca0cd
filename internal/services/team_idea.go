package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

type TeamIdeaService interface {
	// AddProjectIdea verifies that email belongs to the leader of a team
	// without a proposal and then runs the admission check for that team.
	AddProjectIdea(ctx context.Context, email string, req models.ProjectIdeaRequest) (AdmissionResult, error)
	List(ctx context.Context) ([]models.TeamIdeaSummary, error)
	GetByTitle(ctx context.Context, title string) (*models.TeamIdeaDetail, error)
}

type teamIdeaService struct {
	repo      *repositories.Repository
	admission AdmissionService
	log       *zap.Logger
}

func NewTeamIdeaService(repo *repositories.Repository, admission AdmissionService, log *zap.Logger) TeamIdeaService {
	return &teamIdeaService{
		repo:      repo,
		admission: admission,
		log:       log,
	}
}

func (s *teamIdeaService) AddProjectIdea(ctx context.Context, email string, req models.ProjectIdeaRequest) (AdmissionResult, error) {
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

	if _, err := s.repo.Proposal.FindByTeamID(ctx, member.TeamID); err == nil {
		return nil, ErrTeamHasProposal
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	return s.admission.Submit(ctx, member.TeamID, req), nil
}

func (s *teamIdeaService) List(ctx context.Context) ([]models.TeamIdeaSummary, error) {
	proposals, err := s.repo.Proposal.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.TeamIdeaSummary, 0, len(proposals))
	for _, p := range proposals {
		if p.Team == nil {
			continue
		}
		summaries = append(summaries, models.TeamIdeaSummary{
			TeamProjectID: p.ID,
			Title:         p.Title,
			Status:        p.Status,
		})
	}
	return summaries, nil
}

func (s *teamIdeaService) GetByTitle(ctx context.Context, title string) (*models.TeamIdeaDetail, error) {
	proposal, err := s.repo.Proposal.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if proposal.Team == nil {
		return nil, ErrTeamNotFound
	}

	members, err := s.repo.Team.MembersWithUsers(ctx, proposal.TeamID)
	if err != nil {
		return nil, err
	}

	detail := &models.TeamIdeaDetail{
		TeamID:      proposal.Team.ID,
		TeamName:    proposal.Team.Name,
		Project:     *proposal,
		TeamMembers: make([]models.TeamMemberResponse, 0, len(members)),
	}
	for _, m := range members {
		if m.User == nil {
			continue
		}
		detail.TeamMembers = append(detail.TeamMembers, models.TeamMemberResponse{
			FirstName: m.User.FirstName,
			LastName:  m.User.LastName,
			Email:     m.User.Email,
			Role:      m.Role,
			IsLeader:  m.IsLeader,
			JoinedAt:  m.JoinedAt,
		})
	}
	return detail, nil
}
