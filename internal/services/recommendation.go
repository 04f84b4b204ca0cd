package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

type RecommendationService interface {
	RecommendTeams(ctx context.Context, email string) (*models.RecommendedTeams, error)
	RecommendStudents(ctx context.Context, email string) (*models.RecommendedUsers, error)
}

type recommendationService struct {
	repo   *repositories.Repository
	client RecommenderClient
	log    *zap.Logger
}

func NewRecommendationService(repo *repositories.Repository, client RecommenderClient, log *zap.Logger) RecommendationService {
	return &recommendationService{
		repo:   repo,
		client: client,
		log:    log,
	}
}

func (s *recommendationService) RecommendTeams(ctx context.Context, email string) (*models.RecommendedTeams, error) {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	teams, err := s.repo.Team.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, len(teams))
	for i, t := range teams {
		profiles[i] = teamProfile(t)
	}

	student := Profile{ID: idString(user.ID), Skills: strings.Join(user.Skills, ", ")}
	if user.Title != nil {
		student.JobTitle = *user.Title
	}

	matches, err := s.client.MatchStudentToTeams(ctx, student, profiles)
	if err != nil {
		s.log.Error("team recommendation failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		if id, ok := parseID(m.ProjectID); ok {
			ids = append(ids, id)
		}
	}

	found, err := s.repo.Team.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Team, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	result := &models.RecommendedTeams{Matches: []models.RecommendedTeam{}}
	for _, m := range matches {
		id, ok := parseID(m.ProjectID)
		if !ok {
			continue
		}
		team, ok := byID[id]
		if !ok {
			continue
		}
		result.Matches = append(result.Matches, models.RecommendedTeam{
			TeamID:          team.ID,
			Name:            team.Name,
			Description:     team.Description,
			Skills:          team.ExpectedTools,
			SimilarityScore: m.SimilarityScore,
		})
	}
	result.TotalTeams = len(result.Matches)
	return result, nil
}

func (s *recommendationService) RecommendStudents(ctx context.Context, email string) (*models.RecommendedUsers, error) {
	leader, err := s.repo.Team.FindMembershipByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotTeamMember
		}
		return nil, err
	}
	if !leader.IsLeader {
		return nil, ErrNotTeamLeader
	}

	team, err := s.repo.Team.FindByID(ctx, leader.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	members, err := s.repo.Team.MembersWithUsers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	memberEmails := make([]string, len(members))
	for i, m := range members {
		memberEmails[i] = m.UserEmail
	}

	users, err := s.repo.User.FindAllExcept(ctx, memberEmails)
	if err != nil {
		return nil, err
	}

	students := make([]Profile, len(users))
	for i, u := range users {
		jobTitle := "developer"
		if u.Title != nil && *u.Title != "" {
			jobTitle = *u.Title
		}
		students[i] = Profile{ID: idString(u.ID), JobTitle: jobTitle, Skills: strings.Join(u.Skills, ", ")}
	}

	matches, err := s.client.MatchTeamToStudents(ctx, teamProfile(*team), students)
	if err != nil {
		s.log.Error("student recommendation failed", zap.Uint("team_id", team.ID), zap.Error(err))
		return nil, err
	}

	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		if id, ok := parseID(m.StudentID); ok {
			ids = append(ids, id)
		}
	}

	found, err := s.repo.User.FindByIDsExcept(ctx, ids, memberEmails)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	result := &models.RecommendedUsers{Matches: []models.RecommendedUser{}}
	for _, m := range matches {
		id, ok := parseID(m.StudentID)
		if !ok {
			continue
		}
		user, ok := byID[id]
		if !ok {
			continue
		}
		skills := []string(user.Skills)
		if skills == nil {
			skills = []string{}
		}
		result.Matches = append(result.Matches, models.RecommendedUser{
			UserID:          user.ID,
			Username:        user.Username,
			FirstName:       user.FirstName,
			LastName:        user.LastName,
			Skills:          skills,
			SimilarityScore: m.SimilarityScore,
		})
	}
	result.TotalUsers = len(result.Matches)
	return result, nil
}

func teamProfile(t models.Team) Profile {
	return Profile{ID: idString(t.ID), Title: t.Name, Skills: strings.Join(t.ExpectedTools, ", ")}
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
