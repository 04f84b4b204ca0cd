package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

type ArchiveService interface {
	// Upload stores an accepted project and its members.
	Upload(ctx context.Context, uploader string, req models.ProjectUploadRequest) (*models.Project, error)
	// Import stores an accepted project whose report PDF lives at reportPath.
	// When the request has no description, one is taken from the report.
	Import(ctx context.Context, uploader string, req models.ProjectUploadRequest, reportPath string) (*models.Project, error)
	List(ctx context.Context) ([]models.ArchiveProjectResponse, error)
	GetByTitle(ctx context.Context, title string) (*models.ArchiveProjectResponse, error)
}

type archiveService struct {
	projects   repositories.ProjectRepository
	parser     PDFParserService
	summaryLen int
	log        *zap.Logger
}

func NewArchiveService(projects repositories.ProjectRepository, parser PDFParserService, log *zap.Logger) ArchiveService {
	return &archiveService{
		projects:   projects,
		parser:     parser,
		summaryLen: DefaultSummaryLength,
		log:        log,
	}
}

func (s *archiveService) Upload(ctx context.Context, uploader string, req models.ProjectUploadRequest) (*models.Project, error) {
	return s.create(ctx, uploader, req, nil)
}

func (s *archiveService) Import(ctx context.Context, uploader string, req models.ProjectUploadRequest, reportPath string) (*models.Project, error) {
	if strings.TrimSpace(req.Description) == "" {
		summary, err := s.parser.ExtractSummary(reportPath, s.summaryLen)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		req.Description = summary
	}
	return s.create(ctx, uploader, req, &reportPath)
}

func (s *archiveService) create(ctx context.Context, uploader string, req models.ProjectUploadRequest, reportPath *string) (*models.Project, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Description == "" || req.Year <= 0 {
		return nil, fmt.Errorf("%w: title, description and year are required", ErrInvalidInput)
	}

	exists, err := s.projects.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repositories.ErrDuplicateTitle
	}

	seen := make(map[string]bool, len(req.TeamMembers))
	members := make([]models.ProjectTeamMember, 0, len(req.TeamMembers))
	for _, m := range req.TeamMembers {
		email := strings.ToLower(strings.TrimSpace(m.Email))
		if seen[email] {
			return nil, ErrDuplicateMember
		}
		seen[email] = true
		members = append(members, models.ProjectTeamMember{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Email:     email,
			Role:      m.Role,
			IsLeader:  m.IsLeader,
		})
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		Tools:       strings.Join(req.Tools, " "),
		Uploader:    uploader,
		Supervisor:  req.Supervisor,
		Year:        req.Year,
		ReportPath:  reportPath,
		Members:     members,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.log.Info("accepted project archived",
		zap.Uint("project_id", project.ID),
		zap.String("title", project.Title),
		zap.Int("year", project.Year),
	)
	return project, nil
}

func (s *archiveService) List(ctx context.Context) ([]models.ArchiveProjectResponse, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ArchiveProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = archiveResponse(p)
	}
	return out, nil
}

func (s *archiveService) GetByTitle(ctx context.Context, title string) (*models.ArchiveProjectResponse, error) {
	project, err := s.projects.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	resp := archiveResponse(*project)
	return &resp, nil
}

func archiveResponse(p models.Project) models.ArchiveProjectResponse {
	members := p.Members
	if members == nil {
		members = []models.ProjectTeamMember{}
	}
	return models.ArchiveProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tools:       p.ToolList(),
		Supervisor:  p.Supervisor,
		Year:        p.Year,
		TeamMembers: members,
	}
}
